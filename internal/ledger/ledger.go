// Package ledger keeps the yearly work-time file: it recovers the running
// month from the records at the end of the file, writes a monthly summary
// when a new month begins and appends new records.
package ledger

import (
	"fmt"
	"log/slog"

	"github.com/Tiliavir/work-time-saver/internal/model"
	"github.com/Tiliavir/work-time-saver/internal/record"
	"github.com/Tiliavir/work-time-saver/internal/salary"
	"github.com/Tiliavir/work-time-saver/internal/storage"
)

// Document appends one work interval to its year's ledger file.
type Document struct {
	Path   string
	Month  int
	Record record.Record
	Salary *salary.Salary

	rates salary.Rates
}

// New prepares the Document for iv in the ledger directory dir.
func New(dir string, iv model.WorkInterval, rates salary.Rates) *Document {
	return &Document{
		Path:   storage.YearPath(dir, iv.Year()),
		Month:  iv.Month(),
		Record: record.FromInterval(iv),
		Salary: salary.New(rates),
		rates:  rates,
	}
}

// Process reconciles the ledger file with the new record. It sums the
// records at the end of the file, closes the previous month with a summary
// when the new record starts a new one, appends the record and returns the
// current month's gross pay, e.g. "41000.00NOK".
//
// The file stays exclusively open for the whole call.
func (d *Document) Process() (string, error) {
	f, err := storage.Open(d.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := f.Lines()
	if err != nil {
		return "", err
	}
	lines := Parse(raw)

	if len(lines) > 0 {
		n, err := accumulate(d.Salary, lines)
		if err != nil {
			return "", err
		}
		month, ok := lines[len(lines)-1].Month()
		slog.Debug("scanned ledger tail", "path", d.Path, "records", n, "last_month", month, "has_month", ok)

		if !ok || month != d.Month {
			if err := d.rollover(f); err != nil {
				return "", err
			}
		}
	}

	line := d.Record.String()
	if err := f.Append(line); err != nil {
		return "", err
	}
	slog.Debug("appended record", "path", d.Path, "record", fmt.Sprintf("%#v", d.Record))

	// Count the new day from its rendered line, as a later scan will.
	if minutes, ok := ParseLine(line).Minutes(); ok {
		if err := d.Salary.UpdateWork(minutes); err != nil {
			return "", err
		}
	}

	if err := f.Close(); err != nil {
		return "", err
	}
	return d.Salary.Total(), nil
}

// rollover writes the accumulated month's summary block and starts a fresh Salary.
func (d *Document) rollover(f *storage.File) error {
	block, err := d.Salary.Finalize()
	if err != nil {
		return fmt.Errorf("finalizing month: %w", err)
	}
	if err := f.Append(block); err != nil {
		return err
	}
	slog.Debug("month rolled over", "path", f.Path(), "salary", fmt.Sprintf("%#v", d.Salary))
	d.Salary = salary.New(d.rates)
	return nil
}

// accumulate feeds the contiguous run of records at the end of lines into s,
// newest first, and returns how many it found.
func accumulate(s *salary.Salary, lines []Line) (int, error) {
	n := 0
	for i := len(lines) - 1; i >= 0; i-- {
		minutes, ok := lines[i].Minutes()
		if !ok {
			break
		}
		if err := s.UpdateWork(minutes); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
