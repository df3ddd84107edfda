package ledger

import (
	"github.com/Tiliavir/work-time-saver/internal/record"
	"github.com/Tiliavir/work-time-saver/internal/salary"
	"github.com/Tiliavir/work-time-saver/internal/storage"
)

// Snapshot is the running month recovered from the end of a ledger file.
type Snapshot struct {
	// Month of the last record, 0 when the file does not end with a record.
	Month  int
	Salary *salary.Salary
}

// Current reads the ledger at path and sums the records at its end without
// writing anything.
func Current(path string, rates salary.Rates) (Snapshot, error) {
	lines, err := Load(path)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Salary: salary.New(rates)}
	if _, err := accumulate(snap.Salary, lines); err != nil {
		return Snapshot{}, err
	}
	if len(lines) > 0 {
		if m, ok := lines[len(lines)-1].Month(); ok {
			snap.Month = m
		}
	}
	return snap, nil
}

// Entry is a record line read back from the ledger.
type Entry struct {
	Day     int    `json:"day" yaml:"day"`
	Month   int    `json:"month" yaml:"month"`
	Start   string `json:"start" yaml:"start"`
	End     string `json:"end" yaml:"end"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// Records returns every record line in file order. Summary blocks are skipped.
func Records(lines []Line) []Entry {
	var out []Entry
	for _, l := range lines {
		minutes, ok := l.Minutes()
		if !ok {
			continue
		}
		e := Entry{Minutes: minutes}
		e.Day, _ = l.Day()
		e.Month, _ = l.Month()
		e.Start, e.End, _ = l.Span()
		out = append(out, e)
	}
	return out
}

// Load reads and classifies the ledger at path.
func Load(path string) ([]Line, error) {
	raw, err := storage.ReadLines(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw), nil
}

// Contains reports whether the exact line of rec is already in the ledger at path.
func Contains(path string, rec record.Record) (bool, error) {
	lines, err := Load(path)
	if err != nil {
		return false, err
	}
	want := rec.String()
	for _, l := range lines {
		if l.Kind == RecordLine && l.Text == want {
			return true, nil
		}
	}
	return false, nil
}

// MonthTotal is the work of one month recomputed from its records.
type MonthTotal struct {
	Month  int
	Salary *salary.Salary
}

// Months groups the record lines by month, in file order, and sums each
// group independently of any summary blocks in the file. Records without a
// month are counted with the month before them.
func Months(lines []Line, rates salary.Rates) ([]MonthTotal, error) {
	var out []MonthTotal
	for _, l := range lines {
		minutes, ok := l.Minutes()
		if !ok {
			continue
		}
		month, ok := l.Month()
		if len(out) == 0 || (ok && month != out[len(out)-1].Month) {
			out = append(out, MonthTotal{Month: month, Salary: salary.New(rates)})
		}
		if err := out[len(out)-1].Salary.UpdateWork(minutes); err != nil {
			return nil, err
		}
	}
	return out, nil
}
