package msgraph

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/model"
	"github.com/Tiliavir/work-time-saver/internal/record"
	"github.com/Tiliavir/work-time-saver/internal/salary"
	"github.com/Tiliavir/work-time-saver/internal/storage"
	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

// ImportResult holds counters for an import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// ImportOptions configures an import run.
type ImportOptions struct {
	LedgerDir string
	Rates     salary.Rates
	Subject   string // case-insensitive event subject marking a work day
	Timezone  string
	DryRun    bool
	Out       io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2019-08-01T08:00:00.0000000" without a zone
// suffix when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.Local
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown timezone %q: %w", tz, err)
		}
		loc = l
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// IsShift reports whether event is a work day to import.
func IsShift(event CalendarEvent, subject string) bool {
	if event.IsCancelled || event.IsAllDay || event.ShowAs == "free" {
		return false
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(event.Subject), strings.TrimSpace(subject))
}

// MapEventToInterval converts a Graph CalendarEvent into a WorkInterval.
// Only the clock time of the end is kept, so shifts past midnight wrap.
func MapEventToInterval(event CalendarEvent, timezone string) (model.WorkInterval, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return model.WorkInterval{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return model.WorkInterval{}, fmt.Errorf("parsing end time: %w", err)
	}
	if end.Before(start) {
		return model.WorkInterval{}, fmt.Errorf("event ends before it starts")
	}
	if !timecalc.SameDay(start, end) {
		slog.Debug("shift crosses midnight", "subject", event.Subject, "start", start, "end", end)
	}
	return model.WorkInterval{Start: start, End: end}, nil
}

// ImportShifts logs every shift among events into the ledger, oldest first
// so that month summaries are written in order. Shifts whose exact record
// line is already in the ledger are skipped.
func ImportShifts(events []CalendarEvent, opts ImportOptions) (ImportResult, error) {
	var result ImportResult
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	type shift struct {
		subject string
		iv      model.WorkInterval
	}
	var shifts []shift
	for _, event := range events {
		if !IsShift(event, opts.Subject) {
			continue
		}
		iv, err := MapEventToInterval(event, opts.Timezone)
		if err != nil {
			fmt.Fprintf(opts.Out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		shifts = append(shifts, shift{subject: event.Subject, iv: iv})
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].iv.Start.Before(shifts[j].iv.Start)
	})

	for _, s := range shifts {
		rec := record.FromInterval(s.iv)
		label := fmt.Sprintf("%s %s-%s (%sh)", s.iv.Start.Format("02.01.06"),
			timecalc.FormatClock(rec.Start), timecalc.FormatClock(rec.End), timecalc.FormatClock(rec.Duration()))

		found, err := ledger.Contains(storage.YearPath(opts.LedgerDir, s.iv.Year()), rec)
		if err != nil {
			return result, err
		}
		if found {
			fmt.Fprintf(opts.Out, "  – Skipped:  %s (already logged)\n", label)
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			total, err := ledger.New(opts.LedgerDir, s.iv, opts.Rates).Process()
			if err != nil {
				return result, fmt.Errorf("logging %q: %w", s.subject, err)
			}
			label += " → " + total
		}
		fmt.Fprintf(opts.Out, "  ✓ Imported: %s\n", label)
		result.Imported++
	}
	return result, nil
}
