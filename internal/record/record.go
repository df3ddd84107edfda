// Package record formats a single logged work day as a ledger line.
package record

import (
	"fmt"
	"time"

	"github.com/Tiliavir/work-time-saver/internal/model"
	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

// Record is one work day as it is persisted in the ledger.
type Record struct {
	Date  string        // "dd.mm"
	Start time.Duration // since midnight
	End   time.Duration // since midnight
}

// New builds a Record from the start of work (date and clock time) and the
// end of work (clock time only).
func New(start, end time.Time) Record {
	return Record{
		Date:  start.Format("02.01"),
		Start: timecalc.ClockOffset(start),
		End:   timecalc.ClockOffset(end),
	}
}

// FromInterval builds the Record for a WorkInterval.
func FromInterval(iv model.WorkInterval) Record {
	return New(iv.Start, iv.End)
}

// Duration returns the time worked. An end before the start wraps past
// midnight, so the result is always within [0, 24h).
func (r Record) Duration() time.Duration {
	return timecalc.Elapsed(r.Start, r.End)
}

// Minutes returns Duration in whole minutes.
func (r Record) Minutes() int {
	return int(r.Duration() / time.Minute)
}

// String renders the ledger line: "dd.mm\t\tHH:MM-HH:MM\tHH:MMh".
func (r Record) String() string {
	return fmt.Sprintf("%s\t\t%s-%s\t%sh",
		r.Date,
		timecalc.FormatClock(r.Start),
		timecalc.FormatClock(r.End),
		timecalc.FormatClock(r.Duration()),
	)
}

// GoString is used in debug logs.
func (r Record) GoString() string {
	return fmt.Sprintf("<Work day %s from %s to %s hour>",
		r.Date, timecalc.FormatClock(r.Start), timecalc.FormatClock(r.End))
}
