package model

import "time"

// WorkInterval is one day of work as supplied by the input boundary.
// Start carries the calendar date and the clock time work began; only the
// clock time of End is meaningful and it is read as the same calendar day.
type WorkInterval struct {
	Start time.Time
	End   time.Time
}

// Year returns the calendar year the interval is logged under.
func (w WorkInterval) Year() int {
	return w.Start.Year()
}

// Month returns the calendar month (1-12) the interval is logged under.
func (w WorkInterval) Month() int {
	return int(w.Start.Month())
}
