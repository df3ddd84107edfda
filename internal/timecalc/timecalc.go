package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// Input layouts accepted at the command-line boundary. Day, month and hour
// may be written with one or two digits ("1.8.19 8:00").
const (
	StartLayout = "2.1.06 15:04"
	EndLayout   = "15:04"
)

const day = 24 * time.Hour

// ClockOffset returns the hour and minute of t as a duration since midnight.
// Seconds are dropped.
func ClockOffset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// Elapsed returns end - start normalized into [0, 24h). An end clock time
// earlier than the start clock time is read as falling on the next day.
func Elapsed(start, end time.Duration) time.Duration {
	d := (end - start) % day
	if d < 0 {
		d += day
	}
	return d
}

// FormatClock formats a duration below 24h as HH:MM. Longer durations keep
// counting hours.
func FormatClock(d time.Duration) string {
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/3600, seconds/60%60)
}

// FormatHours formats a minute total as H:MM with unpadded hours, e.g. "288:00".
func FormatHours(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// ParseWorkStart parses the start of a work day in the "dd.mm.yy HH:MM" form.
func ParseWorkStart(s string) (time.Time, error) {
	t, err := time.ParseInLocation(StartLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start %q: expected format dd.mm.yy HH:MM, e.g. 26.02.20 08:00", s)
	}
	return t, nil
}

// ParseWorkEnd parses the end of a work day in the "HH:MM" form.
func ParseWorkEnd(s string) (time.Time, error) {
	t, err := time.ParseInLocation(EndLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end %q: expected format HH:MM, e.g. 16:30", s)
	}
	return t, nil
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
