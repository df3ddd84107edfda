package record_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Tiliavir/work-time-saver/internal/model"
	"github.com/Tiliavir/work-time-saver/internal/record"
)

func clock(h, m int) time.Time {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
}

func TestNewRecord(t *testing.T) {
	start := time.Date(2020, 2, 15, 8, 0, 0, 0, time.UTC)
	r := record.New(start, clock(18, 25))

	want := "15.02\t\t08:00-18:25\t10:25h"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if r.Minutes() != 625 {
		t.Errorf("Minutes() = %d, want 625", r.Minutes())
	}
}

func TestRecordOvernight(t *testing.T) {
	tests := []struct {
		start, end time.Time
		want       string
	}{
		{time.Date(2019, 8, 31, 8, 0, 0, 0, time.UTC), clock(0, 0), "31.08\t\t08:00-00:00\t16:00h"},
		{time.Date(2019, 8, 30, 23, 0, 0, 0, time.UTC), clock(1, 0), "30.08\t\t23:00-01:00\t02:00h"},
		{time.Date(2019, 8, 29, 9, 0, 0, 0, time.UTC), clock(9, 0), "29.08\t\t09:00-09:00\t00:00h"},
	}
	for _, tt := range tests {
		got := record.New(tt.start, tt.end).String()
		if got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFromInterval(t *testing.T) {
	iv := model.WorkInterval{
		Start: time.Date(2019, 9, 1, 8, 0, 0, 0, time.UTC),
		End:   clock(18, 25),
	}
	r := record.FromInterval(iv)
	if r.Date != "01.09" {
		t.Errorf("Date = %q, want %q", r.Date, "01.09")
	}
	if r.Start != 8*time.Hour || r.End != 18*time.Hour+25*time.Minute {
		t.Errorf("Start/End = %v/%v", r.Start, r.End)
	}
}

func TestGoString(t *testing.T) {
	r := record.New(time.Date(2020, 2, 15, 8, 0, 0, 0, time.UTC), clock(18, 25))
	want := "<Work day 15.02 from 08:00 to 18:25 hour>"
	if got := fmt.Sprintf("%#v", r); got != want {
		t.Errorf("%%#v = %q, want %q", got, want)
	}
}
