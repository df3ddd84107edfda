package ledger_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/record"
)

func TestParseLineKinds(t *testing.T) {
	tests := []struct {
		line      string
		kind      ledger.Kind
		minutes   int
		month     int
		hasMonth  bool
		wantStart string
		wantEnd   string
	}{
		{"01.08\t\t08:00-18:00\t10:00h", ledger.RecordLine, 600, 8, true, "08:00", "18:00"},
		{"31.08\t\t08:00-00:00\t16:00h\n", ledger.RecordLine, 960, 8, true, "08:00", "00:00"},
		{"29.08\t\t09:00-09:00\t00:00h", ledger.RecordLine, 0, 8, true, "09:00", "09:00"},
		{"26\t\t\t\t288:00h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"\t\t\t\t87687.50NOK (35951.88PLN)", ledger.SummaryLine, 0, 0, false, "", ""},
		{"After tax:\t\t\t61871.88NOK (25367.47PLN)", ledger.SummaryLine, 0, 0, false, "", ""},
		{"------------------------------------------------------------------------------------", ledger.SummaryLine, 0, 0, false, "", ""},
		{"", ledger.BlankLine, 0, 0, false, "", ""},
		{"  \t ", ledger.BlankLine, 0, 0, false, "", ""},
		{"note\t1:30h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"x\tab:cdh", ledger.SummaryLine, 0, 0, false, "", ""},
		{"\t10:00h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"1\t\t\t\t15:30h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"9\t\t\t\t99:59h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"01.08\t08:00-18:00\t10:00h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"01.08\t\t08:00\t10:00h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"1.8\t\t08:00-18:00\t10:00h", ledger.SummaryLine, 0, 0, false, "", ""},
		{"01.13\t\t08:00-18:00\t10:00h", ledger.RecordLine, 600, 0, false, "08:00", "18:00"},
		{"01.00\t\t08:00-18:00\t10:00h", ledger.RecordLine, 600, 0, false, "08:00", "18:00"},
	}
	for _, tt := range tests {
		l := ledger.ParseLine(tt.line)
		if l.Kind != tt.kind {
			t.Errorf("ParseLine(%q).Kind = %v, want %v", tt.line, l.Kind, tt.kind)
			continue
		}
		minutes, ok := l.Minutes()
		if ok != (tt.kind == ledger.RecordLine) {
			t.Errorf("ParseLine(%q).Minutes ok = %v", tt.line, ok)
		}
		if ok && minutes != tt.minutes {
			t.Errorf("ParseLine(%q).Minutes = %d, want %d", tt.line, minutes, tt.minutes)
		}
		month, ok := l.Month()
		if ok != tt.hasMonth || month != tt.month {
			t.Errorf("ParseLine(%q).Month = (%d, %v), want (%d, %v)", tt.line, month, ok, tt.month, tt.hasMonth)
		}
		start, end, _ := l.Span()
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("ParseLine(%q).Span = %q-%q, want %q-%q", tt.line, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestParseLineDay(t *testing.T) {
	l := ledger.ParseLine("15.02\t\t08:00-18:25\t10:25h")
	day, ok := l.Day()
	if !ok || day != 15 {
		t.Errorf("Day() = (%d, %v), want (15, true)", day, ok)
	}
}

// Every duration a record can render must read back as the same minutes.
func TestParseLineDayOutOfRange(t *testing.T) {
	l := ledger.ParseLine("32.08\t\t08:00-18:25\t10:25h")
	if _, ok := l.Day(); ok {
		t.Error("Day() ok for day 32")
	}
	if month, ok := l.Month(); !ok || month != 8 {
		t.Errorf("Month() = (%d, %v), want (8, true)", month, ok)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	start := time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC)
	for minutes := 1; minutes < 24*60; minutes++ {
		end := start.Add(time.Duration(minutes) * time.Minute)
		rec := record.New(start, end)
		got, ok := ledger.ParseLine(rec.String()).Minutes()
		if !ok {
			t.Fatalf("record %q not recognized", rec.String())
		}
		if got != minutes {
			t.Fatalf("round trip of %d minutes = %d (%q)", minutes, got, rec.String())
		}
	}

	// A full day wraps to zero but is still a record.
	rec := record.New(time.Date(2019, 8, 1, 8, 0, 0, 0, time.UTC), time.Date(2019, 8, 2, 8, 0, 0, 0, time.UTC))
	if got, ok := ledger.ParseLine(rec.String()).Minutes(); !ok || got != 0 {
		t.Errorf("24h record = (%d, %v), want (0, true)", got, ok)
	}
}

func TestKindString(t *testing.T) {
	if ledger.RecordLine.String() != "record" || ledger.BlankLine.String() != "blank" || ledger.SummaryLine.String() != "summary" {
		t.Error("unexpected Kind names")
	}
}
