package ledger

import "strings"

// Kind classifies a ledger line.
type Kind int

const (
	// BlankLine is an empty or whitespace-only line.
	BlankLine Kind = iota
	// RecordLine is one logged work day: "dd.mm\t\tHH:MM-HH:MM\tHH:MMh".
	RecordLine
	// SummaryLine is any other line: summary text or the separator.
	SummaryLine
)

func (k Kind) String() string {
	switch k {
	case BlankLine:
		return "blank"
	case RecordLine:
		return "record"
	default:
		return "summary"
	}
}

// Line is one classified ledger line.
type Line struct {
	Kind Kind
	Text string

	minutes  int
	day      int
	month    int
	hasDay   bool
	hasMonth bool
	span     string
}

// ParseLine classifies one line of a ledger file. A record has exactly the
// shape "dd.mm\t\tHH:MM-HH:MM\tHH:MMh"; anything else that is not blank is
// summary text, including a summary's "days\t\t\t\tHH:MMh" line.
func ParseLine(s string) Line {
	s = strings.TrimRight(s, "\r\n")
	l := Line{Kind: SummaryLine, Text: s}
	if strings.TrimSpace(s) == "" {
		l.Kind = BlankLine
		return l
	}

	fields := strings.Split(s, "\t")
	if len(fields) != 4 || fields[1] != "" {
		return l
	}
	head, span, dur := fields[0], fields[2], fields[3]
	if !isDate(head) || !isSpan(span) {
		return l
	}
	minutes, ok := parseDurationField(dur)
	if !ok {
		return l
	}

	l.Kind = RecordLine
	l.minutes = minutes
	l.span = span
	day, _ := twoDigits(head, 0)
	month, _ := twoDigits(head, 3)
	l.day, l.hasDay = day, day >= 1 && day <= 31
	l.month, l.hasMonth = month, month >= 1 && month <= 12
	return l
}

// Parse classifies every line of a ledger file, in file order.
func Parse(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, s := range lines {
		out[i] = ParseLine(s)
	}
	return out
}

// Minutes returns the duration of a record line in minutes. ok is false for
// any line that is not a record.
func (l Line) Minutes() (minutes int, ok bool) {
	if l.Kind != RecordLine {
		return 0, false
	}
	return l.minutes, true
}

// Month returns the month a record line was logged in: the two digits just
// before the first tab. ok is false when the line carries no month in 1..12.
func (l Line) Month() (month int, ok bool) {
	if l.Kind != RecordLine || !l.hasMonth {
		return 0, false
	}
	return l.month, true
}

// Day returns the day of month of a record line, 1..31.
func (l Line) Day() (day int, ok bool) {
	if l.Kind != RecordLine || !l.hasDay {
		return 0, false
	}
	return l.day, true
}

// Span returns the start and end clock times of a record line.
func (l Line) Span() (start, end string, ok bool) {
	if l.Kind != RecordLine {
		return "", "", false
	}
	start, end, ok = strings.Cut(l.span, "-")
	return start, end, ok
}

// parseDurationField parses exactly "HH:MMh".
func parseDurationField(f string) (int, bool) {
	if len(f) != 6 || f[2] != ':' || f[5] != 'h' {
		return 0, false
	}
	h, ok := twoDigits(f, 0)
	if !ok {
		return 0, false
	}
	m, ok := twoDigits(f, 3)
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

// isDate reports whether f is "dd.mm".
func isDate(f string) bool {
	if len(f) != 5 || f[2] != '.' {
		return false
	}
	_, ok1 := twoDigits(f, 0)
	_, ok2 := twoDigits(f, 3)
	return ok1 && ok2
}

// isSpan reports whether f is "HH:MM-HH:MM".
func isSpan(f string) bool {
	if len(f) != 11 || f[5] != '-' {
		return false
	}
	return isClock(f[:5]) && isClock(f[6:])
}

func isClock(f string) bool {
	if len(f) != 5 || f[2] != ':' {
		return false
	}
	_, ok1 := twoDigits(f, 0)
	_, ok2 := twoDigits(f, 3)
	return ok1 && ok2
}

func twoDigits(s string, i int) (int, bool) {
	if i < 0 || i+2 > len(s) {
		return 0, false
	}
	a, b := s[i], s[i+1]
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
