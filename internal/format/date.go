package format

import (
	"strings"
	"time"
)

// dateLayouts lists the calendar forms ParseDate accepts. Numeric
// day/month forms such as 1/2/2026 are deliberately absent: their meaning
// depends on locale.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"Mon, Jan 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2 Jan, 2006",
}

// ParseDate parses s with the first matching layout. Offsets are kept, so
// the calendar date is the one written in s rather than its UTC equivalent.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ISODate returns s as YYYY-MM-DD, or s unchanged when it does not parse.
func ISODate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("2006-01-02")
}

// Date renders a stored date string for display.
func Date(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("2 Jan 2006")
}

// DateTime renders a timestamp for display.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2 Jan 2006, 15:04")
}
