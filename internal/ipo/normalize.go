package ipo

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/format"
)

// NormalizeDate returns *s as YYYY-MM-DD. Nil and empty input give "".
// Input that is not a recognised calendar date is returned unchanged.
func NormalizeDate(s *Text) string {
	return NormalizeDateString(deref(s))
}

// NormalizeDateString is NormalizeDate for a plain string.
func NormalizeDateString(s string) string {
	if s == "" {
		return ""
	}
	return format.ISODate(s)
}

// NormalizeStatus maps the upstream current_status onto the three IPO
// states. Unknown values are upcoming.
func NormalizeStatus(s string) core.IPOStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "live":
		return core.IPOLive
	case "closed":
		return core.IPOClosed
	default:
		return core.IPOUpcoming
	}
}

// Normalize converts one upstream record into a core.IPO. It never fails.
func Normalize(raw RemoteIPO) core.IPO {
	name := deref(raw.Name)
	openDate := NormalizeDate(raw.Open)
	closeDate := NormalizeDate(raw.Close)

	ipo := core.IPO{
		ID:          raw.ID.String(),
		Name:        name,
		CompanyName: name,
		OpenDate:    openDate,
		CloseDate:   closeDate,
		PriceBand: core.PriceBand{
			Min: leadingFloat(raw.MinPrice.String()),
			Max: leadingFloat(raw.MaxPrice.String()),
		},
		LotSize:   number(raw.LotSize.String()),
		Status:    NormalizeStatus(deref(raw.CurrentStatus)),
		CreatedAt: createdAt(raw.CreatedAt, openDate, closeDate),
		IconURL:   deref(raw.IconURL),
		IPOType:   deref(raw.IPOType),
		IssueSize: deref(raw.IssueSize),
	}
	if raw.Premium != nil {
		ipo.Premium = strings.TrimSpace(string(*raw.Premium))
	}
	for _, lm := range raw.LeadManagers {
		if n := strings.TrimSpace(string(lm.Name)); n != "" {
			ipo.LeadManagers = append(ipo.LeadManagers, n)
		}
	}
	return ipo
}

// NormalizeBatch normalizes every record. Nil input gives an empty,
// non-nil slice.
func NormalizeBatch(raws []RemoteIPO) []core.IPO {
	out := make([]core.IPO, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

// createdAt takes the date part of the upstream timestamp, then the open
// date, then the close date.
func createdAt(raw *Text, openDate, closeDate string) string {
	if ts := deref(raw); ts != "" {
		day, _, _ := strings.Cut(ts, "T")
		return NormalizeDateString(day)
	}
	if openDate != "" {
		return openDate
	}
	return closeDate
}

var leadingFloatRE = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// leadingFloat parses the number at the start of s, ignoring anything
// after it: "100.50 per share" reads 100.5. It returns 0 when s does not
// start with a number.
func leadingFloat(s string) float64 {
	m := leadingFloatRE.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0
	}
	return finite(strconv.ParseFloat(m, 64))
}

// number parses s as a whole number. Blank input and any trailing text
// give 0.
func number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return finite(strconv.ParseFloat(s, 64))
}

func finite(f float64, err error) float64 {
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func deref(t *Text) string {
	if t == nil {
		return ""
	}
	return string(*t)
}
