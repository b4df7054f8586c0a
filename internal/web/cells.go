package web

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ipoadmin/internal/format"
	"github.com/JonMunkholm/ipoadmin/internal/table"
)

// money sorts by amount and renders as INR.
func money[T any](key, header string, get func(T) float64) table.Column[T] {
	return table.Accessor(key, header, func(rec T) any { return get(rec) }).
		WithRender(func(rec T) table.Cell { return table.Cell{Text: format.Currency(get(rec))} })
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// formFloat reads a number field. Missing or malformed input is 0.
func formFloat(form url.Values, key string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(form.Get(key)), 64)
	if err != nil {
		return 0
	}
	return f
}

// formInt reads an integer field. Missing or malformed input is 0.
func formInt(form url.Values, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func formText(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

func numberValue(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
