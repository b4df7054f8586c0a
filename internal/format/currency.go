package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency formats an INR amount with Indian digit grouping: the last three
// integer digits, then groups of two ("₹24,50,000.00").
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₹0"
	}
	return CurrencyDecimal(decimal.NewFromFloat(amount))
}

// CurrencyDecimal is Currency for values already held as decimals.
func CurrencyDecimal(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	return sign + "₹" + groupIndian(intPart) + "." + frac
}

// Number formats a count with Indian grouping and no fraction.
func Number(n int) string {
	if n < 0 {
		return "-" + groupIndian(decimal.NewFromInt(int64(-n)).String())
	}
	return groupIndian(decimal.NewFromInt(int64(n)).String())
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
