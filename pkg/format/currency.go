// Package format renders calculator values for display.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if !finite(amount) {
		return "n/a"
	}
	formatted := formatPositive(math.Abs(amount), 2)
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a value already expressed in percent, e.g. 6.8 → "6.80%".
func Percent(value float64) string {
	if !finite(value) {
		return "n/a"
	}
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

// Ratio renders a dimensionless ratio with the given precision.
func Ratio(value float64, places int32) string {
	if !finite(value) {
		return "n/a"
	}
	return decimal.NewFromFloat(value).StringFixed(places)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatPositive(value float64, places int32) string {
	formatted := decimal.NewFromFloat(value).StringFixed(places)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decPart == "" {
		return intPart
	}
	return intPart + "." + decPart
}
