// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return RoundTo(val, constants.CurrencyPlaces)
}

// RoundRatio rounds rates, yields and ratios to four decimals.
func RoundRatio(val float64) float64 {
	return RoundTo(val, constants.RatioPlaces)
}

// RoundTo rounds half away from zero to the given number of decimal places.
// NaN and infinities are returned unchanged.
func RoundTo(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// Clamp bounds val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampInt bounds val to [lo, hi].
func ClampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampScore bounds a heuristic score to the shared 1-10 range.
func ClampScore(val int) int {
	return ClampInt(val, constants.MinScore, constants.MaxScore)
}

// SafeDivide returns a/b, or fallback when b is zero or the result is not finite.
func SafeDivide(a, b, fallback float64) float64 {
	if b == 0 {
		return fallback
	}
	result := a / b
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return fallback
	}
	return result
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	return SafeDivide(value, total, 0) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentToDecimal converts 5 (percent) to 0.05.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}
