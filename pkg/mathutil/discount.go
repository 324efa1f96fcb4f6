package mathutil

import "math"

// DiscountFactor returns 1/(1+rate)^periods for a decimal rate.
func DiscountFactor(rate float64, periods float64) float64 {
	return 1 / math.Pow(1+rate, periods)
}

// PresentValue discounts a single cash flow.
func PresentValue(cashFlow, rate, periods float64) float64 {
	return cashFlow * DiscountFactor(rate, periods)
}

// FutureValue compounds a single amount.
func FutureValue(amount, rate, periods float64) float64 {
	return amount * math.Pow(1+rate, periods)
}

// GordonGrowth returns the terminal value of a cash flow growing in perpetuity:
// cf*(1+g)/(r-g). It returns 0 when r <= g.
func GordonGrowth(cashFlow, discountRate, growthRate float64) float64 {
	if discountRate <= growthRate {
		return 0
	}
	return cashFlow * (1 + growthRate) / (discountRate - growthRate)
}
