package hedgefund

import (
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Validate checks in for errors and warnings.
func (c *Calculator) Validate(in Inputs) validation.Result {
	return c.rules.Validate(in)
}

// ValidateField checks a single field of in.
func (c *Calculator) ValidateField(field string, in Inputs) validation.FieldResult {
	return c.rules.ValidateField(field, in)
}

func (c *Calculator) buildRules() validation.Table[Inputs] {
	unlessZero := func(get func(Inputs) float64) func(Inputs) bool {
		return func(in Inputs) bool { return get(in) != 0 }
	}

	return validation.Table[Inputs]{
		validation.Positive("aum", func(in Inputs) float64 { return in.AUM }, "AUM must be greater than 0"),
		validation.Positive("investmentAmount", func(in Inputs) float64 { return in.InvestmentAmount }, "Investment amount must be greater than 0"),
		validation.Warn("investmentAmount", func(in Inputs) bool { return in.AUM > 0 && in.InvestmentAmount > in.AUM }, "Investment exceeds the fund's assets"),

		validation.Range("managementFee", func(in Inputs) float64 { return in.ManagementFee }, 0, 10, "Management fee must be between 0% and 10%"),
		validation.Above("managementFee", func(in Inputs) float64 { return in.ManagementFee }, 3, "Management fee is above the typical 2%"),
		validation.Range("performanceFee", func(in Inputs) float64 { return in.PerformanceFee }, 0, 50, "Performance fee must be between 0% and 50%"),
		validation.Above("performanceFee", func(in Inputs) float64 { return in.PerformanceFee }, 30, "Performance fee is above the typical 20%"),
		validation.Range("hurdleRate", func(in Inputs) float64 { return in.HurdleRate }, 0, 50, "Hurdle rate must be between 0% and 50%"),

		validation.Range("grossReturn", func(in Inputs) float64 { return in.GrossReturn }, -100, 500, "Gross return must be between -100% and 500%"),
		validation.Above("grossReturn", func(in Inputs) float64 { return in.GrossReturn }, 50, "Gross return seems unusually high"),
		validation.Positive("volatility", func(in Inputs) float64 { return in.Volatility }, "Volatility must be greater than 0"),
		validation.Range("volatility", func(in Inputs) float64 { return in.Volatility }, 0, 200, "Volatility cannot exceed 200%"),
		validation.Range("riskFreeRate", func(in Inputs) float64 { return in.RiskFreeRate }, -5, 25, "Risk-free rate must be between -5% and 25%"),
		validation.Range("beta", func(in Inputs) float64 { return in.Beta }, -5, 5, "Beta must be between -5 and 5"),

		validation.Range("maxDrawdown", func(in Inputs) float64 { return in.MaxDrawdown }, 0, 100, "Maximum drawdown must be between 0% and 100%"),
		validation.NonNegative("downsideDeviation", func(in Inputs) float64 { return in.DownsideDeviation }, "Downside deviation cannot be negative"),
		validation.Range("skewness", func(in Inputs) float64 { return in.Skewness }, -10, 10, "Skewness must be between -10 and 10"),
		validation.Range("kurtosis", func(in Inputs) float64 { return in.Kurtosis }, -3, 50, "Excess kurtosis must be between -3 and 50"),
		validation.Check("monthlyReturns", func(in Inputs) bool {
			for _, r := range in.MonthlyReturns {
				if validation.NonFinite(r) || r <= -100 {
					return true
				}
			}
			return false
		}, "Monthly returns must be above -100%"),
		validation.Warn("monthlyReturns", func(in Inputs) bool { return len(in.MonthlyReturns) == 1 }, "At least two monthly returns are needed for historical statistics"),

		validation.Range("varConfidence", func(in Inputs) float64 { return in.VarConfidence }, 50, 99.9, "VaR confidence must be between 50% and 99.9%").
			If(unlessZero(func(in Inputs) float64 { return in.VarConfidence })),
		validation.Range("timeHorizonDays", func(in Inputs) float64 { return float64(in.TimeHorizonDays) }, 1, 3650, "Time horizon must be between 1 and 3650 days").
			If(unlessZero(func(in Inputs) float64 { return float64(in.TimeHorizonDays) })),
		validation.Range("leverage", func(in Inputs) float64 { return in.Leverage }, 1, 20, "Leverage must be between 1x and 20x").
			If(unlessZero(func(in Inputs) float64 { return in.Leverage })),
		validation.Range("lockupMonths", func(in Inputs) float64 { return float64(in.LockupMonths) }, 0, 120, "Lockup must be between 0 and 120 months"),
		validation.Range("redemptionNoticeDays", func(in Inputs) float64 { return float64(in.RedemptionNoticeDays) }, 0, 365, "Redemption notice must be between 0 and 365 days"),
	}
}
