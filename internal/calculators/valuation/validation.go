package valuation

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
	rateBelowGrowth := func(in Inputs) bool {
		return c.discountRate(c.normalize(in)) <= in.TerminalGrowthRate
	}
	nonNegative := func(field, label string, get func(Inputs) float64) validation.Rule[Inputs] {
		return validation.NonNegative(field, get, label+" cannot be negative")
	}

	return validation.Table[Inputs]{
		validation.Positive("revenue", func(in Inputs) float64 { return in.Revenue }, "Revenue must be greater than 0"),
		validation.Warn("ebitda", func(in Inputs) bool { return in.EBITDA > in.Revenue }, "EBITDA exceeds revenue"),
		validation.Warn("freeCashFlow", func(in Inputs) bool { return in.FreeCashFlow <= 0 }, "Free cash flow is not positive; the DCF will be unreliable"),

		validation.Check("projectionYears", func(in Inputs) bool {
			return in.ProjectionYears != 0 && (in.ProjectionYears < 1 || in.ProjectionYears > 30)
		}, "Projection years must be between 1 and 30"),

		validation.Range("revenueGrowthRate", func(in Inputs) float64 { return in.RevenueGrowthRate }, -50, 200, "Growth rate must be between -50% and 200%"),
		validation.Above("revenueGrowthRate", func(in Inputs) float64 { return in.RevenueGrowthRate }, 50, "Growth rate seems unusually high"),

		validation.Range("terminalGrowthRate", func(in Inputs) float64 { return in.TerminalGrowthRate }, -5, 10, "Terminal growth rate must be between -5% and 10%"),
		validation.Above("terminalGrowthRate", func(in Inputs) float64 { return in.TerminalGrowthRate }, 4, "Terminal growth above long-run GDP growth is aggressive"),
		validation.Check("terminalGrowthRate", rateBelowGrowth, "Terminal growth rate must be below the discount rate"),

		validation.Range("discountRate", func(in Inputs) float64 { return in.DiscountRate }, 0, 50, "Discount rate must be between 0% and 50%"),
		validation.Check("discountRate", rateBelowGrowth, "Discount rate must exceed the terminal growth rate"),

		validation.Range("riskFreeRate", func(in Inputs) float64 { return in.RiskFreeRate }, -5, 20, "Risk-free rate must be between -5% and 20%"),
		validation.Range("beta", func(in Inputs) float64 { return in.Beta }, -3, 5, "Beta must be between -3 and 5"),
		validation.Range("marketRiskPremium", func(in Inputs) float64 { return in.MarketRiskPremium }, 0, 20, "Market risk premium must be between 0% and 20%"),
		validation.Range("costOfDebt", func(in Inputs) float64 { return in.CostOfDebt }, 0, 50, "Cost of debt must be between 0% and 50%"),
		validation.Range("taxRate", func(in Inputs) float64 { return in.TaxRate }, 0, 100, "Tax rate must be between 0% and 100%"),
		validation.Range("debtRatio", func(in Inputs) float64 { return in.DebtRatio }, 0, 100, "Debt ratio must be between 0% and 100%"),

		nonNegative("totalDebt", "Total debt", func(in Inputs) float64 { return in.TotalDebt }),
		nonNegative("cashAndEquivalents", "Cash", func(in Inputs) float64 { return in.CashAndEquivalents }),
		validation.Positive("sharesOutstanding", func(in Inputs) float64 { return in.SharesOutstanding }, "Shares outstanding must be greater than 0"),

		nonNegative("industryEvToEbitda", "EV/EBITDA multiple", func(in Inputs) float64 { return in.IndustryEvToEbitda }),
		nonNegative("industryPeRatio", "P/E ratio", func(in Inputs) float64 { return in.IndustryPeRatio }),
		nonNegative("industryEvToRevenue", "EV/Revenue multiple", func(in Inputs) float64 { return in.IndustryEvToRevenue }),
	}
}
