package valuation

import (
	"github.com/iwvelando/finance-calculators/internal/registry"
)

// ID is the registry id of the calculator.
const ID = "business-valuation"

// ExampleInputs returns a mid-sized profitable software company.
func ExampleInputs() Inputs {
	return Inputs{
		CompanyName:         "Acme Software",
		Revenue:             50_000_000,
		EBITDA:              12_000_000,
		NetIncome:           7_000_000,
		FreeCashFlow:        8_000_000,
		RevenueGrowthRate:   12,
		ProjectionYears:     5,
		RiskFreeRate:        4,
		Beta:                1.2,
		MarketRiskPremium:   5.5,
		CostOfDebt:          6,
		TaxRate:             25,
		DebtRatio:           20,
		TerminalGrowthRate:  2.5,
		TotalDebt:           15_000_000,
		CashAndEquivalents:  5_000_000,
		SharesOutstanding:   10_000_000,
		IndustryEvToEbitda:  12,
		IndustryPeRatio:     20,
		IndustryEvToRevenue: 3,
	}
}

func startupExample() Inputs {
	return Inputs{
		CompanyName:         "Rocket Labs",
		Revenue:             4_000_000,
		EBITDA:              -500_000,
		NetIncome:           -900_000,
		FreeCashFlow:        200_000,
		RevenueGrowthRate:   60,
		ProjectionYears:     7,
		DiscountRate:        20,
		TerminalGrowthRate:  3,
		CashAndEquivalents:  3_000_000,
		SharesOutstanding:   2_000_000,
		IndustryEvToRevenue: 6,
	}
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          ID,
		Title:       "Business Valuation Calculator",
		Category:    "business",
		Description: "Discounted cash flow valuation with WACC, terminal value, peer multiples and sensitivity analysis.",
		Version:     "1.0.0",
		Tags:        []string{"dcf", "wacc", "multiples", "valuation"},
		Inputs: []registry.Field{
			registry.Text("companyName", "Company name"),
			registry.Currency("revenue", "Revenue").AtLeast(0).Require(),
			registry.Currency("ebitda", "EBITDA"),
			registry.Currency("netIncome", "Net income"),
			registry.Currency("freeCashFlow", "Free cash flow").Require(),
			registry.Percentage("revenueGrowthRate", "Growth rate").Between(-50, 200),
			registry.Integer("projectionYears", "Projection years").Between(1, 30).WithDefault(c.Defaults.ProjectionYears),
			registry.Percentage("discountRate", "Discount rate").Between(0, 50).Describe("Leave at 0 to derive WACC"),
			registry.Percentage("riskFreeRate", "Risk-free rate"),
			registry.Number("beta", "Beta").Between(-3, 5).WithDefault(c.Defaults.Beta),
			registry.Percentage("marketRiskPremium", "Market risk premium").WithDefault(c.Defaults.MarketRiskPremium),
			registry.Percentage("costOfDebt", "Cost of debt"),
			registry.Percentage("taxRate", "Tax rate").Between(0, 100),
			registry.Percentage("debtRatio", "Debt ratio").Between(0, 100),
			registry.Percentage("terminalGrowthRate", "Terminal growth").Between(-5, 10),
			registry.Currency("totalDebt", "Total debt").AtLeast(0),
			registry.Currency("cashAndEquivalents", "Cash and equivalents").AtLeast(0),
			registry.Number("sharesOutstanding", "Shares outstanding").AtLeast(0).Require(),
			registry.Number("industryEvToEbitda", "Industry EV/EBITDA").In("x").AtLeast(0),
			registry.Number("industryPeRatio", "Industry P/E").In("x").AtLeast(0),
			registry.Number("industryEvToRevenue", "Industry EV/Revenue").In("x").AtLeast(0),
		},
		Outputs: []registry.Field{
			registry.Percentage("wacc", "WACC"),
			registry.Currency("enterpriseValue", "Enterprise value"),
			registry.Currency("equityValue", "Equity value"),
			registry.Currency("valuePerShare", "Value per share"),
			registry.Currency("blendedValuation", "Blended valuation"),
			registry.Percentage("terminalValuePercent", "Terminal value share"),
			registry.Integer("confidenceLevel", "Confidence").Between(1, 10),
		},
		Examples: []registry.Example{
			registry.NewExample("profitable-software", "Profitable software company valued on WACC", ExampleInputs()),
			registry.NewExample("high-growth-startup", "Fast-growing startup with a venture discount rate", startupExample()),
		},
	}
}

// Bind returns the calculator in its registry form.
func (c *Calculator) Bind() registry.Calculator {
	return registry.Bind(registry.Module[Inputs, Outputs]{
		Descriptor:    c.Descriptor(),
		Calculate:     c.Calculate,
		Validate:      c.Validate,
		ValidateField: c.ValidateField,
	})
}

// Descriptor returns the catalog entry with the built-in defaults.
func Descriptor() registry.Descriptor {
	return defaultCalculator.Descriptor()
}
