package rentalyield

import (
	"github.com/iwvelando/finance-calculators/internal/registry"
)

// ID is the registry id of the calculator.
const ID = "rental-yield"

// ExampleInputs returns a single-family rental bought with cash.
func ExampleInputs() Inputs {
	return Inputs{
		PropertyPrice:           300_000,
		MonthlyRent:             2_500,
		VacancyRate:             5,
		AnnualOperatingExpenses: 3_000,
		AnnualPropertyTaxes:     3_600,
		AnnualInsurance:         1_200,
		AnnualMaintenance:       2_400,
		AnnualManagementFees:    3_000,
		OtherAnnualCosts:        500,
		FinancingType:           Cash,
	}
}

func mortgageExample() Inputs {
	in := ExampleInputs()
	in.FinancingType = Mortgage
	in.DownPaymentPercent = 25
	in.InterestRate = 6.5
	in.LoanTermYears = 30
	in.ClosingCosts = 9_000
	in.AnnualAppreciationRate = 3
	in.AnnualRentGrowth = 2
	in.HoldingPeriodYears = 10
	return in
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          ID,
		Title:       "Rental Yield Calculator",
		Category:    "real-estate",
		Description: "Gross and net yield, cap rate, cash flow, financing coverage and a hold-and-sell projection for a rental property.",
		Version:     "1.0.0",
		Tags:        []string{"real estate", "rental", "cap rate", "cash flow"},
		Inputs: []registry.Field{
			registry.Currency("propertyPrice", "Property price").AtLeast(0).Require(),
			registry.Currency("monthlyRent", "Monthly rent").AtLeast(0).Require(),
			registry.Percentage("vacancyRate", "Vacancy rate").Between(0, 100),
			registry.Currency("annualOperatingExpenses", "Operating expenses").AtLeast(0),
			registry.Currency("annualPropertyTaxes", "Property taxes").AtLeast(0),
			registry.Currency("annualInsurance", "Insurance").AtLeast(0),
			registry.Currency("annualMaintenance", "Maintenance").AtLeast(0),
			registry.Currency("annualManagementFees", "Management fees").AtLeast(0),
			registry.Currency("otherAnnualCosts", "Other costs").AtLeast(0),
			registry.Select("financingType", "Financing", FinancingTypes...).WithDefault(c.Defaults.FinancingType),
			registry.Percentage("downPaymentPercent", "Down payment").Between(0, 100).Describe("Mortgage only"),
			registry.Percentage("interestRate", "Interest rate").Between(0, 30).Describe("Mortgage only"),
			registry.Integer("loanTermYears", "Loan term").In("years").Between(1, 40).WithDefault(c.Defaults.LoanTermYears),
			registry.Currency("closingCosts", "Closing costs").AtLeast(0),
			registry.Percentage("annualAppreciationRate", "Appreciation").Between(-20, 30),
			registry.Percentage("annualRentGrowth", "Rent growth").Between(-20, 30),
			registry.Integer("holdingPeriodYears", "Holding period").In("years").Between(1, 50).WithDefault(c.Defaults.HoldingPeriodYears),
		},
		Outputs: []registry.Field{
			registry.Percentage("grossRentalYield", "Gross yield"),
			registry.Percentage("netRentalYield", "Net yield"),
			registry.Percentage("capRate", "Cap rate"),
			registry.Currency("netOperatingIncome", "Net operating income"),
			registry.Currency("monthlyCashFlow", "Monthly cash flow"),
			registry.Percentage("cashOnCashReturn", "Cash-on-cash return"),
			registry.Number("debtServiceCoverageRatio", "DSCR"),
			registry.Percentage("breakEvenOccupancy", "Break-even occupancy"),
			registry.Percentage("annualizedReturn", "Annualized return"),
			registry.Select("investmentRating", "Rating", ratings...),
			registry.Integer("riskScore", "Risk score").Between(1, 10),
			registry.Integer("confidenceLevel", "Confidence").Between(1, 10),
		},
		Examples: []registry.Example{
			registry.NewExample("cash-purchase", "Single-family rental bought outright", ExampleInputs()),
			registry.NewExample("mortgaged", "The same property with 25% down at 6.5%", mortgageExample()),
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
