package rentalyield

import (
	"strings"

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
	financed := func(in Inputs) bool {
		return strings.EqualFold(strings.TrimSpace(in.FinancingType), Mortgage)
	}
	expense := func(field, label string, get func(Inputs) float64) validation.Rule[Inputs] {
		return validation.NonNegative(field, get, label+" cannot be negative")
	}
	grossYield := func(in Inputs) float64 { return GrossYield(in.PropertyPrice, in.MonthlyRent) }

	return validation.Table[Inputs]{
		validation.Positive("propertyPrice", func(in Inputs) float64 { return in.PropertyPrice }, "Property price must be greater than 0"),
		validation.Positive("monthlyRent", func(in Inputs) float64 { return in.MonthlyRent }, "Monthly rent must be greater than 0"),
		validation.Warn("monthlyRent", func(in Inputs) bool {
			return in.PropertyPrice > 0 && in.MonthlyRent > 0 && grossYield(in) < 3
		}, "Gross yield below 3% is unusually low"),
		validation.Warn("monthlyRent", func(in Inputs) bool {
			return in.PropertyPrice > 0 && grossYield(in) > 20
		}, "Gross yield above 20% is unusually high; check the rent"),
		validation.Range("vacancyRate", func(in Inputs) float64 { return in.VacancyRate }, 0, 100, "Vacancy rate must be between 0% and 100%"),
		validation.Above("vacancyRate", func(in Inputs) float64 { return in.VacancyRate }, 20, "Vacancy above 20% is high for most markets"),

		expense("annualOperatingExpenses", "Operating expenses", func(in Inputs) float64 { return in.AnnualOperatingExpenses }),
		expense("annualPropertyTaxes", "Property taxes", func(in Inputs) float64 { return in.AnnualPropertyTaxes }),
		expense("annualInsurance", "Insurance", func(in Inputs) float64 { return in.AnnualInsurance }),
		expense("annualMaintenance", "Maintenance", func(in Inputs) float64 { return in.AnnualMaintenance }),
		expense("annualManagementFees", "Management fees", func(in Inputs) float64 { return in.AnnualManagementFees }),
		expense("otherAnnualCosts", "Other costs", func(in Inputs) float64 { return in.OtherAnnualCosts }),
		expense("closingCosts", "Closing costs", func(in Inputs) float64 { return in.ClosingCosts }),
		validation.Warn("annualOperatingExpenses", func(in Inputs) bool { return TotalExpenses(in) == 0 }, "No expenses entered; every property has running costs"),

		validation.OneOf("financingType", func(in Inputs) string { return in.FinancingType }, FinancingTypes, "Financing type must be cash or mortgage").
			If(func(in Inputs) bool { return strings.TrimSpace(in.FinancingType) != "" }),
		validation.Range("downPaymentPercent", func(in Inputs) float64 { return in.DownPaymentPercent }, 0, 100, "Down payment must be between 0% and 100%").
			If(financed),
		validation.Warn("downPaymentPercent", func(in Inputs) bool { return in.DownPaymentPercent < 20 }, "Down payments below 20% usually require mortgage insurance").
			If(financed),
		validation.Range("interestRate", func(in Inputs) float64 { return in.InterestRate }, 0, 30, "Interest rate must be between 0% and 30%").
			If(financed),
		validation.Range("loanTermYears", func(in Inputs) float64 { return float64(in.LoanTermYears) }, 1, 40, "Loan term must be between 1 and 40 years").
			If(func(in Inputs) bool { return financed(in) && in.LoanTermYears != 0 }),

		validation.Range("annualAppreciationRate", func(in Inputs) float64 { return in.AnnualAppreciationRate }, -20, 30, "Appreciation must be between -20% and 30%"),
		validation.Range("annualRentGrowth", func(in Inputs) float64 { return in.AnnualRentGrowth }, -20, 30, "Rent growth must be between -20% and 30%"),
		validation.Range("holdingPeriodYears", func(in Inputs) float64 { return float64(in.HoldingPeriodYears) }, 1, 50, "Holding period must be between 1 and 50 years").
			If(func(in Inputs) bool { return in.HoldingPeriodYears != 0 }),
	}
}
