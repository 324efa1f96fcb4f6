package loan

import (
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
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
	return validation.Table[Inputs]{
		validation.Positive("loanAmount", func(in Inputs) float64 { return in.LoanAmount }, "Loan amount must be greater than 0"),
		validation.Check("downPayment", func(in Inputs) bool { return in.DownPayment < 0 || in.DownPayment > in.LoanAmount }, "Down payment must be between 0 and the loan amount"),
		validation.Range("annualInterestRate", func(in Inputs) float64 { return in.AnnualInterestRate }, 0, 50, "Interest rate must be between 0% and 50%"),
		validation.Above("annualInterestRate", func(in Inputs) float64 { return in.AnnualInterestRate }, 20, "Interest rate above 20% is very high"),
		validation.Range("termMonths", func(in Inputs) float64 { return float64(in.TermMonths) }, 1, 600, "Term must be between 1 and 600 months"),
		validation.NonNegative("extraMonthlyPayment", func(in Inputs) float64 { return in.ExtraMonthlyPayment }, "Extra payment cannot be negative"),
		validation.Check("lumpSumPayments", func(in Inputs) bool {
			for month, amount := range in.LumpSumPayments {
				if _, err := datetime.ParseMonth(month); err != nil || amount < 0 {
					return true
				}
			}
			return false
		}, "Lump sums must be keyed by YYYY-MM with non-negative amounts"),
		validation.Date("startDate", func(in Inputs) string { return in.StartDate }, datetime.MonthLayout, true, "Start date must be in YYYY-MM format"),
		validation.OneOf("loanType", func(in Inputs) string { return in.LoanType }, LoanTypes, "").
			If(func(in Inputs) bool { return strings.TrimSpace(in.LoanType) != "" }),
	}
}
