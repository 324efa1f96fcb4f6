package loan

import (
	"github.com/iwvelando/finance-calculators/internal/registry"
)

// ID is the registry id of the calculator.
const ID = "amortized-loan"

// ExampleInputs returns a 30-year mortgage with a small extra payment.
func ExampleInputs() Inputs {
	return Inputs{
		LoanAmount:          300_000,
		DownPayment:         60_000,
		AnnualInterestRate:  6.5,
		TermMonths:          360,
		ExtraMonthlyPayment: 200,
		StartDate:           "2025-01",
		LoanType:            Mortgage,
	}
}

func autoExample() Inputs {
	return Inputs{
		LoanAmount:         35_000,
		DownPayment:        5_000,
		AnnualInterestRate: 7.9,
		TermMonths:         60,
		LumpSumPayments:    map[string]float64{"2026-06": 2_000},
		StartDate:          "2025-07",
		LoanType:           Auto,
	}
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          ID,
		Title:       "Amortized Loan Calculator",
		Category:    "lending",
		Description: "Monthly payment, amortization schedule and the interest and time saved by extra principal payments.",
		Version:     "1.0.0",
		Tags:        []string{"loan", "mortgage", "amortization"},
		Inputs: []registry.Field{
			registry.Currency("loanAmount", "Loan amount").AtLeast(0).Require(),
			registry.Currency("downPayment", "Down payment").AtLeast(0),
			registry.Percentage("annualInterestRate", "Interest rate").Between(0, 50).Require(),
			registry.Integer("termMonths", "Term").In("months").Between(1, 600).Require(),
			registry.Currency("extraMonthlyPayment", "Extra monthly payment").AtLeast(0),
			registry.List("lumpSumPayments", "Lump sums").Describe("One-off extra principal keyed by YYYY-MM"),
			registry.Month("startDate", "First payment").Describe("Defaults to this month"),
			registry.Select("loanType", "Loan type", LoanTypes...).WithDefault(c.Defaults.LoanType),
		},
		Outputs: []registry.Field{
			registry.Currency("monthlyPayment", "Monthly payment"),
			registry.Currency("totalInterest", "Total interest"),
			registry.Currency("totalPaid", "Total paid"),
			registry.Month("payoffDate", "Payoff date"),
			registry.Currency("interestSaved", "Interest saved"),
			registry.Integer("monthsSaved", "Months saved"),
			registry.Percentage("effectiveAnnualRate", "Effective annual rate"),
		},
		Examples: []registry.Example{
			registry.NewExample("mortgage-with-extra", "30-year mortgage paying 200 extra a month", ExampleInputs()),
			registry.NewExample("auto-lump-sum", "Five-year auto loan with one lump sum", autoExample()),
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
