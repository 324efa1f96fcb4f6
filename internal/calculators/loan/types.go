// Package loan implements the amortized loan calculator: the annuity
// payment, a month-by-month schedule with extra principal and the savings
// the extra payments buy.
package loan

import (
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/loans"
)

// Inputs describes a fixed-rate loan. The rate is an annual percentage.
type Inputs struct {
	LoanAmount          float64            `json:"loanAmount"`
	DownPayment         float64            `json:"downPayment"`
	AnnualInterestRate  float64            `json:"annualInterestRate"`
	TermMonths          int                `json:"termMonths"`
	ExtraMonthlyPayment float64            `json:"extraMonthlyPayment"`
	LumpSumPayments     map[string]float64 `json:"lumpSumPayments,omitempty"` // keyed by YYYY-MM
	StartDate           string             `json:"startDate,omitempty"`       // YYYY-MM
	LoanType            string             `json:"loanType"`
}

// Loan types.
const (
	Mortgage = "mortgage"
	Auto     = "auto"
	Personal = "personal"
	Student  = "student"
	Business = "business"
)

// LoanTypes lists the accepted loan types.
var LoanTypes = []string{Mortgage, Auto, Personal, Student, Business}

// YearSummary totals the payments of one calendar year.
type YearSummary struct {
	Year          int     `json:"year" yaml:"year"`
	Principal     float64 `json:"principal" yaml:"principal"`
	Interest      float64 `json:"interest" yaml:"interest"`
	Extra         float64 `json:"extra" yaml:"extra"`
	EndingBalance float64 `json:"endingBalance" yaml:"endingBalance"`
}

// Outputs holds the amortization.
type Outputs struct {
	FinancedAmount        float64 `json:"financedAmount" yaml:"financedAmount"`
	MonthlyPayment        float64 `json:"monthlyPayment" yaml:"monthlyPayment"`
	EffectiveAnnualRate   float64 `json:"effectiveAnnualRate" yaml:"effectiveAnnualRate"`
	TotalPaid             float64 `json:"totalPaid" yaml:"totalPaid"`
	TotalInterest         float64 `json:"totalInterest" yaml:"totalInterest"`
	TotalExtra            float64 `json:"totalExtra" yaml:"totalExtra"`
	InterestToPrincipal   float64 `json:"interestToPrincipal" yaml:"interestToPrincipal"` // percent
	PayoffMonths          int     `json:"payoffMonths" yaml:"payoffMonths"`
	PayoffDate            string  `json:"payoffDate" yaml:"payoffDate"`
	BaselineTotalInterest float64 `json:"baselineTotalInterest" yaml:"baselineTotalInterest"`
	BaselinePayoffDate    string  `json:"baselinePayoffDate" yaml:"baselinePayoffDate"`
	InterestSaved         float64 `json:"interestSaved" yaml:"interestSaved"`
	MonthsSaved           int     `json:"monthsSaved" yaml:"monthsSaved"`

	YearlySummary   []YearSummary   `json:"yearlySummary" yaml:"yearlySummary"`
	Schedule        []loans.Payment `json:"schedule" yaml:"schedule"`
	insights.Advice `yaml:",inline"`
}

// Defaults holds the values used for empty optional inputs and the rates
// considered typical per loan type.
type Defaults struct {
	LoanType     string             `json:"loanType"`
	TypicalRates map[string]float64 `json:"typicalRates"`
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		LoanType: Personal,
		TypicalRates: map[string]float64{
			Mortgage: 7,
			Auto:     9,
			Personal: 15,
			Student:  8,
			Business: 10,
		},
	}
}
