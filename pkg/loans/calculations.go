// Package loans provides common loan processing utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given payment.
type Payment struct {
	Number             int     `json:"number" yaml:"number"`
	Date               string  `json:"date" yaml:"date"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	ExtraPrincipal     float64 `json:"extraPrincipal" yaml:"extraPrincipal"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// Terms describes a fixed-rate amortizing loan.
type Terms struct {
	Name                string
	Principal           float64
	DownPayment         float64
	AnnualInterestRate  float64 // percent
	TermMonths          int
	StartDate           string // YYYY-MM
	ExtraMonthlyPayment float64
	ExtraPayments       map[string]float64 // one-off extra principal keyed by YYYY-MM
}

// Summary aggregates a generated schedule.
type Summary struct {
	MonthlyPayment float64
	TotalPaid      float64
	TotalInterest  float64
	TotalExtra     float64
	PayoffMonths   int
	PayoffDate     string
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return (principal - downPayment) / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return (principal - downPayment) * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate builds the month-by-month schedule until the balance reaches zero
// or the term ends. Extra principal is capped so the loan is never overpaid.
func (g *ScheduleGenerator) Generate(terms Terms) ([]Payment, error) {
	if terms.TermMonths <= 0 {
		return nil, fmt.Errorf("loan %s: term must be positive", terms.Name)
	}
	if _, err := datetime.ParseMonth(terms.StartDate); err != nil {
		return nil, fmt.Errorf("loan %s: %w", terms.Name, err)
	}

	monthlyPayment := CalculateMonthlyPayment(terms.Principal, terms.DownPayment, terms.AnnualInterestRate, terms.TermMonths)
	balance := terms.Principal - terms.DownPayment
	schedule := make([]Payment, 0, terms.TermMonths)
	date := terms.StartDate

	for n := 1; n <= terms.TermMonths && mathutil.Round(balance) > 0; n++ {
		interest := CalculateInterestPayment(balance, terms.AnnualInterestRate)
		principal := monthlyPayment - interest
		if n == terms.TermMonths || principal > balance {
			// Absorb floating point drift in the last payment.
			principal = balance
		}

		extra := CalculateExtraPrincipal(terms, date)
		if principal+extra > balance {
			g.logger.Debug("capping extra principal payment to prevent overpayment",
				zap.String("op", "loans.Generate"),
				zap.String("loan", terms.Name),
				zap.String("date", date),
				zap.Float64("requested", extra),
				zap.Float64("capped_to", balance-principal),
			)
			extra = balance - principal
		}

		balance -= principal + extra
		if mathutil.Round(balance) == 0 {
			balance = 0
		}

		schedule = append(schedule, Payment{
			Number:             n,
			Date:               date,
			Payment:            principal + interest + extra,
			Principal:          principal,
			Interest:           interest,
			ExtraPrincipal:     extra,
			RemainingPrincipal: balance,
		})

		next, err := datetime.OffsetDate(date, datetime.MonthLayout, 1)
		if err != nil {
			return nil, err
		}
		date = next
	}

	return schedule, nil
}

// CalculateExtraPrincipal returns the recurring plus one-off extra principal due on date.
func CalculateExtraPrincipal(terms Terms, date string) float64 {
	amount := terms.ExtraMonthlyPayment
	if terms.ExtraPayments != nil {
		amount += terms.ExtraPayments[date]
	}
	return amount
}

// Summarize totals a schedule.
func Summarize(schedule []Payment) Summary {
	var summary Summary
	if len(schedule) == 0 {
		return summary
	}
	summary.MonthlyPayment = schedule[0].Principal + schedule[0].Interest
	for _, payment := range schedule {
		summary.TotalPaid += payment.Payment
		summary.TotalInterest += payment.Interest
		summary.TotalExtra += payment.ExtraPrincipal
	}
	last := schedule[len(schedule)-1]
	summary.PayoffMonths = last.Number
	summary.PayoffDate = last.Date
	return summary
}
