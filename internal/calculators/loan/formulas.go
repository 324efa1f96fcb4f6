package loan

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// EffectiveAnnualRate converts a nominal annual rate compounded monthly to
// the effective annual rate, both in percent.
func EffectiveAnnualRate(nominal float64) float64 {
	monthly := mathutil.PercentToDecimal(nominal) / constants.MonthsPerYear
	return (math.Pow(1+monthly, constants.MonthsPerYear) - 1) * constants.PercentageMultiplier
}

func (c *Calculator) normalize(in Inputs) Inputs {
	in.LoanType = strings.ToLower(strings.TrimSpace(in.LoanType))
	if in.LoanType == "" {
		in.LoanType = c.Defaults.LoanType
	}
	in.StartDate = strings.TrimSpace(in.StartDate)
	if in.StartDate == "" {
		in.StartDate = c.Now().Format(datetime.MonthLayout)
	}
	return in
}

func (c *Calculator) terms(in Inputs, withExtras bool) loans.Terms {
	t := loans.Terms{
		Name:               in.LoanType,
		Principal:          in.LoanAmount,
		DownPayment:        in.DownPayment,
		AnnualInterestRate: in.AnnualInterestRate,
		TermMonths:         in.TermMonths,
		StartDate:          in.StartDate,
	}
	if withExtras {
		t.ExtraMonthlyPayment = in.ExtraMonthlyPayment
		t.ExtraPayments = in.LumpSumPayments
	}
	return t
}

// Calculate amortizes the loan described by in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{Advice: insights.NewAdvice(), YearlySummary: []YearSummary{}, Schedule: []loans.Payment{}}
	financed := in.LoanAmount - in.DownPayment
	out.FinancedAmount = mathutil.Round(financed)
	out.EffectiveAnnualRate = mathutil.RoundRatio(EffectiveAnnualRate(in.AnnualInterestRate))
	if financed <= 0 {
		out.Factor("Down payment of %.2f covers the full price; nothing is financed", in.DownPayment)
		out.Recommend("No loan is needed; compare the rate with what the cash would earn before buying outright")
		return out
	}

	generator := loans.NewScheduleGenerator(nil)
	schedule, err := generator.Generate(c.terms(in, true))
	if err != nil {
		out.Risk("Schedule unavailable: %v", err)
		return out
	}
	baseline, err := generator.Generate(c.terms(in, false))
	if err != nil {
		out.Risk("Schedule unavailable: %v", err)
		return out
	}

	summary := loans.Summarize(schedule)
	base := loans.Summarize(baseline)
	out.MonthlyPayment = mathutil.Round(loans.CalculateMonthlyPayment(in.LoanAmount, in.DownPayment, in.AnnualInterestRate, in.TermMonths))
	out.TotalPaid = mathutil.Round(summary.TotalPaid)
	out.TotalInterest = mathutil.Round(summary.TotalInterest)
	out.TotalExtra = mathutil.Round(summary.TotalExtra)
	out.InterestToPrincipal = mathutil.RoundRatio(mathutil.SafeDivide(summary.TotalInterest*constants.PercentageMultiplier, financed, 0))
	out.PayoffMonths = summary.PayoffMonths
	out.PayoffDate = summary.PayoffDate
	out.BaselineTotalInterest = mathutil.Round(base.TotalInterest)
	out.BaselinePayoffDate = base.PayoffDate
	out.InterestSaved = mathutil.Round(math.Max(0, base.TotalInterest-summary.TotalInterest))
	out.MonthsSaved = max(0, base.PayoffMonths-summary.PayoffMonths)

	out.Schedule = make([]loans.Payment, 0, len(schedule))
	for _, p := range schedule {
		out.Schedule = append(out.Schedule, loans.Payment{
			Number:             p.Number,
			Date:               p.Date,
			Payment:            mathutil.Round(p.Payment),
			Principal:          mathutil.Round(p.Principal),
			Interest:           mathutil.Round(p.Interest),
			ExtraPrincipal:     mathutil.Round(p.ExtraPrincipal),
			RemainingPrincipal: mathutil.Round(p.RemainingPrincipal),
		})
	}
	out.YearlySummary = yearly(schedule)

	c.advise(&out.Advice, in, out)
	return out
}

// yearly groups a schedule by calendar year.
func yearly(schedule []loans.Payment) []YearSummary {
	result := []YearSummary{}
	for _, p := range schedule {
		year, err := strconv.Atoi(p.Date[:4])
		if err != nil {
			continue
		}
		if len(result) == 0 || result[len(result)-1].Year != year {
			result = append(result, YearSummary{Year: year})
		}
		y := &result[len(result)-1]
		y.Principal += p.Principal
		y.Interest += p.Interest
		y.Extra += p.ExtraPrincipal
		y.EndingBalance = p.RemainingPrincipal
	}
	for i := range result {
		result[i].Principal = mathutil.Round(result[i].Principal)
		result[i].Interest = mathutil.Round(result[i].Interest)
		result[i].Extra = mathutil.Round(result[i].Extra)
		result[i].EndingBalance = mathutil.Round(result[i].EndingBalance)
	}
	return result
}

func (c *Calculator) advise(a *insights.Advice, in Inputs, out Outputs) {
	a.Factor("%d-month %s loan of %.2f at %.3f%%", in.TermMonths, in.LoanType, out.FinancedAmount, in.AnnualInterestRate)
	a.Factor("Monthly payment %.2f; interest totals %.2f (%.1f%% of principal)", out.MonthlyPayment, out.TotalInterest, out.InterestToPrincipal)
	a.Factor("Paid off %s after %d payments", out.PayoffDate, out.PayoffMonths)

	if typical, ok := c.Defaults.TypicalRates[in.LoanType]; ok && in.AnnualInterestRate > typical {
		a.Risk("Rate is above the typical %.1f%% for %s loans", typical, in.LoanType)
	}
	if out.InterestToPrincipal > 50 {
		a.Risk("Interest adds more than half the principal to the cost")
	}
	if in.TermMonths > 360 {
		a.Risk("Terms beyond 30 years build equity very slowly")
	}

	if out.MonthsSaved > 0 {
		a.Opportunity("Extra payments save %.2f of interest and %d months", out.InterestSaved, out.MonthsSaved)
	}
	if in.ExtraMonthlyPayment == 0 && in.AnnualInterestRate > 0 {
		a.Opportunity("Adding %.2f a month would shorten the loan", math.Ceil(out.MonthlyPayment/10))
	}

	switch {
	case in.AnnualInterestRate == 0:
		a.Recommend("Interest-free: keep the scheduled payments and invest any surplus")
	case in.AnnualInterestRate > c.Defaults.TypicalRates[in.LoanType]:
		a.Recommend("Shop for a lower rate or refinance once credit improves")
	default:
		a.Recommend("Prepay principal when the rate beats your expected investment return")
	}
}
