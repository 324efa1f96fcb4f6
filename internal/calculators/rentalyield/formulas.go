package rentalyield

import (
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var ratings = []string{Excellent, Good, Fair, Poor}

// TotalExpenses sums the annual operating costs of in.
func TotalExpenses(in Inputs) float64 {
	return in.AnnualOperatingExpenses + in.AnnualPropertyTaxes + in.AnnualInsurance +
		in.AnnualMaintenance + in.AnnualManagementFees + in.OtherAnnualCosts
}

// GrossYield returns the annual rent as a percentage of the price.
func GrossYield(price, monthlyRent float64) float64 {
	return mathutil.SafeDivide(monthlyRent*constants.MonthsPerYear*constants.PercentageMultiplier, price, 0)
}

func (c *Calculator) normalize(in Inputs) Inputs {
	in.FinancingType = strings.ToLower(strings.TrimSpace(in.FinancingType))
	if in.FinancingType == "" {
		in.FinancingType = c.Defaults.FinancingType
	}
	if in.LoanTermYears == 0 {
		in.LoanTermYears = c.Defaults.LoanTermYears
	}
	if in.HoldingPeriodYears == 0 {
		in.HoldingPeriodYears = c.Defaults.HoldingPeriodYears
	}
	return in
}

// mortgage generates the monthly schedule of the loan. A schedule that
// cannot be generated is treated as no loan.
func (c *Calculator) mortgage(in Inputs, downPayment float64) []loans.Payment {
	schedule, err := loans.NewScheduleGenerator(nil).Generate(loans.Terms{
		Name:               "mortgage",
		Principal:          in.PropertyPrice,
		DownPayment:        downPayment,
		AnnualInterestRate: in.InterestRate,
		TermMonths:         in.LoanTermYears * constants.MonthsPerYear,
		StartDate:          c.Now().Format(datetime.MonthLayout),
	})
	if err != nil {
		return nil
	}
	return schedule
}

// yearOf returns the payments due in holding year y (1-based).
func yearOf(schedule []loans.Payment, y int) []loans.Payment {
	from := (y - 1) * constants.MonthsPerYear
	if from >= len(schedule) {
		return nil
	}
	return schedule[from:min(len(schedule), from+constants.MonthsPerYear)]
}

// balanceAfter returns the loan balance at the end of holding year y.
func balanceAfter(schedule []loans.Payment, y int) float64 {
	n := y * constants.MonthsPerYear
	if len(schedule) == 0 || n > len(schedule) {
		return 0
	}
	return schedule[n-1].RemainingPrincipal
}

// Calculate analyses the property described by in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{Advice: insights.NewAdvice()}
	price := in.PropertyPrice

	// Income and operating costs
	gross := in.MonthlyRent * constants.MonthsPerYear
	vacancyLoss := mathutil.ApplyPercentage(gross, in.VacancyRate)
	egi := gross - vacancyLoss
	expenses := TotalExpenses(in)
	noi := egi - expenses
	out.GrossAnnualRent = mathutil.Round(gross)
	out.VacancyLoss = mathutil.Round(vacancyLoss)
	out.EffectiveGrossIncome = mathutil.Round(egi)
	out.TotalOperatingExpenses = mathutil.Round(expenses)
	out.NetOperatingIncome = mathutil.Round(noi)
	out.GrossRentalYield = mathutil.RoundRatio(GrossYield(price, in.MonthlyRent))
	out.CapRate = mathutil.RoundRatio(mathutil.SafeDivide(noi*constants.PercentageMultiplier, price, 0))
	out.ExpenseRatio = mathutil.RoundRatio(mathutil.SafeDivide(expenses*constants.PercentageMultiplier, egi, 0))
	out.GrossRentMultiplier = mathutil.RoundRatio(mathutil.SafeDivide(price, gross, 0))

	// Financing
	financed := in.FinancingType == Mortgage
	invested := price + in.ClosingCosts
	var debtService float64
	var schedule []loans.Payment
	if financed {
		down := mathutil.ApplyPercentage(price, in.DownPaymentPercent)
		payment := loans.CalculateMonthlyPayment(price, down, in.InterestRate, in.LoanTermYears*constants.MonthsPerYear)
		schedule = c.mortgage(in, down)
		debtService = payment * constants.MonthsPerYear
		invested = down + in.ClosingCosts
		var interest float64
		for _, p := range yearOf(schedule, 1) {
			interest += p.Interest
		}
		out.LoanAmount = mathutil.Round(price - down)
		out.MonthlyMortgagePayment = mathutil.Round(payment)
		out.AnnualDebtService = mathutil.Round(debtService)
		out.FirstYearInterest = mathutil.Round(interest)
		out.LoanToValue = mathutil.RoundRatio(mathutil.CalculatePercentage(price-down, price))
		out.DebtServiceCoverageRatio = mathutil.RoundRatio(mathutil.SafeDivide(noi, debtService, 0))
	}
	out.NetRentalYield = mathutil.RoundRatio(mathutil.SafeDivide((noi-out.FirstYearInterest)*constants.PercentageMultiplier, price, 0))

	cashFlow := noi - debtService
	out.AnnualCashFlow = mathutil.Round(cashFlow)
	out.MonthlyCashFlow = mathutil.Round(cashFlow / constants.MonthsPerYear)
	out.TotalCashInvested = mathutil.Round(invested)
	out.CashOnCashReturn = mathutil.RoundRatio(mathutil.SafeDivide(cashFlow*constants.PercentageMultiplier, invested, 0))
	out.BreakEvenOccupancy = mathutil.RoundRatio(mathutil.SafeDivide((expenses+debtService)*constants.PercentageMultiplier, gross, 0))

	c.project(&out, in, schedule, invested)

	out.InvestmentRating = c.rating(out.CapRate, cashFlow)
	out.RiskScore = c.riskScore(in, out, financed)
	out.ConfidenceLevel = c.confidenceLevel(in, out, financed)
	out.Strategies = c.strategies(in, out, financed)
	c.advise(&out.Advice, in, out, financed)
	return out
}

// project fills the year-by-year projection and the sale at the end of the
// holding period.
func (c *Calculator) project(out *Outputs, in Inputs, schedule []loans.Payment, invested float64) {
	rentGrowth := 1 + mathutil.PercentToDecimal(in.AnnualRentGrowth)
	expenseGrowth := 1 + mathutil.PercentToDecimal(c.Defaults.ExpenseGrowthRate)
	appreciation := 1 + mathutil.PercentToDecimal(in.AnnualAppreciationRate)
	occupancy := 1 - mathutil.PercentToDecimal(in.VacancyRate)
	gross := in.MonthlyRent * constants.MonthsPerYear
	expenses := TotalExpenses(in)

	out.Projection = make([]YearProjection, 0, in.HoldingPeriodYears)
	var cumulative, value, balance float64
	for y := 1; y <= in.HoldingPeriodYears; y++ {
		rent := gross * math.Pow(rentGrowth, float64(y-1))
		noi := rent*occupancy - expenses*math.Pow(expenseGrowth, float64(y-1))
		var debt float64
		for _, p := range yearOf(schedule, y) {
			debt += p.Payment
		}
		cashFlow := noi - debt
		cumulative += cashFlow
		value = in.PropertyPrice * math.Pow(appreciation, float64(y))
		balance = balanceAfter(schedule, y)
		out.Projection = append(out.Projection, YearProjection{
			Year:               y,
			AnnualRent:         mathutil.Round(rent),
			NetOperatingIncome: mathutil.Round(noi),
			CashFlow:           mathutil.Round(cashFlow),
			PropertyValue:      mathutil.Round(value),
			LoanBalance:        mathutil.Round(balance),
			Equity:             mathutil.Round(value - balance),
		})
	}

	sale := value*(1-mathutil.PercentToDecimal(c.Defaults.SellingCostPercent)) - balance
	profit := sale + cumulative - invested
	out.FutureValue = mathutil.Round(value)
	out.TotalAppreciation = mathutil.Round(value - in.PropertyPrice)
	out.CumulativeCashFlow = mathutil.Round(cumulative)
	out.SaleProceeds = mathutil.Round(sale)
	out.TotalProfit = mathutil.Round(profit)
	out.TotalReturn = mathutil.RoundRatio(mathutil.SafeDivide(profit*constants.PercentageMultiplier, invested, 0))

	annualized := -constants.PercentageMultiplier
	if growth := mathutil.SafeDivide(invested+profit, invested, 0); growth > 0 {
		annualized = (math.Pow(growth, 1/float64(in.HoldingPeriodYears)) - 1) * constants.PercentageMultiplier
	}
	out.AnnualizedReturn = mathutil.RoundRatio(annualized)
}

func (c *Calculator) rating(capRate, cashFlow float64) string {
	i := len(ratings) - 1
	switch {
	case capRate >= c.Defaults.ExcellentCapRate:
		i = 0
	case capRate >= c.Defaults.GoodCapRate:
		i = 1
	case capRate >= c.Defaults.FairCapRate:
		i = 2
	}
	if cashFlow < 0 && i < len(ratings)-1 {
		i++
	}
	return ratings[i]
}

func (c *Calculator) riskScore(in Inputs, out Outputs, financed bool) int {
	score := 3
	if in.VacancyRate > 10 {
		score++
	}
	if out.ExpenseRatio > 50 {
		score++
	}
	if financed && out.DebtServiceCoverageRatio < c.Defaults.MinimumDSCR {
		score += 2
	}
	if out.AnnualCashFlow < 0 {
		score += 2
	}
	if out.LoanToValue > 80 {
		score++
	}
	if out.GrossRentalYield < 5 {
		score++
	}
	return mathutil.ClampScore(score)
}

func (c *Calculator) confidenceLevel(in Inputs, out Outputs, financed bool) int {
	level := constants.NeutralConfidence
	if out.CapRate >= c.Defaults.GoodCapRate {
		level++
	}
	if out.CapRate < c.Defaults.FairCapRate {
		level--
	}
	if !financed || out.DebtServiceCoverageRatio >= c.Defaults.MinimumDSCR {
		level++
	}
	if in.VacancyRate > 15 {
		level--
	}
	if out.AnnualCashFlow < 0 {
		level--
	}
	if TotalExpenses(in) == 0 {
		// Nobody owns a property for free.
		level--
	}
	return mathutil.ClampScore(level)
}

func (c *Calculator) strategies(in Inputs, out Outputs, financed bool) []insights.Strategy {
	return []insights.Strategy{
		{
			Name:           "Buy and hold",
			Description:    "Collect rent for the holding period and sell at the appreciated value.",
			ExpectedReturn: out.AnnualizedReturn,
			RiskLevel:      insights.Level(out.RiskScore),
			Suitable:       out.AnnualCashFlow >= 0,
		},
		{
			Name:           "Value-add renovation",
			Description:    "Renovate to lift rents and cut vacancy and maintenance.",
			ExpectedReturn: mathutil.RoundRatio(out.CapRate + in.AnnualAppreciationRate + 2),
			RiskLevel:      insights.LevelHigh,
			Suitable:       out.ExpenseRatio > 40 || in.VacancyRate > 8,
		},
		{
			Name:           "Cash-flow first",
			Description:    "Pay down debt or buy outright so rent covers every cost with margin.",
			ExpectedReturn: out.CapRate,
			RiskLevel:      insights.LevelLow,
			Suitable:       !financed || out.DebtServiceCoverageRatio < c.Defaults.MinimumDSCR,
		},
	}
}

func (c *Calculator) advise(a *insights.Advice, in Inputs, out Outputs, financed bool) {
	a.Factor("Gross yield %.2f%%, cap rate %.2f%%", out.GrossRentalYield, out.CapRate)
	a.Factor("Net operating income of %.2f on effective income of %.2f", out.NetOperatingIncome, out.EffectiveGrossIncome)
	a.Factor("%s purchase with %.2f cash invested", in.FinancingType, out.TotalCashInvested)

	if out.AnnualCashFlow < 0 {
		a.Risk("Negative cash flow of %.2f per month", -out.MonthlyCashFlow)
	}
	if financed && out.DebtServiceCoverageRatio < c.Defaults.MinimumDSCR {
		a.Risk("Debt service coverage of %.2f is below the %.2f lenders expect", out.DebtServiceCoverageRatio, c.Defaults.MinimumDSCR)
	}
	if out.ExpenseRatio > 50 {
		a.Risk("Expenses consume %.0f%% of income", out.ExpenseRatio)
	}
	if out.BreakEvenOccupancy > 85 {
		a.Risk("Break-even occupancy of %.0f%% leaves little room for vacancy", out.BreakEvenOccupancy)
	}
	if in.VacancyRate > 10 {
		a.Risk("Vacancy assumption of %.0f%% is high", in.VacancyRate)
	}

	if in.AnnualAppreciationRate > 0 {
		a.Opportunity("Appreciation adds %.2f over %d years", out.TotalAppreciation, in.HoldingPeriodYears)
	}
	if in.AnnualRentGrowth > 0 {
		a.Opportunity("Rent growth of %.1f%% a year raises future cash flow", in.AnnualRentGrowth)
	}
	if out.CashOnCashReturn > out.CapRate && financed {
		a.Opportunity("Leverage lifts cash-on-cash return to %.2f%%", out.CashOnCashReturn)
	}

	switch out.InvestmentRating {
	case Excellent, Good:
		a.Recommend("Returns are %s for the price; verify rent and expense estimates before offering", out.InvestmentRating)
	case Fair:
		a.Recommend("Negotiate the price down to lift the cap rate above %.1f%%", c.Defaults.GoodCapRate)
	default:
		a.Recommend("Pass unless the price, rent or expenses can change materially")
	}
	if financed && out.AnnualCashFlow < 0 {
		a.Recommend("Increase the down payment to reach positive cash flow")
	}
}
