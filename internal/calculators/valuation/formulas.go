package valuation

import (
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

func (c *Calculator) normalize(in Inputs) Inputs {
	if in.ProjectionYears <= 0 {
		in.ProjectionYears = c.Defaults.ProjectionYears
	}
	if in.Beta == 0 {
		in.Beta = c.Defaults.Beta
	}
	if in.MarketRiskPremium == 0 {
		in.MarketRiskPremium = c.Defaults.MarketRiskPremium
	}
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	return in
}

// CostOfEquity applies CAPM. All values are in percent.
func CostOfEquity(riskFreeRate, beta, marketRiskPremium float64) float64 {
	return riskFreeRate + beta*marketRiskPremium
}

// WACC weights the cost of equity and the after-tax cost of debt by the
// debt ratio. All values are in percent.
func WACC(costOfEquity, costOfDebt, taxRate, debtRatio float64) float64 {
	debtWeight := mathutil.PercentToDecimal(debtRatio)
	afterTaxDebt := costOfDebt * (1 - mathutil.PercentToDecimal(taxRate))
	return (1-debtWeight)*costOfEquity + debtWeight*afterTaxDebt
}

// discountRate returns the rate used by the DCF in percent.
func (c *Calculator) discountRate(in Inputs) float64 {
	if in.DiscountRate > 0 {
		return in.DiscountRate
	}
	return WACC(CostOfEquity(in.RiskFreeRate, in.Beta, in.MarketRiskPremium), in.CostOfDebt, in.TaxRate, in.DebtRatio)
}

type dcfResult struct {
	projections []Projection
	sumPV       float64
	terminal    float64
	pvTerminal  float64
	ev          float64
}

// DCF projects free cash flow for years years at growth, discounts it at rate
// and adds a Gordon-growth terminal value. Rates are decimals.
func DCF(fcf, revenue, growth, rate, terminalGrowth float64, years int) (enterpriseValue float64) {
	return dcf(fcf, revenue, growth, rate, terminalGrowth, years, 0).ev
}

func dcf(fcf, revenue, growth, rate, terminalGrowth float64, years, firstYear int) dcfResult {
	var r dcfResult
	r.projections = make([]Projection, 0, years)
	cash := fcf
	for t := 1; t <= years; t++ {
		cash *= 1 + growth
		df := mathutil.DiscountFactor(rate, float64(t))
		pv := cash * df
		r.sumPV += pv
		r.projections = append(r.projections, Projection{
			Year:           firstYear + t,
			Revenue:        mathutil.Round(mathutil.FutureValue(revenue, growth, float64(t))),
			FreeCashFlow:   mathutil.Round(cash),
			DiscountFactor: mathutil.RoundRatio(df),
			PresentValue:   mathutil.Round(pv),
		})
	}
	r.terminal = mathutil.GordonGrowth(cash, rate, terminalGrowth)
	r.pvTerminal = mathutil.PresentValue(r.terminal, rate, float64(years))
	r.ev = r.sumPV + r.pvTerminal
	return r
}

type method struct {
	name   string
	value  float64
	weight float64
}

// Calculate values the company described by in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{Advice: insights.NewAdvice()}

	coe := CostOfEquity(in.RiskFreeRate, in.Beta, in.MarketRiskPremium)
	wacc := WACC(coe, in.CostOfDebt, in.TaxRate, in.DebtRatio)
	rate := c.discountRate(in)
	out.CostOfEquity = mathutil.RoundRatio(coe)
	out.AfterTaxCostOfDebt = mathutil.RoundRatio(in.CostOfDebt * (1 - mathutil.PercentToDecimal(in.TaxRate)))
	out.WACC = mathutil.RoundRatio(wacc)
	out.DiscountRateUsed = mathutil.RoundRatio(rate)

	growth := mathutil.PercentToDecimal(in.RevenueGrowthRate)
	terminalGrowth := mathutil.PercentToDecimal(in.TerminalGrowthRate)
	r := mathutil.PercentToDecimal(rate)
	model := dcf(in.FreeCashFlow, in.Revenue, growth, r, terminalGrowth, in.ProjectionYears, c.Now().Year())
	netDebt := in.TotalDebt - in.CashAndEquivalents
	equity := model.ev - netDebt

	out.Projections = model.projections
	out.SumPVCashFlows = mathutil.Round(model.sumPV)
	out.TerminalValue = mathutil.Round(model.terminal)
	out.PVTerminalValue = mathutil.Round(model.pvTerminal)
	out.TerminalValuePercent = mathutil.RoundRatio(mathutil.CalculatePercentage(model.pvTerminal, model.ev))
	out.EnterpriseValue = mathutil.Round(model.ev)
	out.EquityValue = mathutil.Round(equity)
	out.ValuePerShare = mathutil.Round(mathutil.SafeDivide(equity, in.SharesOutstanding, 0))

	// Multiples
	methods := []method{{name: "dcf", value: equity, weight: c.Defaults.DCFWeight}}
	if in.IndustryEvToEbitda > 0 && in.EBITDA > 0 {
		v := in.EBITDA*in.IndustryEvToEbitda - netDebt
		out.EvToEbitdaValuation = mathutil.Round(v)
		methods = append(methods, method{name: "evToEbitda", value: v, weight: c.Defaults.EvToEbitdaWeight})
	}
	if in.IndustryEvToRevenue > 0 && in.Revenue > 0 {
		v := in.Revenue*in.IndustryEvToRevenue - netDebt
		out.EvToRevenueValuation = mathutil.Round(v)
		methods = append(methods, method{name: "evToRevenue", value: v, weight: c.Defaults.EvToRevenueWeight})
	}
	if in.IndustryPeRatio > 0 && in.NetIncome > 0 {
		v := in.NetIncome * in.IndustryPeRatio
		out.PeValuation = mathutil.Round(v)
		methods = append(methods, method{name: "pe", value: v, weight: c.Defaults.PeWeight})
	}

	var weighted, totalWeight float64
	low, high := math.Inf(1), math.Inf(-1)
	for _, m := range methods {
		weighted += m.value * m.weight
		totalWeight += m.weight
		low = math.Min(low, m.value)
		high = math.Max(high, m.value)
	}
	blended := mathutil.SafeDivide(weighted, totalWeight, equity)
	out.BlendedValuation = mathutil.Round(blended)
	out.BlendedValuePerShare = mathutil.Round(mathutil.SafeDivide(blended, in.SharesOutstanding, 0))
	out.ValuationLow = mathutil.Round(low)
	out.ValuationHigh = mathutil.Round(high)

	out.ImpliedEvToEbitda = mathutil.RoundRatio(mathutil.SafeDivide(model.ev, in.EBITDA, 0))
	out.ImpliedPeRatio = mathutil.RoundRatio(mathutil.SafeDivide(equity, in.NetIncome, 0))
	out.EbitdaMargin = mathutil.RoundRatio(mathutil.CalculatePercentage(in.EBITDA, in.Revenue))
	out.NetMargin = mathutil.RoundRatio(mathutil.CalculatePercentage(in.NetIncome, in.Revenue))
	out.FcfMargin = mathutil.RoundRatio(mathutil.CalculatePercentage(in.FreeCashFlow, in.Revenue))

	out.Sensitivity = c.sensitivity(in, rate, netDebt)
	dispersion := mathutil.SafeDivide(high-low, math.Abs(blended), 0)
	out.ConfidenceLevel = confidence(in, out.TerminalValuePercent, len(methods)-1, dispersion)
	out.Scenarios = c.scenarios(in, r, netDebt, equity)
	advise(&out.Advice, in, out, dispersion)
	return out
}

func (c *Calculator) sensitivity(in Inputs, rate, netDebt float64) []SensitivityPoint {
	points := make([]SensitivityPoint, 0, 9)
	growth := mathutil.PercentToDecimal(in.RevenueGrowthRate)
	for _, dr := range []float64{-c.Defaults.RateStep, 0, c.Defaults.RateStep} {
		for _, dg := range []float64{-c.Defaults.GrowthStep, 0, c.Defaults.GrowthStep} {
			r := rate + dr
			g := in.TerminalGrowthRate + dg
			point := SensitivityPoint{DiscountRate: mathutil.RoundRatio(r), TerminalGrowth: mathutil.RoundRatio(g)}
			if r > g && r > 0 {
				ev := DCF(in.FreeCashFlow, in.Revenue, growth, mathutil.PercentToDecimal(r), mathutil.PercentToDecimal(g), in.ProjectionYears)
				point.EnterpriseValue = mathutil.Round(ev)
				point.ValuePerShare = mathutil.Round(mathutil.SafeDivide(ev-netDebt, in.SharesOutstanding, 0))
			}
			points = append(points, point)
		}
	}
	return points
}

func (c *Calculator) scenarios(in Inputs, rate, netDebt, baseEquity float64) []insights.Scenario {
	shift := c.Defaults.ScenarioShift
	cases := []struct {
		name        string
		probability float64
		growth      float64
	}{
		{"Bull", 25, in.RevenueGrowthRate + shift},
		{"Base", 50, in.RevenueGrowthRate},
		{"Bear", 25, in.RevenueGrowthRate - shift},
	}
	scenarios := make([]insights.Scenario, 0, len(cases))
	tg := mathutil.PercentToDecimal(in.TerminalGrowthRate)
	for _, sc := range cases {
		ev := DCF(in.FreeCashFlow, in.Revenue, mathutil.PercentToDecimal(sc.growth), rate, tg, in.ProjectionYears)
		equity := ev - netDebt
		scenarios = append(scenarios, insights.Scenario{
			Name:        sc.name,
			Probability: sc.probability,
			Value:       mathutil.Round(equity),
			Change:      mathutil.Round(equity - baseEquity),
			Return:      mathutil.RoundRatio(mathutil.CalculatePercentage(equity-baseEquity, math.Abs(baseEquity))),
		})
	}
	return scenarios
}

func confidence(in Inputs, terminalPercent float64, multiples int, dispersion float64) int {
	level := constants.NeutralConfidence
	if terminalPercent > 75 {
		level--
	}
	if terminalPercent > 85 {
		level--
	}
	if multiples >= 2 {
		level++
	}
	if multiples == 0 {
		level--
	}
	if dispersion > 0.5 {
		level--
	}
	if in.RevenueGrowthRate > 30 {
		level--
	}
	if in.FreeCashFlow <= 0 {
		level -= 2
	}
	if in.EBITDA > 0 && in.NetIncome > 0 {
		level++
	}
	return mathutil.ClampScore(level)
}

func advise(a *insights.Advice, in Inputs, out Outputs, dispersion float64) {
	name := in.CompanyName
	if name == "" {
		name = "The company"
	}
	a.Factor("%s is valued at %.0f enterprise value on a %.2f%% discount rate", name, out.EnterpriseValue, out.DiscountRateUsed)
	a.Factor("Terminal value is %.1f%% of enterprise value", out.TerminalValuePercent)
	a.Factor("Free cash flow margin %.1f%%, EBITDA margin %.1f%%", out.FcfMargin, out.EbitdaMargin)

	if out.TerminalValuePercent > 75 {
		a.Risk("Valuation leans heavily on the terminal value")
	}
	if in.RevenueGrowthRate > 30 {
		a.Risk("Growth of %.1f%% a year is hard to sustain", in.RevenueGrowthRate)
	}
	if in.FreeCashFlow <= 0 {
		a.Risk("Negative free cash flow: the DCF understates or cannot value the business")
	}
	if dispersion > 0.5 {
		a.Risk("Methods disagree widely (%.0f%% spread)", dispersion*constants.PercentageMultiplier)
	}
	if in.TotalDebt > 0 && in.EBITDA > 0 && in.TotalDebt/in.EBITDA > 4 {
		a.Risk("Leverage of %.1fx EBITDA", in.TotalDebt/in.EBITDA)
	}

	if out.EvToEbitdaValuation > 0 && out.EquityValue > out.EvToEbitdaValuation*1.2 {
		a.Opportunity("DCF value is well above the EV/EBITDA peer valuation")
	}
	if in.CashAndEquivalents > in.TotalDebt {
		a.Opportunity("Net cash position of %.0f", in.CashAndEquivalents-in.TotalDebt)
	}
	if out.FcfMargin > 15 {
		a.Opportunity("Strong cash conversion")
	}

	a.Recommend("Use the blended value of %.0f as the central estimate, with a range of %.0f to %.0f", out.BlendedValuation, out.ValuationLow, out.ValuationHigh)
	if out.TerminalValuePercent > 75 {
		a.Recommend("Stress-test the terminal growth and discount rate assumptions")
	}
	if in.IndustryEvToEbitda == 0 && in.IndustryPeRatio == 0 && in.IndustryEvToRevenue == 0 {
		a.Recommend("Add industry multiples to cross-check the DCF")
	}
}
