package hedgefund

import (
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Fees returns the annual management fee and the performance fee on profit
// above the hurdle, net of the management fee. Rates are in percent.
func Fees(investment, grossReturn, managementFee, performanceFee, hurdleRate float64) (management, performance float64) {
	management = mathutil.ApplyPercentage(investment, managementFee)
	gross := mathutil.ApplyPercentage(investment, grossReturn)
	hurdle := mathutil.ApplyPercentage(investment, hurdleRate)
	performance = mathutil.ApplyPercentage(math.Max(0, gross-management-hurdle), performanceFee)
	return management, performance
}

// NetReturn returns the return after fees in percent.
func NetReturn(investment, grossReturn, managementFee, performanceFee, hurdleRate float64) float64 {
	mgmt, perf := Fees(investment, grossReturn, managementFee, performanceFee, hurdleRate)
	gross := mathutil.ApplyPercentage(investment, grossReturn)
	return mathutil.CalculatePercentage(gross-mgmt-perf, investment)
}

// CornishFisher adjusts a standard normal quantile for skewness and excess
// kurtosis.
func CornishFisher(z, skewness, excessKurtosis float64) float64 {
	z2, z3 := z*z, z*z*z
	return z +
		(z2-1)*skewness/6 +
		(z3-3*z)*excessKurtosis/24 -
		(2*z3-5*z)*skewness*skewness/36
}

func (c *Calculator) normalize(in Inputs) Inputs {
	in.Strategy = strings.TrimSpace(in.Strategy)
	if in.Strategy == "" {
		in.Strategy = c.Defaults.Strategy
	}
	if in.Beta == 0 {
		in.Beta = c.Defaults.Beta
	}
	if in.VarConfidence == 0 {
		in.VarConfidence = c.Defaults.VarConfidence
	}
	if in.TimeHorizonDays == 0 {
		in.TimeHorizonDays = c.Defaults.TimeHorizonDays
	}
	if in.Leverage == 0 {
		in.Leverage = c.Defaults.Leverage
	}
	return in
}

// Calculate analyses the fund investment described by in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{Advice: insights.NewAdvice(), StatisticsSource: SourceAssumed}
	inv := in.InvestmentAmount

	// Fees
	mgmt, perf := Fees(inv, in.GrossReturn, in.ManagementFee, in.PerformanceFee, in.HurdleRate)
	grossProfit := mathutil.ApplyPercentage(inv, in.GrossReturn)
	netProfit := grossProfit - mgmt - perf
	net := mathutil.CalculatePercentage(netProfit, inv)
	out.ManagementFeeAmount = mathutil.Round(mgmt)
	out.PerformanceFeeAmount = mathutil.Round(perf)
	out.TotalFees = mathutil.Round(mgmt + perf)
	out.GrossProfit = mathutil.Round(grossProfit)
	out.NetProfit = mathutil.Round(netProfit)
	out.NetReturn = mathutil.RoundRatio(net)
	out.FeeDrag = mathutil.RoundRatio(in.GrossReturn - net)
	if grossProfit > 0 {
		out.FeeShareOfProfit = mathutil.RoundRatio(mathutil.CalculatePercentage(mgmt+perf, grossProfit))
	}
	out.EndingValue = mathutil.Round(inv + netProfit)

	// Pre-computed statistics, replaced by the history when one is supplied.
	downside := in.DownsideDeviation
	if downside == 0 {
		downside = in.Volatility * c.Defaults.DownsideDeviationFactor
	}
	drawdown := in.MaxDrawdown
	if drawdown == 0 {
		drawdown = math.Min(100, in.Volatility*c.Defaults.MaxDrawdownFactor)
	}
	skew, kurt := in.Skewness, in.Kurtosis
	var hist *history
	if len(in.MonthlyReturns) >= 2 {
		if h, err := summarise(in.MonthlyReturns, in.RiskFreeRate, in.VarConfidence); err == nil {
			hist = &h
			downside, drawdown, skew, kurt = h.downsideDeviation, h.maxDrawdown, h.skewness, h.excessKurtosis
			out.StatisticsSource = SourceHistorical
			out.RealizedReturn = mathutil.RoundRatio(h.annualReturn)
			out.RealizedVolatility = mathutil.RoundRatio(h.annualVolatility)
		}
	}
	out.DownsideDeviation = mathutil.RoundRatio(downside)
	out.MaxDrawdown = mathutil.RoundRatio(drawdown)
	out.Skewness = mathutil.RoundRatio(skew)
	out.Kurtosis = mathutil.RoundRatio(kurt)

	// Risk-adjusted ratios
	excess := net - in.RiskFreeRate
	out.SharpeRatio = mathutil.RoundRatio(mathutil.SafeDivide(excess, in.Volatility, 0))
	out.SortinoRatio = mathutil.RoundRatio(mathutil.SafeDivide(excess, downside, 0))
	out.CalmarRatio = mathutil.RoundRatio(mathutil.SafeDivide(net, drawdown, 0))
	out.TreynorRatio = mathutil.RoundRatio(mathutil.SafeDivide(excess, in.Beta, 0))
	out.JensensAlpha = mathutil.RoundRatio(net - (in.RiskFreeRate + in.Beta*(in.BenchmarkReturn-in.RiskFreeRate)))
	out.ExcessReturn = mathutil.RoundRatio(net - in.BenchmarkReturn)

	// Value at risk over the horizon
	confidence := mathutil.PercentToDecimal(in.VarConfidence)
	horizon := float64(in.TimeHorizonDays) / constants.TradingDaysPerYear
	sigma := in.Volatility * math.Sqrt(horizon)
	mu := net * horizon
	z := mathutil.NormalQuantile(confidence)
	varPercent := math.Max(0, z*sigma-mu)
	cvarPercent := math.Max(0, sigma*mathutil.NormalPDF(z)/(1-confidence)-mu)
	mvarPercent := math.Max(0, -(mu + CornishFisher(-z, skew, kurt)*sigma))
	out.ValueAtRiskPercent = mathutil.RoundRatio(varPercent)
	out.ValueAtRisk = mathutil.Round(mathutil.ApplyPercentage(inv, varPercent))
	out.ConditionalVaR = mathutil.Round(mathutil.ApplyPercentage(inv, cvarPercent))
	out.ModifiedVaR = mathutil.Round(mathutil.ApplyPercentage(inv, mvarPercent))
	if hist != nil {
		scaled := hist.monthlyVaR * math.Sqrt(float64(in.TimeHorizonDays)/(constants.TradingDaysPerYear/constants.MonthsPerYear))
		out.HistoricalVaR = mathutil.Round(mathutil.ApplyPercentage(inv, scaled))
	}

	out.LeveragedVolatility = mathutil.RoundRatio(in.Volatility * in.Leverage)
	out.PositionShareOfAUM = mathutil.RoundRatio(mathutil.CalculatePercentage(inv, in.AUM))

	// Liquidity terms
	now := datetime.Truncate(c.Now())
	lockupEnd := now.AddDate(0, in.LockupMonths, 0)
	out.LockupEndDate = lockupEnd.Format(datetime.DateLayout)
	out.EarliestExitDate = lockupEnd.AddDate(0, 0, in.RedemptionNoticeDays).Format(datetime.DateLayout)
	out.LiquidityScore = liquidityScore(in.LockupMonths, in.RedemptionNoticeDays)
	out.RiskScore = riskScore(in, drawdown, skew, kurt)
	out.ConfidenceLevel = confidenceLevel(out, hist != nil)

	out.Scenarios = scenarios(in)
	advise(&out.Advice, in, out)
	return out
}

func liquidityScore(lockupMonths, noticeDays int) int {
	score := constants.MaxScore
	score -= int(math.Round(float64(lockupMonths) / 6))
	score -= int(math.Round(float64(noticeDays) / 30))
	return mathutil.ClampScore(score)
}

func riskScore(in Inputs, drawdown, skew, kurt float64) int {
	score := int(math.Round(in.Volatility/5)) + int(math.Round(drawdown/10))
	if in.Leverage > 2 {
		score++
	}
	if in.Leverage > 5 {
		score++
	}
	if skew < -0.5 {
		score++
	}
	if kurt > 3 {
		score++
	}
	return mathutil.ClampScore(score)
}

func confidenceLevel(out Outputs, historical bool) int {
	level := constants.NeutralConfidence
	if out.SharpeRatio > 1 {
		level++
	}
	if out.SharpeRatio < 0.5 {
		level--
	}
	if historical {
		level++
	}
	if out.FeeDrag > 3 {
		level--
	}
	if out.LiquidityScore <= 3 {
		level--
	}
	if out.JensensAlpha > 0 {
		level++
	}
	return mathutil.ClampScore(level)
}

func scenarios(in Inputs) []insights.Scenario {
	cases := []struct {
		name        string
		probability float64
		gross       float64
	}{
		{"Bull", 25, in.GrossReturn + in.Volatility},
		{"Base", 50, in.GrossReturn},
		{"Bear", 25, in.GrossReturn - 1.5*in.Volatility},
	}
	inv := in.InvestmentAmount
	result := make([]insights.Scenario, 0, len(cases))
	for _, sc := range cases {
		net := NetReturn(inv, sc.gross, in.ManagementFee, in.PerformanceFee, in.HurdleRate)
		change := mathutil.ApplyPercentage(inv, net)
		result = append(result, insights.Scenario{
			Name:        sc.name,
			Probability: sc.probability,
			Value:       mathutil.Round(inv + change),
			Change:      mathutil.Round(change),
			Return:      mathutil.RoundRatio(net),
		})
	}
	return result
}

func advise(a *insights.Advice, in Inputs, out Outputs) {
	name := strings.TrimSpace(in.FundName)
	if name == "" {
		name = "The fund"
	}
	a.Factor("%s (%s) nets %.2f%% after %.2f%% of fees", name, in.Strategy, out.NetReturn, out.FeeDrag)
	a.Factor("Sharpe %.2f, Sortino %.2f, Calmar %.2f", out.SharpeRatio, out.SortinoRatio, out.CalmarRatio)
	a.Factor("%.0f%% %d-day VaR of %.2f (%s statistics)", in.VarConfidence, in.TimeHorizonDays, out.ValueAtRisk, out.StatisticsSource)

	if out.FeeShareOfProfit > 40 {
		a.Risk("Fees take %.0f%% of gross profit", out.FeeShareOfProfit)
	}
	if out.MaxDrawdown > 25 {
		a.Risk("Maximum drawdown of %.1f%%", out.MaxDrawdown)
	}
	if out.Skewness < -0.5 {
		a.Risk("Negative skew: losses come in larger jumps than gains")
	}
	if out.Kurtosis > 3 {
		a.Risk("Fat tails: extreme months are more frequent than a normal model predicts")
	}
	if out.LiquidityScore <= 3 {
		a.Risk("Capital is locked until %s", out.EarliestExitDate)
	}
	if in.Leverage > 3 {
		a.Risk("Leverage of %.1fx amplifies drawdowns", in.Leverage)
	}
	if out.StatisticsSource == SourceAssumed {
		a.Risk("Tail statistics are assumptions; supply monthly returns for measured values")
	}

	if out.JensensAlpha > 0 {
		a.Opportunity("Positive alpha of %.2f%% over the CAPM expectation", out.JensensAlpha)
	}
	if out.ExcessReturn > 0 {
		a.Opportunity("Beats the benchmark by %.2f%% after fees", out.ExcessReturn)
	}
	if in.Beta < 0.5 {
		a.Opportunity("Low beta diversifies an equity portfolio")
	}

	switch {
	case out.SharpeRatio >= 1 && out.JensensAlpha > 0:
		a.Recommend("Risk-adjusted returns justify the fee load")
	case out.SharpeRatio < 0.5:
		a.Recommend("Compare with lower-cost alternatives: the Sharpe ratio is weak")
	default:
		a.Recommend("Negotiate fees or a higher hurdle to improve net returns")
	}
	if out.PositionShareOfAUM > 10 {
		a.Recommend("Position is %.1f%% of fund assets; review concentration and redemption terms", out.PositionShareOfAUM)
	}
}
