package forex

import (
	"math"
	"regexp"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var pairPattern = regexp.MustCompile(`^([A-Z]{3})/?([A-Z]{3})$`)

// ParsePair splits "EUR/USD" or "EURUSD" into its currencies.
func ParsePair(pair string) (base, quote string, ok bool) {
	m := pairPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(pair)))
	if m == nil || m[1] == m[2] {
		return "", "", false
	}
	return m[1], m[2], true
}

// PipSize returns the price increment of one pip for a quote currency.
func PipSize(quote string) float64 {
	if strings.EqualFold(quote, "JPY") {
		return 0.01
	}
	return 0.0001
}

// QuoteConversion returns the factor converting quote-currency amounts into
// the account currency.
func QuoteConversion(base, quote, account string, price, conversionRate float64) float64 {
	switch {
	case strings.EqualFold(quote, account):
		return 1
	case strings.EqualFold(base, account):
		return mathutil.SafeDivide(1, price, 0)
	case conversionRate > 0:
		return conversionRate
	default:
		return 1
	}
}

func (c *Calculator) normalize(in Inputs) Inputs {
	in.AccountCurrency = strings.ToUpper(strings.TrimSpace(in.AccountCurrency))
	if in.AccountCurrency == "" {
		in.AccountCurrency = c.Defaults.AccountCurrency
	}
	in.PositionType = strings.ToLower(strings.TrimSpace(in.PositionType))
	if in.DailyVolatility == 0 {
		in.DailyVolatility = c.Defaults.DailyVolatility
	}
	if in.HoldingPeriodDays == 0 {
		in.HoldingPeriodDays = c.Defaults.HoldingPeriodDays
	}
	return in
}

// Calculate analyses the trade described by in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{Advice: insights.NewAdvice()}

	base, quote, _ := ParsePair(in.CurrencyPair)
	pip := PipSize(quote)
	conv := QuoteConversion(base, quote, in.AccountCurrency, in.EntryPrice, in.ConversionRate)
	units := in.LotSize * c.Defaults.ContractSize
	pipValuePerLot := pip * c.Defaults.ContractSize * conv
	pipValue := pip * units * conv

	out.BaseCurrency, out.QuoteCurrency = base, quote
	out.PipSize = pip
	out.Units = mathutil.Round(units)
	out.PipValuePerLot = mathutil.RoundRatio(pipValuePerLot)
	out.PipValue = mathutil.RoundRatio(pipValue)

	// Margin
	notional := units * in.EntryPrice * conv
	margin := mathutil.SafeDivide(notional, in.Leverage, notional)
	out.NotionalValue = mathutil.Round(notional)
	out.MarginRequired = mathutil.Round(margin)
	out.FreeMargin = mathutil.Round(in.AccountBalance - margin)
	out.MarginLevel = mathutil.RoundRatio(mathutil.CalculatePercentage(in.AccountBalance, margin))

	// Risk and reward
	stopDistance := math.Abs(in.EntryPrice - in.StopLossPrice)
	targetDistance := math.Abs(in.TakeProfitPrice - in.EntryPrice)
	stopPips := stopDistance / pip
	targetPips := targetDistance / pip
	loss := stopPips * pipValue
	profit := targetPips * pipValue
	riskAmount := mathutil.ApplyPercentage(in.AccountBalance, in.RiskPercentage)

	out.StopLossPips = mathutil.RoundTo(stopPips, 1)
	out.TakeProfitPips = mathutil.RoundTo(targetPips, 1)
	out.PotentialLoss = mathutil.Round(loss)
	out.PotentialProfit = mathutil.Round(profit)
	out.RiskRewardRatio = mathutil.RoundRatio(mathutil.SafeDivide(profit, loss, 0))
	out.RiskAmount = mathutil.Round(riskAmount)
	out.AccountRiskPercent = mathutil.RoundRatio(mathutil.CalculatePercentage(loss, in.AccountBalance))
	out.RecommendedLotSize = c.recommendedLots(riskAmount, stopPips*pipValuePerLot)

	// Costs
	spreadCost := in.SpreadPips * pipValue
	commission := in.CommissionPerLot * in.LotSize
	swap := in.SwapPerLotPerDay * in.LotSize * float64(in.HoldingPeriodDays)
	totalCost := spreadCost + commission + swap
	costPrice := mathutil.SafeDivide(totalCost, pipValue, 0) * pip
	breakEven := in.EntryPrice + costPrice
	if in.PositionType == Short {
		breakEven = in.EntryPrice - costPrice
	}
	out.SpreadCost = mathutil.Round(spreadCost)
	out.CommissionCost = mathutil.Round(commission)
	out.SwapCost = mathutil.Round(swap)
	out.TotalCost = mathutil.Round(totalCost)
	out.BreakEvenPrice = mathutil.RoundTo(breakEven, 6)

	// Probabilities under a driftless normal price path.
	sigma := in.EntryPrice * mathutil.PercentToDecimal(in.DailyVolatility) * math.Sqrt(float64(in.HoldingPeriodDays))
	pTarget := mathutil.TouchProbability(targetDistance, sigma)
	pStop := mathutil.TouchProbability(stopDistance, sigma)
	targetFirst := mathutil.SafeDivide(pTarget, pTarget+pStop, 0.5)
	ev := targetFirst*profit - (1-targetFirst)*loss - totalCost

	out.PeriodVolatilityPips = mathutil.RoundTo(sigma/pip, 1)
	out.ProbabilityHitTarget = mathutil.RoundRatio(pTarget * constants.PercentageMultiplier)
	out.ProbabilityHitStop = mathutil.RoundRatio(pStop * constants.PercentageMultiplier)
	out.ProbabilityTargetFirst = mathutil.RoundRatio(targetFirst * constants.PercentageMultiplier)
	out.ExpectedValue = mathutil.Round(ev)

	now := datetime.Truncate(c.Now())
	out.TradeDate = now.Format(datetime.DateLayout)
	out.ExitByDate = now.AddDate(0, 0, in.HoldingPeriodDays).Format(datetime.DateLayout)

	out.ConfidenceLevel = confidence(in, out)
	out.Scenarios = scenarios(in, profit, loss, totalCost, pTarget, pStop)
	out.Strategies = c.strategies(in, out, ev)
	c.advise(&out.Advice, in, out)
	return out
}

// recommendedLots sizes the position so the stop loses riskAmount, rounded
// down to the lot step.
func (c *Calculator) recommendedLots(riskAmount, lossPerLot float64) float64 {
	lots := mathutil.SafeDivide(riskAmount, lossPerLot, 0)
	step := c.Defaults.LotStep
	if step <= 0 {
		return mathutil.Round(lots)
	}
	return mathutil.Round(math.Floor(lots/step+1e-6) * step)
}

func confidence(in Inputs, out Outputs) int {
	level := constants.NeutralConfidence
	if out.RiskRewardRatio >= 2 {
		level++
	}
	if out.RiskRewardRatio < 1 {
		level--
	}
	if out.AccountRiskPercent > 2 {
		level--
	}
	if out.AccountRiskPercent > 5 {
		level--
	}
	if in.Leverage > 100 {
		level--
	}
	if out.ProbabilityTargetFirst > 50 {
		level++
	}
	if out.MarginLevel > 0 && out.MarginLevel < 200 {
		level--
	}
	if out.ExpectedValue > 0 {
		level++
	}
	return mathutil.ClampScore(level)
}

func scenarios(in Inputs, profit, loss, cost, pTarget, pStop float64) []insights.Scenario {
	neither := math.Max(0, 1-pTarget-pStop)
	total := pTarget + pStop + neither
	pct := func(p float64) float64 {
		return mathutil.RoundRatio(mathutil.SafeDivide(p, total, 0) * constants.PercentageMultiplier)
	}
	balance := in.AccountBalance
	outcome := func(name string, p, change float64) insights.Scenario {
		return insights.Scenario{
			Name:        name,
			Probability: pct(p),
			Value:       mathutil.Round(balance + change),
			Change:      mathutil.Round(change),
			Return:      mathutil.RoundRatio(mathutil.CalculatePercentage(change, balance)),
		}
	}
	return []insights.Scenario{
		outcome("Take profit hit", pTarget, profit-cost),
		outcome("Stop loss hit", pStop, -loss-cost),
		outcome("Closed at entry", neither, -cost),
	}
}

func (c *Calculator) strategies(in Inputs, out Outputs, ev float64) []insights.Strategy {
	balance := in.AccountBalance
	sized := mathutil.SafeDivide(out.RecommendedLotSize, in.LotSize, 0)
	return []insights.Strategy{
		{
			Name:           "Fixed fractional sizing",
			Description:    "Trade the recommended lot size so the stop costs exactly the risk budget.",
			ExpectedReturn: mathutil.RoundRatio(mathutil.CalculatePercentage(ev*sized, balance)),
			RiskLevel:      insights.LevelModerate,
			Suitable:       out.RecommendedLotSize > 0,
		},
		{
			Name:           "Scale out at 1R",
			Description:    "Close half the position when profit equals the initial risk and move the stop to break-even.",
			ExpectedReturn: mathutil.RoundRatio(mathutil.CalculatePercentage(ev*0.75, balance)),
			RiskLevel:      insights.LevelLow,
			Suitable:       out.RiskRewardRatio >= 1.5,
		},
		{
			Name:           "Full position to target",
			Description:    "Hold the full size until the take profit or stop loss is hit.",
			ExpectedReturn: mathutil.RoundRatio(mathutil.CalculatePercentage(ev, balance)),
			RiskLevel:      insights.Level(11 - out.ConfidenceLevel),
			Suitable:       out.AccountRiskPercent <= c.Defaults.MaxRiskPercent,
		},
	}
}

func (c *Calculator) advise(a *insights.Advice, in Inputs, out Outputs) {
	a.Factor("%s %s of %.2f lots (%.0f units)", strings.ToUpper(in.PositionType), in.CurrencyPair, in.LotSize, out.Units)
	a.Factor("Pip value %.2f %s; stop %.1f pips, target %.1f pips", out.PipValue, in.AccountCurrency, out.StopLossPips, out.TakeProfitPips)
	a.Factor("Risk/reward 1:%.2f with %.1f%% of the account at risk", out.RiskRewardRatio, out.AccountRiskPercent)

	if out.AccountRiskPercent > c.Defaults.MaxRiskPercent {
		a.Risk("Risking %.1f%% of the account exceeds the %.0f%% guideline", out.AccountRiskPercent, c.Defaults.MaxRiskPercent)
	}
	if in.Leverage > 100 {
		a.Risk("Leverage of %.0f:1 magnifies losses", in.Leverage)
	}
	if out.MarginLevel > 0 && out.MarginLevel < 2*c.Defaults.MarginCallLevel {
		a.Risk("Margin level of %.0f%% is close to a margin call", out.MarginLevel)
	}
	if out.RiskRewardRatio < 1 {
		a.Risk("Potential loss is larger than potential profit")
	}
	if out.StopLossPips < out.PeriodVolatilityPips/4 {
		a.Risk("Stop is tight relative to expected volatility and may be hit by noise")
	}

	if out.RiskRewardRatio >= 2 {
		a.Opportunity("Favourable risk/reward of 1:%.1f", out.RiskRewardRatio)
	}
	if out.ExpectedValue > 0 {
		a.Opportunity("Positive expected value of %.2f %s", out.ExpectedValue, in.AccountCurrency)
	}
	if in.SwapPerLotPerDay < 0 {
		a.Opportunity("Positive carry earns swap while the position is open")
	}

	if out.RecommendedLotSize > 0 && math.Abs(out.RecommendedLotSize-in.LotSize) > c.Defaults.LotStep/2 {
		a.Recommend("Trade %.2f lots to keep risk at %.1f%% of the account", out.RecommendedLotSize, in.RiskPercentage)
	}
	if out.RiskRewardRatio < 1.5 {
		a.Recommend("Widen the target or tighten the stop for at least 1:1.5 risk/reward")
	}
	if len(a.Recommendations) == 0 {
		a.Recommend("Trade plan is consistent with the risk budget")
	}
}
