package bond

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// maxPeriods bounds the cash flow loops (100 years of monthly coupons).
const maxPeriods = 1200

var ratingRisk = map[string]int{
	"AAA": 1, "AA": 2, "A": 3, "BBB": 4, "BB": 6, "B": 7, "CCC": 8, "CC": 9, "C": 9, "D": 10,
}

// NormalizeRating upper-cases a rating and strips notch modifiers.
func NormalizeRating(rating string) string {
	return strings.TrimRight(strings.ToUpper(strings.TrimSpace(rating)), "+-")
}

// IsInvestmentGrade reports whether rating is BBB- or better.
func IsInvestmentGrade(rating string) bool {
	idx := slices.Index(Ratings, NormalizeRating(rating))
	return idx >= 0 && idx <= slices.Index(Ratings, "BBB")
}

func (c *Calculator) normalize(in Inputs) Inputs {
	if in.PaymentFrequency == 0 {
		in.PaymentFrequency = c.Defaults.PaymentFrequency
	}
	if strings.TrimSpace(in.DayCountConvention) == "" {
		in.DayCountConvention = c.Defaults.DayCountConvention
	}
	in.DayCountConvention = strings.ToLower(strings.TrimSpace(in.DayCountConvention))
	if strings.TrimSpace(in.CreditRating) == "" {
		in.CreditRating = c.Defaults.CreditRating
	}
	if strings.TrimSpace(in.RiskTolerance) == "" {
		in.RiskTolerance = c.Defaults.RiskTolerance
	}
	in.RiskTolerance = strings.ToLower(strings.TrimSpace(in.RiskTolerance))
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	return in
}

// Price returns the price of a bond paying coupon each period for periods
// periods and redemption at the end, discounted at the periodic yield.
func Price(coupon, periodicYield float64, periods int, redemption float64) float64 {
	periods = mathutil.ClampInt(periods, 1, maxPeriods)
	price := 0.0
	df := 1.0
	for k := 1; k <= periods; k++ {
		df /= 1 + periodicYield
		price += coupon * df
	}
	return price + redemption*df
}

// DirtyPrice is Price for a settlement part way through a coupon period: the
// next coupon is w periods away (0 < w <= 1) and the result includes accrued
// interest.
func DirtyPrice(coupon, periodicYield float64, periods int, redemption, w float64) float64 {
	return Price(coupon, periodicYield, periods, redemption) * math.Pow(1+periodicYield, 1-w)
}

// Risk measures of a cash flow stream at a periodic yield. Duration is in
// years, convexity in years squared.
type riskMeasures struct {
	price     float64
	macaulay  float64
	modified  float64
	convexity float64
}

func measureRisk(coupon, periodicYield float64, periods int, redemption float64, frequency int, w float64) riskMeasures {
	periods = mathutil.ClampInt(periods, 1, maxPeriods)
	f := float64(frequency)
	var price, weighted, curvature float64
	df := math.Pow(1+periodicYield, 1-w)
	for k := 1; k <= periods; k++ {
		df /= 1 + periodicYield
		cf := coupon
		if k == periods {
			cf += redemption
		}
		pv := cf * df
		n := float64(k) - 1 + w
		price += pv
		weighted += n * pv
		curvature += n * (n + 1) * pv
	}
	if price <= 0 {
		return riskMeasures{}
	}
	macaulay := weighted / price / f
	return riskMeasures{
		price:     price,
		macaulay:  macaulay,
		modified:  macaulay / (1 + periodicYield),
		convexity: curvature / (price * math.Pow(1+periodicYield, 2)) / (f * f),
	}
}

// solveYield finds the annual yield (decimal) at which the dirty price of the
// remaining cash flows equals target. w is the fraction of a period left until
// the next coupon.
func (c *Calculator) solveYield(target, coupon float64, frequency, periods int, redemption, w float64) float64 {
	if target <= 0 || frequency <= 0 {
		return 0
	}
	f := float64(frequency)
	return mathutil.Bisect(func(y float64) float64 {
		return DirtyPrice(coupon, y/f, periods, redemption, w) - target
	}, -0.5, c.Defaults.MaxYield, constants.YieldTolerance, c.Defaults.SolverIterations)
}

// couponsUntil counts the coupons paid after settlement up to and including
// end.
func couponsUntil(settlement, end time.Time, frequency int) int {
	_, _, remaining, err := datetime.CouponPeriod(settlement, end, frequency)
	if err != nil {
		return 1
	}
	return mathutil.ClampInt(remaining, 1, maxPeriods)
}

// Calculate analyses the bond position in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{
		Advice:         insights.NewAdvice(),
		LiquidityScore: mathutil.ClampScore(in.LiquidityScore),
	}
	freq := in.PaymentFrequency

	settlement, err := datetime.DateOrDefault(in.SettlementDate, c.Now())
	if err != nil {
		settlement = datetime.Truncate(c.Now())
	}
	maturity, err := datetime.ParseDate(in.MaturityDate)
	if err != nil {
		maturity = settlement
	}
	issue, _ := datetime.ParseDate(in.IssueDate)

	annualCoupon := in.FaceValue * mathutil.PercentToDecimal(in.CouponRate)
	couponPayment := annualCoupon / float64(freq)

	// Accrued interest
	last, next, remaining, err := datetime.CouponPeriod(settlement, maturity, freq)
	if err != nil {
		last, next, remaining = settlement, maturity, 0
	}
	if !issue.IsZero() && last.Before(issue) {
		last = issue
	}
	fraction := 0.0
	if remaining > 0 {
		fraction, err = datetime.AccrualFraction(in.DayCountConvention, last, settlement, next, freq)
		if err != nil || fraction < 0 {
			fraction = 0
		}
		out.DaysSinceCoupon = datetime.DaysBetween(last, settlement)
		out.DaysToNextCoupon = datetime.DaysBetween(settlement, next)
	}
	accrued := annualCoupon * fraction
	price := in.CurrentPrice
	// Share of the current coupon period still to run.
	w := mathutil.Clamp(1-fraction*float64(freq), constants.BasisPoint, 1)

	out.SettlementDate = settlement.Format(datetime.DateLayout)
	out.LastCouponDate = last.Format(datetime.DateLayout)
	out.NextCouponDate = next.Format(datetime.DateLayout)
	out.RemainingPayments = remaining
	out.YearsToMaturity = mathutil.RoundRatio(math.Max(0, datetime.YearsBetween(settlement, maturity)))
	out.CouponPayment = mathutil.Round(couponPayment)
	out.AccruedInterest = mathutil.Round(accrued)
	out.CleanPrice = mathutil.Round(price)
	out.DirtyPrice = mathutil.Round(price + accrued)
	out.CurrentYield = mathutil.RoundRatio(mathutil.CalculatePercentage(annualCoupon, price))

	// Yields
	periods := mathutil.ClampInt(remaining, 1, maxPeriods)
	ytm := c.solveYield(price+accrued, couponPayment, freq, periods, in.FaceValue, w)
	ytw := ytm
	call, callErr := datetime.ParseDate(in.CallDate)
	if strings.TrimSpace(in.CallDate) != "" && callErr == nil && call.After(settlement) && call.Before(maturity) && in.CallPrice > 0 {
		out.Callable = true
		ytc := c.solveYield(price+accrued, couponPayment, freq, couponsUntil(settlement, call, freq), in.CallPrice, w)
		out.YieldToCall = mathutil.RoundRatio(ytc * constants.PercentageMultiplier)
		ytw = math.Min(ytm, ytc)
	}
	ytmPercent := ytm * constants.PercentageMultiplier
	out.YieldToMaturity = mathutil.RoundRatio(ytmPercent)
	out.YieldToWorst = mathutil.RoundRatio(ytw * constants.PercentageMultiplier)
	out.AfterTaxYield = mathutil.RoundRatio(ytmPercent * (1 - mathutil.PercentToDecimal(in.TaxRate)))
	pickup := ytmPercent - in.MarketYield
	out.YieldSpreadBps = mathutil.Round(pickup * constants.PercentageMultiplier)

	// Duration and convexity
	risk := measureRisk(couponPayment, ytm/float64(freq), periods, in.FaceValue, freq, w)
	out.MacaulayDuration = mathutil.RoundRatio(risk.macaulay)
	out.ModifiedDuration = mathutil.RoundRatio(risk.modified)
	out.Convexity = mathutil.RoundRatio(risk.convexity)
	dv01 := risk.modified * (price + accrued) * constants.BasisPoint
	out.DV01 = mathutil.RoundRatio(dv01)

	shift := mathutil.PercentToDecimal(in.ExpectedRateChange)
	change := -risk.modified*shift + 0.5*risk.convexity*shift*shift
	estimated := price * (1 + change)
	out.PriceChangePercent = mathutil.RoundRatio(change * constants.PercentageMultiplier)
	out.EstimatedPrice = mathutil.Round(estimated)

	// Bid/ask
	mid := (in.BidPrice + in.AskPrice) / 2
	spread := in.AskPrice - in.BidPrice
	spreadPercent := mathutil.CalculatePercentage(spread, mid)
	out.MidPrice = mathutil.Round(mid)
	out.BidAskSpread = mathutil.Round(spread)
	out.SpreadPercent = mathutil.RoundRatio(spreadPercent)

	// Position
	qty := float64(in.Quantity)
	entry := price
	if in.AskPrice > 0 {
		entry = in.AskPrice
	}
	annualIncome := annualCoupon * qty
	out.TotalCost = mathutil.Round((entry + accrued) * qty)
	out.MarketValue = mathutil.Round(price * qty)
	out.AnnualIncome = mathutil.Round(annualIncome)
	out.AfterTaxIncome = mathutil.Round(annualIncome * (1 - mathutil.PercentToDecimal(in.TaxRate)))
	out.PositionDV01 = mathutil.Round(dv01 * qty)
	out.PositionPriceRisk = mathutil.Round((estimated - price) * qty)

	// Heuristics
	rating := NormalizeRating(in.CreditRating)
	out.InvestmentGrade = IsInvestmentGrade(rating)
	out.RiskScore = riskScore(rating, risk.modified, in.LiquidityScore, out.Callable && out.YieldToCall < out.YieldToMaturity)
	out.ConfidenceLevel = confidence(out.InvestmentGrade, in.LiquidityScore, risk.modified, pickup, spreadPercent)
	switch {
	case pickup > c.Defaults.BuyThreshold && out.ConfidenceLevel >= c.Defaults.BuyConfidence:
		out.Recommendation = Buy
	case pickup < c.Defaults.SellThreshold:
		out.Recommendation = Sell
	default:
		out.Recommendation = Hold
	}

	out.Scenarios = c.scenarios(in, price, accrued, couponPayment, ytm, periods, w)
	out.Strategies = strategies(in, out, ytmPercent)
	advise(&out.Advice, in, out, pickup)
	return out
}

func riskScore(rating string, modifiedDuration float64, liquidity int, callRisk bool) int {
	score, ok := ratingRisk[rating]
	if !ok {
		score = ratingRisk["BBB"]
	}
	if modifiedDuration > 7 {
		score++
	}
	if modifiedDuration > 12 {
		score++
	}
	if liquidity <= 3 {
		score++
	}
	if liquidity >= 8 {
		score--
	}
	if callRisk {
		score++
	}
	return mathutil.ClampScore(score)
}

func confidence(investmentGrade bool, liquidity int, modifiedDuration, pickup, spreadPercent float64) int {
	level := constants.NeutralConfidence
	if investmentGrade {
		level++
	} else {
		level -= 2
	}
	if liquidity >= 7 {
		level++
	}
	if liquidity <= 3 {
		level--
	}
	if modifiedDuration > 10 {
		level--
	}
	if pickup > 0.5 {
		level++
	}
	if spreadPercent > 2 {
		level--
	}
	return mathutil.ClampScore(level)
}

// scenarios reprices the bond (clean) after each parallel rate shift.
func (c *Calculator) scenarios(in Inputs, price, accrued, coupon, ytm float64, periods int, w float64) []insights.Scenario {
	shifts := c.Defaults.RateScenarios
	scenarios := make([]insights.Scenario, 0, len(shifts))
	if len(shifts) == 0 {
		return scenarios
	}
	f := float64(in.PaymentFrequency)
	annualCoupon := coupon * f
	probability := constants.PercentageMultiplier / float64(len(shifts))
	for _, s := range shifts {
		repriced := DirtyPrice(coupon, (ytm+mathutil.PercentToDecimal(s))/f, periods, in.FaceValue, w) - accrued
		scenarios = append(scenarios, insights.Scenario{
			Name:        fmt.Sprintf("Rates %+.2f%%", s),
			Probability: mathutil.RoundRatio(probability),
			Value:       mathutil.Round(repriced),
			Change:      mathutil.Round(repriced - price),
			Return:      mathutil.RoundRatio(mathutil.CalculatePercentage(repriced-price+annualCoupon, price)),
		})
	}
	return scenarios
}

func strategies(in Inputs, out Outputs, ytmPercent float64) []insights.Strategy {
	activeReturn := ytmPercent - out.ModifiedDuration*in.ExpectedRateChange
	return []insights.Strategy{
		{
			Name:           "Buy and hold",
			Description:    "Hold to maturity and collect coupons; price moves are irrelevant if the issuer does not default.",
			ExpectedReturn: mathutil.RoundRatio(out.YieldToWorst),
			RiskLevel:      insights.Level(out.RiskScore),
			Suitable:       out.InvestmentGrade || in.RiskTolerance != Conservative,
		},
		{
			Name:           "Ladder",
			Description:    "Spread the position across staggered maturities to reduce reinvestment and rate risk.",
			ExpectedReturn: mathutil.RoundRatio(ytmPercent - 0.25),
			RiskLevel:      insights.Level(out.RiskScore - 1),
			Suitable:       true,
		},
		{
			Name:           "Active duration trade",
			Description:    "Trade the bond around the expected rate move and capture the price change.",
			ExpectedReturn: mathutil.RoundRatio(activeReturn),
			RiskLevel:      insights.LevelHigh,
			Suitable:       in.RiskTolerance == Aggressive,
		},
	}
}

func advise(a *insights.Advice, in Inputs, out Outputs, pickup float64) {
	a.Factor("Credit rating %s (%s)", strings.ToUpper(strings.TrimSpace(in.CreditRating)), gradeLabel(out.InvestmentGrade))
	a.Factor("Yield to maturity %.2f%% versus market %.2f%%", out.YieldToMaturity, in.MarketYield)
	a.Factor("Modified duration %.2f years", out.ModifiedDuration)
	a.Factor("Current yield %.2f%%", out.CurrentYield)

	if !out.InvestmentGrade {
		a.Risk("Below investment grade: elevated default risk")
	}
	if out.ModifiedDuration > 10 {
		a.Risk("High duration: a 1%% rate rise costs about %.1f%% of value", out.ModifiedDuration)
	}
	if in.LiquidityScore <= 3 {
		a.Risk("Low liquidity may make exit costly")
	}
	if out.Callable && out.YieldToCall < out.YieldToMaturity {
		a.Risk("Callable below yield to maturity: yield to worst is %.2f%%", out.YieldToWorst)
	}
	if out.SpreadPercent > 2 {
		a.Risk("Wide bid/ask spread of %.2f%%", out.SpreadPercent)
	}

	if pickup > 0.25 {
		a.Opportunity("Yield pickup of %.0f bps over market", pickup*constants.PercentageMultiplier)
	}
	if in.CurrentPrice < in.FaceValue {
		a.Opportunity("Trading at a discount: pull to par adds %.2f per bond by maturity", in.FaceValue-in.CurrentPrice)
	}
	if in.ExpectedRateChange < 0 {
		a.Opportunity("Falling rates would lift the price by about %.2f%%", out.PriceChangePercent)
	}

	switch out.Recommendation {
	case Buy:
		a.Recommend("Buy: yield pickup with confidence %d/10", out.ConfidenceLevel)
	case Sell:
		a.Recommend("Sell or avoid: yield is below comparable market yield")
	default:
		a.Recommend("Hold: yield is in line with the market")
	}
	if out.ModifiedDuration > 7 && in.ExpectedRateChange > 0 {
		a.Recommend("Consider shorter maturities ahead of the expected rate rise")
	}
}

func gradeLabel(investmentGrade bool) string {
	if investmentGrade {
		return "investment grade"
	}
	return "high yield"
}
