package bond

import (
	"math"
	"slices"
	"strings"
	"time"

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

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (c *Calculator) settlementOf(in Inputs) (time.Time, bool) {
	t, err := datetime.DateOrDefault(in.SettlementDate, c.Now())
	return t, err == nil
}

func (c *Calculator) buildRules() validation.Table[Inputs] {
	issue := func(in Inputs) (time.Time, bool) {
		t, err := datetime.ParseDate(in.IssueDate)
		return t, err == nil
	}
	maturity := func(in Inputs) (time.Time, bool) {
		t, err := datetime.ParseDate(in.MaturityDate)
		return t, err == nil
	}

	return validation.Table[Inputs]{
		validation.Positive("faceValue", func(in Inputs) float64 { return in.FaceValue }, "Face value must be greater than 0"),

		validation.Range("couponRate", func(in Inputs) float64 { return in.CouponRate }, 0, 25, "Coupon rate must be between 0% and 25%"),
		validation.Above("couponRate", func(in Inputs) float64 { return in.CouponRate }, 15, "Coupon rate seems unusually high"),

		validation.Positive("currentPrice", func(in Inputs) float64 { return in.CurrentPrice }, "Current price must be greater than 0"),
		validation.Warn("currentPrice", func(in Inputs) bool {
			return in.FaceValue > 0 && math.Abs(in.CurrentPrice-in.FaceValue)/in.FaceValue > 0.5
		}, "Price is more than 50% away from par"),

		validation.Positive("bidPrice", func(in Inputs) float64 { return in.BidPrice }, "Bid price must be greater than 0"),
		validation.Check("bidPrice", func(in Inputs) bool { return in.BidPrice > in.AskPrice }, "Bid price cannot exceed ask price"),
		validation.Positive("askPrice", func(in Inputs) float64 { return in.AskPrice }, "Ask price must be greater than 0"),
		validation.Check("askPrice", func(in Inputs) bool { return in.BidPrice > in.AskPrice }, "Ask price must be at least the bid price"),

		validation.Date("issueDate", func(in Inputs) string { return in.IssueDate }, datetime.DateLayout, false, "Issue date must be a valid date (YYYY-MM-DD)"),
		validation.Date("maturityDate", func(in Inputs) string { return in.MaturityDate }, datetime.DateLayout, false, "Maturity date must be a valid date (YYYY-MM-DD)"),
		validation.Check("maturityDate", func(in Inputs) bool {
			i, okI := issue(in)
			m, okM := maturity(in)
			return okI && okM && !m.After(i)
		}, "Maturity date must be after issue date"),
		validation.Check("maturityDate", func(in Inputs) bool {
			s, okS := c.settlementOf(in)
			m, okM := maturity(in)
			return okS && okM && !m.After(s)
		}, "Maturity date must be after settlement date"),
		validation.Warn("maturityDate", func(in Inputs) bool {
			s, okS := c.settlementOf(in)
			m, okM := maturity(in)
			return okS && okM && datetime.YearsBetween(s, m) > 50
		}, "Maturity is more than 50 years away"),

		validation.Date("settlementDate", func(in Inputs) string { return in.SettlementDate }, datetime.DateLayout, true, "Settlement date must be a valid date (YYYY-MM-DD)"),
		validation.Warn("settlementDate", func(in Inputs) bool {
			s, okS := c.settlementOf(in)
			i, okI := issue(in)
			return !blank(in.SettlementDate) && okS && okI && s.Before(i)
		}, "Settlement date is before the issue date"),

		validation.Date("callDate", func(in Inputs) string { return in.CallDate }, datetime.DateLayout, true, "Call date must be a valid date (YYYY-MM-DD)"),
		validation.Check("callDate", func(in Inputs) bool {
			call, err := datetime.ParseDate(in.CallDate)
			if blank(in.CallDate) || err != nil {
				return false
			}
			s, okS := c.settlementOf(in)
			m, okM := maturity(in)
			return okS && okM && (!call.After(s) || !call.Before(m))
		}, "Call date must be between settlement and maturity"),
		validation.Positive("callPrice", func(in Inputs) float64 { return in.CallPrice }, "Call price is required for callable bonds").
			If(func(in Inputs) bool { return !blank(in.CallDate) }),

		validation.Check("paymentFrequency", func(in Inputs) bool {
			return in.PaymentFrequency != 0 && !slices.Contains(PaymentFrequencies, in.PaymentFrequency)
		}, "Payment frequency must be 1, 2, 4 or 12"),
		validation.OneOf("dayCountConvention", func(in Inputs) string { return in.DayCountConvention }, datetime.DayCountConventions, "").
			If(func(in Inputs) bool { return !blank(in.DayCountConvention) }),
		validation.OneOf("creditRating", func(in Inputs) string { return NormalizeRating(in.CreditRating) }, Ratings, "Credit rating must be between AAA and D").
			If(func(in Inputs) bool { return !blank(in.CreditRating) }),
		validation.OneOf("riskTolerance", func(in Inputs) string { return in.RiskTolerance }, RiskTolerances, "").
			If(func(in Inputs) bool { return !blank(in.RiskTolerance) }),

		validation.Range("liquidityScore", func(in Inputs) float64 { return float64(in.LiquidityScore) }, 1, 10, "Liquidity score must be between 1 and 10"),
		validation.Check("quantity", func(in Inputs) bool { return in.Quantity < 1 }, "Quantity must be at least 1"),
		validation.Range("marketYield", func(in Inputs) float64 { return in.MarketYield }, -5, 50, "Market yield must be between -5% and 50%"),
		validation.Range("taxRate", func(in Inputs) float64 { return in.TaxRate }, 0, 100, "Tax rate must be between 0% and 100%"),
		validation.Range("expectedRateChange", func(in Inputs) float64 { return in.ExpectedRateChange }, -10, 10, "Expected rate change must be between -10 and 10 percentage points"),
		validation.Warn("expectedRateChange", func(in Inputs) bool { return math.Abs(in.ExpectedRateChange) > 3 }, "Expected rate change seems unusually large"),
	}
}
