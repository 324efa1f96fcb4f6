package bond

import (
	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

// ID is the registry id of the calculator.
const ID = "bond-trading"

// ExampleInputs returns a representative investment-grade corporate bond.
func ExampleInputs() Inputs {
	return Inputs{
		FaceValue:          1000,
		CouponRate:         5,
		CurrentPrice:       980,
		BidPrice:           978,
		AskPrice:           982,
		IssueDate:          "2020-01-15",
		MaturityDate:       "2030-01-15",
		SettlementDate:     "2025-04-15",
		PaymentFrequency:   2,
		DayCountConvention: datetime.DayCount30360,
		CreditRating:       "A",
		LiquidityScore:     7,
		Quantity:           10,
		MarketYield:        5.2,
		TaxRate:            24,
		ExpectedRateChange: 0.5,
		RiskTolerance:      Moderate,
	}
}

func callableExample() Inputs {
	in := ExampleInputs()
	in.CouponRate = 7
	in.CurrentPrice = 1045
	in.BidPrice = 1043
	in.AskPrice = 1047
	in.CallDate = "2027-01-15"
	in.CallPrice = 1010
	in.CreditRating = "BB+"
	in.LiquidityScore = 4
	return in
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          ID,
		Title:       "Bond Trading Calculator",
		Category:    "investment",
		Description: "Accrued interest, yields, duration, convexity and trade signals for a bond position.",
		Version:     "1.0.0",
		Tags:        []string{"bonds", "fixed income", "yield", "duration"},
		Inputs: []registry.Field{
			registry.Currency("faceValue", "Face value").AtLeast(0).Require(),
			registry.Percentage("couponRate", "Coupon rate").Between(0, 25).Require(),
			registry.Currency("currentPrice", "Current (clean) price").AtLeast(0).Require(),
			registry.Currency("bidPrice", "Bid price").AtLeast(0).Require(),
			registry.Currency("askPrice", "Ask price").AtLeast(0).Require(),
			registry.Date("issueDate", "Issue date").Require(),
			registry.Date("maturityDate", "Maturity date").Require(),
			registry.Date("settlementDate", "Settlement date").Describe("Defaults to today"),
			registry.Date("callDate", "Call date"),
			registry.Currency("callPrice", "Call price"),
			registry.Select("paymentFrequency", "Coupons per year", "1", "2", "4", "12").WithDefault(c.Defaults.PaymentFrequency),
			registry.Select("dayCountConvention", "Day count convention", datetime.DayCountConventions...).WithDefault(c.Defaults.DayCountConvention),
			registry.Select("creditRating", "Credit rating", Ratings...).WithDefault(c.Defaults.CreditRating),
			registry.Integer("liquidityScore", "Liquidity score").Between(1, 10).Require(),
			registry.Integer("quantity", "Quantity").AtLeast(1).Require(),
			registry.Percentage("marketYield", "Comparable market yield").Between(-5, 50),
			registry.Percentage("taxRate", "Tax rate").Between(0, 100),
			registry.Number("expectedRateChange", "Expected rate change").In("pp").Between(-10, 10),
			registry.Select("riskTolerance", "Risk tolerance", RiskTolerances...).WithDefault(c.Defaults.RiskTolerance),
		},
		Outputs: []registry.Field{
			registry.Currency("accruedInterest", "Accrued interest"),
			registry.Currency("dirtyPrice", "Dirty price"),
			registry.Percentage("currentYield", "Current yield"),
			registry.Percentage("yieldToMaturity", "Yield to maturity"),
			registry.Percentage("yieldToCall", "Yield to call"),
			registry.Percentage("yieldToWorst", "Yield to worst"),
			registry.Number("macaulayDuration", "Macaulay duration").In("years"),
			registry.Number("modifiedDuration", "Modified duration").In("years"),
			registry.Number("convexity", "Convexity"),
			registry.Currency("dv01", "DV01"),
			registry.Percentage("spreadPercent", "Bid/ask spread"),
			registry.Integer("riskScore", "Risk score").Between(1, 10),
			registry.Integer("confidenceLevel", "Confidence").Between(1, 10),
			registry.Text("recommendation", "Recommendation"),
		},
		Examples: []registry.Example{
			registry.NewExample("investment-grade", "Ten A-rated bullet bonds bought slightly below par", ExampleInputs()),
			registry.NewExample("callable-high-yield", "Callable BB+ bond trading at a premium", callableExample()),
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
