package forex

import (
	"regexp"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/validation"
)

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Validate checks in for errors and warnings.
func (c *Calculator) Validate(in Inputs) validation.Result {
	return c.rules.Validate(in)
}

// ValidateField checks a single field of in.
func (c *Calculator) ValidateField(field string, in Inputs) validation.FieldResult {
	return c.rules.ValidateField(field, in)
}

func (c *Calculator) buildRules() validation.Table[Inputs] {
	is := func(side string) func(Inputs) bool {
		return func(in Inputs) bool { return strings.EqualFold(strings.TrimSpace(in.PositionType), side) }
	}
	needsConversion := func(in Inputs) bool {
		base, quote, ok := ParsePair(in.CurrencyPair)
		account := c.normalize(in).AccountCurrency
		return ok && !strings.EqualFold(base, account) && !strings.EqualFold(quote, account)
	}

	return validation.Table[Inputs]{
		validation.Check("currencyPair", func(in Inputs) bool {
			_, _, ok := ParsePair(in.CurrencyPair)
			return !ok
		}, "Currency pair must look like EUR/USD"),
		validation.Check("accountCurrency", func(in Inputs) bool {
			v := strings.TrimSpace(in.AccountCurrency)
			return v != "" && !currencyPattern.MatchString(v)
		}, "Account currency must be a three-letter code"),
		validation.Positive("accountBalance", func(in Inputs) float64 { return in.AccountBalance }, "Account balance must be greater than 0"),

		validation.Positive("entryPrice", func(in Inputs) float64 { return in.EntryPrice }, "Entry price must be greater than 0"),
		validation.Positive("stopLossPrice", func(in Inputs) float64 { return in.StopLossPrice }, "Stop loss price must be greater than 0"),
		validation.Check("stopLossPrice", func(in Inputs) bool { return in.StopLossPrice >= in.EntryPrice }, "Stop loss must be below the entry price for long positions").
			If(is(Long)),
		validation.Check("stopLossPrice", func(in Inputs) bool { return in.StopLossPrice <= in.EntryPrice }, "Stop loss must be above the entry price for short positions").
			If(is(Short)),
		validation.Positive("takeProfitPrice", func(in Inputs) float64 { return in.TakeProfitPrice }, "Take profit price must be greater than 0"),
		validation.Check("takeProfitPrice", func(in Inputs) bool { return in.TakeProfitPrice <= in.EntryPrice }, "Take profit must be above the entry price for long positions").
			If(is(Long)),
		validation.Check("takeProfitPrice", func(in Inputs) bool { return in.TakeProfitPrice >= in.EntryPrice }, "Take profit must be below the entry price for short positions").
			If(is(Short)),

		validation.OneOf("positionType", func(in Inputs) string { return in.PositionType }, PositionTypes, "Position type must be long or short"),
		validation.Range("lotSize", func(in Inputs) float64 { return in.LotSize }, 0.01, 100, "Lot size must be between 0.01 and 100"),
		validation.Range("leverage", func(in Inputs) float64 { return in.Leverage }, 1, 1000, "Leverage must be between 1 and 1000"),
		validation.Above("leverage", func(in Inputs) float64 { return in.Leverage }, 100, "Leverage above 100:1 is very risky"),
		validation.Range("riskPercentage", func(in Inputs) float64 { return in.RiskPercentage }, 0.1, 100, "Risk percentage must be between 0.1% and 100%"),
		validation.Above("riskPercentage", func(in Inputs) float64 { return in.RiskPercentage }, 5, "Risking more than 5% per trade is aggressive"),

		validation.Positive("conversionRate", func(in Inputs) float64 { return in.ConversionRate }, "Conversion rate is required when neither currency is the account currency").
			If(needsConversion),
		validation.Range("dailyVolatility", func(in Inputs) float64 { return in.DailyVolatility }, 0, 50, "Daily volatility must be between 0% and 50%"),
		validation.Check("holdingPeriodDays", func(in Inputs) bool {
			return in.HoldingPeriodDays != 0 && (in.HoldingPeriodDays < 1 || in.HoldingPeriodDays > 365)
		}, "Holding period must be between 1 and 365 days"),
		validation.NonNegative("spreadPips", func(in Inputs) float64 { return in.SpreadPips }, "Spread cannot be negative"),
		validation.NonNegative("commissionPerLot", func(in Inputs) float64 { return in.CommissionPerLot }, "Commission cannot be negative"),
	}
}
