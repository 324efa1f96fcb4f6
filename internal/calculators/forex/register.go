package forex

import (
	"github.com/iwvelando/finance-calculators/internal/registry"
)

// ID is the registry id of the calculator.
const ID = "forex-trading"

// ExampleInputs returns a long EUR/USD swing trade on a USD account.
func ExampleInputs() Inputs {
	return Inputs{
		CurrencyPair:      "EUR/USD",
		AccountCurrency:   "USD",
		AccountBalance:    10_000,
		EntryPrice:        1.1000,
		StopLossPrice:     1.0950,
		TakeProfitPrice:   1.1100,
		PositionType:      Long,
		LotSize:           0.4,
		Leverage:          30,
		RiskPercentage:    2,
		DailyVolatility:   0.5,
		HoldingPeriodDays: 5,
		SpreadPips:        1.2,
		CommissionPerLot:  7,
		SwapPerLotPerDay:  0.8,
	}
}

func yenExample() Inputs {
	return Inputs{
		CurrencyPair:      "GBP/JPY",
		AccountCurrency:   "USD",
		AccountBalance:    25_000,
		EntryPrice:        190.50,
		StopLossPrice:     191.50,
		TakeProfitPrice:   188.00,
		PositionType:      Short,
		LotSize:           0.5,
		Leverage:          50,
		RiskPercentage:    1.5,
		ConversionRate:    0.0067,
		DailyVolatility:   0.7,
		HoldingPeriodDays: 3,
		SpreadPips:        2.5,
		CommissionPerLot:  7,
		SwapPerLotPerDay:  -1.5,
	}
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          ID,
		Title:       "Forex Trading Calculator",
		Category:    "trading",
		Description: "Position sizing, pip values, margin, costs and target/stop probabilities for a currency trade.",
		Version:     "1.0.0",
		Tags:        []string{"forex", "pips", "margin", "position sizing"},
		Inputs: []registry.Field{
			registry.Text("currencyPair", "Currency pair").Require().Describe("BASE/QUOTE, e.g. EUR/USD"),
			registry.Text("accountCurrency", "Account currency").WithDefault(c.Defaults.AccountCurrency),
			registry.Currency("accountBalance", "Account balance").AtLeast(0).Require(),
			registry.Number("entryPrice", "Entry price").AtLeast(0).Require(),
			registry.Number("stopLossPrice", "Stop loss").AtLeast(0).Require(),
			registry.Number("takeProfitPrice", "Take profit").AtLeast(0).Require(),
			registry.Select("positionType", "Position", PositionTypes...).Require(),
			registry.Number("lotSize", "Lot size").In("lots").Between(0.01, 100).Require(),
			registry.Number("leverage", "Leverage").In(":1").Between(1, 1000).Require(),
			registry.Percentage("riskPercentage", "Risk per trade").Between(0.1, 100).Require(),
			registry.Number("conversionRate", "Quote to account rate").Describe("Needed when neither currency is the account currency"),
			registry.Percentage("dailyVolatility", "Daily volatility").Between(0, 50).WithDefault(c.Defaults.DailyVolatility),
			registry.Integer("holdingPeriodDays", "Holding period").In("days").Between(1, 365).WithDefault(c.Defaults.HoldingPeriodDays),
			registry.Number("spreadPips", "Spread").In("pips").AtLeast(0),
			registry.Currency("commissionPerLot", "Commission per lot").AtLeast(0),
			registry.Currency("swapPerLotPerDay", "Swap per lot per day"),
		},
		Outputs: []registry.Field{
			registry.Currency("pipValue", "Pip value"),
			registry.Currency("marginRequired", "Margin required"),
			registry.Currency("potentialProfit", "Potential profit"),
			registry.Currency("potentialLoss", "Potential loss"),
			registry.Number("riskRewardRatio", "Risk/reward"),
			registry.Number("recommendedLotSize", "Recommended lot size").In("lots"),
			registry.Currency("totalCost", "Trading costs"),
			registry.Percentage("probabilityHitTarget", "Probability of reaching target"),
			registry.Currency("expectedValue", "Expected value"),
			registry.Integer("confidenceLevel", "Confidence").Between(1, 10),
		},
		Examples: []registry.Example{
			registry.NewExample("eurusd-long", "Long EUR/USD swing trade risking 2%", ExampleInputs()),
			registry.NewExample("gbpjpy-short", "Short GBP/JPY on a USD account with cross conversion", yenExample()),
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
