package hedgefund

import (
	"github.com/iwvelando/finance-calculators/internal/registry"
)

// ID is the registry id of the calculator.
const ID = "hedge-fund-analytics"

// ExampleInputs returns a long/short equity fund on standard 2-and-20 terms.
func ExampleInputs() Inputs {
	return Inputs{
		FundName:             "Northwind Long/Short",
		Strategy:             "long/short equity",
		AUM:                  500_000_000,
		InvestmentAmount:     1_000_000,
		ManagementFee:        2,
		PerformanceFee:       20,
		HurdleRate:           0,
		GrossReturn:          15,
		Volatility:           10,
		RiskFreeRate:         4,
		BenchmarkReturn:      8,
		Beta:                 0.6,
		MaxDrawdown:          12,
		DownsideDeviation:    7,
		Skewness:             -0.3,
		Kurtosis:             1.2,
		VarConfidence:        95,
		TimeHorizonDays:      21,
		Leverage:             1.5,
		LockupMonths:         12,
		RedemptionNoticeDays: 90,
	}
}

func historicalExample() Inputs {
	in := ExampleInputs()
	in.FundName = "Northwind Macro"
	in.Strategy = "global macro"
	in.MonthlyReturns = []float64{1.8, -0.6, 2.4, 0.9, -2.1, 1.2, 3.1, -1.4, 0.7, 1.6, -0.3, 2.2}
	return in
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          ID,
		Title:       "Hedge Fund Analytics Calculator",
		Category:    "investment",
		Description: "Fee drag, Sharpe/Sortino/Calmar/Treynor ratios, alpha, value at risk and liquidity of a fund investment.",
		Version:     "1.0.0",
		Tags:        []string{"hedge fund", "fees", "sharpe", "var"},
		Inputs: []registry.Field{
			registry.Text("fundName", "Fund name"),
			registry.Text("strategy", "Strategy").WithDefault(c.Defaults.Strategy),
			registry.Currency("aum", "Assets under management").AtLeast(0).Require(),
			registry.Currency("investmentAmount", "Investment").AtLeast(0).Require(),
			registry.Percentage("managementFee", "Management fee").Between(0, 10),
			registry.Percentage("performanceFee", "Performance fee").Between(0, 50),
			registry.Percentage("hurdleRate", "Hurdle rate").Between(0, 50),
			registry.Percentage("grossReturn", "Expected gross return").Require(),
			registry.Percentage("volatility", "Volatility").Between(0, 200).Require(),
			registry.Percentage("riskFreeRate", "Risk-free rate"),
			registry.Percentage("benchmarkReturn", "Benchmark return"),
			registry.Number("beta", "Beta").Between(-5, 5).WithDefault(c.Defaults.Beta),
			registry.Percentage("maxDrawdown", "Maximum drawdown").Between(0, 100).Describe("Estimated from volatility when empty"),
			registry.Percentage("downsideDeviation", "Downside deviation").Describe("Estimated from volatility when empty"),
			registry.Number("skewness", "Skewness"),
			registry.Number("kurtosis", "Excess kurtosis"),
			registry.List("monthlyReturns", "Monthly returns").In("%").Describe("Two or more values replace the statistics above"),
			registry.Percentage("varConfidence", "VaR confidence").Between(50, 99.9).WithDefault(c.Defaults.VarConfidence),
			registry.Integer("timeHorizonDays", "VaR horizon").In("trading days").Between(1, 3650).WithDefault(c.Defaults.TimeHorizonDays),
			registry.Number("leverage", "Leverage").In("x").Between(1, 20).WithDefault(c.Defaults.Leverage),
			registry.Integer("lockupMonths", "Lockup").In("months").Between(0, 120),
			registry.Integer("redemptionNoticeDays", "Redemption notice").In("days").Between(0, 365),
		},
		Outputs: []registry.Field{
			registry.Currency("totalFees", "Total fees"),
			registry.Percentage("netReturn", "Net return"),
			registry.Percentage("feeDrag", "Fee drag"),
			registry.Number("sharpeRatio", "Sharpe ratio"),
			registry.Number("sortinoRatio", "Sortino ratio"),
			registry.Number("calmarRatio", "Calmar ratio"),
			registry.Number("treynorRatio", "Treynor ratio"),
			registry.Percentage("jensensAlpha", "Jensen's alpha"),
			registry.Currency("valueAtRisk", "Value at risk"),
			registry.Currency("modifiedVaR", "Modified VaR"),
			registry.Integer("liquidityScore", "Liquidity score").Between(1, 10),
			registry.Integer("riskScore", "Risk score").Between(1, 10),
			registry.Integer("confidenceLevel", "Confidence").Between(1, 10),
		},
		Examples: []registry.Example{
			registry.NewExample("two-and-twenty", "Long/short equity fund on 2-and-20 terms", ExampleInputs()),
			registry.NewExample("with-track-record", "Macro fund with a year of monthly returns", historicalExample()),
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
