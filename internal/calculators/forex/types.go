// Package forex implements the forex trading calculator: position sizing,
// pip values, margin, trading costs and touch probabilities.
package forex

import "github.com/iwvelando/finance-calculators/pkg/insights"

// Inputs describes a planned forex trade.
type Inputs struct {
	CurrencyPair      string  `json:"currencyPair"` // BASE/QUOTE
	AccountCurrency   string  `json:"accountCurrency"`
	AccountBalance    float64 `json:"accountBalance"`
	EntryPrice        float64 `json:"entryPrice"`
	StopLossPrice     float64 `json:"stopLossPrice"`
	TakeProfitPrice   float64 `json:"takeProfitPrice"`
	PositionType      string  `json:"positionType"`
	LotSize           float64 `json:"lotSize"`
	Leverage          float64 `json:"leverage"`
	RiskPercentage    float64 `json:"riskPercentage"`
	ConversionRate    float64 `json:"conversionRate"`  // quote to account currency
	DailyVolatility   float64 `json:"dailyVolatility"` // percent
	HoldingPeriodDays int     `json:"holdingPeriodDays"`
	SpreadPips        float64 `json:"spreadPips"`
	CommissionPerLot  float64 `json:"commissionPerLot"`
	SwapPerLotPerDay  float64 `json:"swapPerLotPerDay"` // positive is a cost
}

// Outputs holds the trade analysis. Money values are in the account currency.
type Outputs struct {
	BaseCurrency           string  `json:"baseCurrency" yaml:"baseCurrency"`
	QuoteCurrency          string  `json:"quoteCurrency" yaml:"quoteCurrency"`
	PipSize                float64 `json:"pipSize" yaml:"pipSize"`
	Units                  float64 `json:"units" yaml:"units"`
	PipValuePerLot         float64 `json:"pipValuePerLot" yaml:"pipValuePerLot"`
	PipValue               float64 `json:"pipValue" yaml:"pipValue"`
	NotionalValue          float64 `json:"notionalValue" yaml:"notionalValue"`
	MarginRequired         float64 `json:"marginRequired" yaml:"marginRequired"`
	FreeMargin             float64 `json:"freeMargin" yaml:"freeMargin"`
	MarginLevel            float64 `json:"marginLevel" yaml:"marginLevel"` // percent
	StopLossPips           float64 `json:"stopLossPips" yaml:"stopLossPips"`
	TakeProfitPips         float64 `json:"takeProfitPips" yaml:"takeProfitPips"`
	PotentialProfit        float64 `json:"potentialProfit" yaml:"potentialProfit"`
	PotentialLoss          float64 `json:"potentialLoss" yaml:"potentialLoss"`
	RiskRewardRatio        float64 `json:"riskRewardRatio" yaml:"riskRewardRatio"`
	RiskAmount             float64 `json:"riskAmount" yaml:"riskAmount"`
	AccountRiskPercent     float64 `json:"accountRiskPercent" yaml:"accountRiskPercent"`
	RecommendedLotSize     float64 `json:"recommendedLotSize" yaml:"recommendedLotSize"`
	SpreadCost             float64 `json:"spreadCost" yaml:"spreadCost"`
	CommissionCost         float64 `json:"commissionCost" yaml:"commissionCost"`
	SwapCost               float64 `json:"swapCost" yaml:"swapCost"`
	TotalCost              float64 `json:"totalCost" yaml:"totalCost"`
	BreakEvenPrice         float64 `json:"breakEvenPrice" yaml:"breakEvenPrice"`
	PeriodVolatilityPips   float64 `json:"periodVolatilityPips" yaml:"periodVolatilityPips"`
	ProbabilityHitTarget   float64 `json:"probabilityHitTarget" yaml:"probabilityHitTarget"` // percent
	ProbabilityHitStop     float64 `json:"probabilityHitStop" yaml:"probabilityHitStop"`     // percent
	ProbabilityTargetFirst float64 `json:"probabilityTargetFirst" yaml:"probabilityTargetFirst"`
	ExpectedValue          float64 `json:"expectedValue" yaml:"expectedValue"`
	ConfidenceLevel        int     `json:"confidenceLevel" yaml:"confidenceLevel"`
	TradeDate              string  `json:"tradeDate" yaml:"tradeDate"`
	ExitByDate             string  `json:"exitByDate" yaml:"exitByDate"`

	Scenarios       []insights.Scenario `json:"scenarios" yaml:"scenarios"`
	Strategies      []insights.Strategy `json:"strategies" yaml:"strategies"`
	insights.Advice `yaml:",inline"`
}

// Position types.
const (
	Long  = "long"
	Short = "short"
)

// PositionTypes lists the accepted position types.
var PositionTypes = []string{Long, Short}

// Defaults holds the named fallbacks of the calculator.
type Defaults struct {
	AccountCurrency   string  `json:"accountCurrency"`
	ContractSize      float64 `json:"contractSize"`    // units per standard lot
	DailyVolatility   float64 `json:"dailyVolatility"` // percent
	HoldingPeriodDays int     `json:"holdingPeriodDays"`
	LotStep           float64 `json:"lotStep"`
	MaxRiskPercent    float64 `json:"maxRiskPercent"`
	MarginCallLevel   float64 `json:"marginCallLevel"` // percent
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		AccountCurrency:   "USD",
		ContractSize:      100_000,
		DailyVolatility:   0.6,
		HoldingPeriodDays: 5,
		LotStep:           0.01,
		MaxRiskPercent:    2,
		MarginCallLevel:   100,
	}
}
