// Package hedgefund implements the hedge fund analytics calculator: fee
// drag, risk-adjusted return ratios, value at risk and liquidity terms.
package hedgefund

import "github.com/iwvelando/finance-calculators/pkg/insights"

// Inputs describes an investment in a fund. Returns, fees, volatility and
// drawdown are annual percentages.
type Inputs struct {
	FundName             string    `json:"fundName"`
	Strategy             string    `json:"strategy"`
	AUM                  float64   `json:"aum"`
	InvestmentAmount     float64   `json:"investmentAmount"`
	ManagementFee        float64   `json:"managementFee"`
	PerformanceFee       float64   `json:"performanceFee"`
	HurdleRate           float64   `json:"hurdleRate"`
	GrossReturn          float64   `json:"grossReturn"`
	Volatility           float64   `json:"volatility"`
	RiskFreeRate         float64   `json:"riskFreeRate"`
	BenchmarkReturn      float64   `json:"benchmarkReturn"`
	Beta                 float64   `json:"beta"`
	MaxDrawdown          float64   `json:"maxDrawdown"`
	DownsideDeviation    float64   `json:"downsideDeviation"`
	Skewness             float64   `json:"skewness"`
	Kurtosis             float64   `json:"kurtosis"` // excess kurtosis
	MonthlyReturns       []float64 `json:"monthlyReturns,omitempty"`
	VarConfidence        float64   `json:"varConfidence"`
	TimeHorizonDays      int       `json:"timeHorizonDays"` // trading days
	Leverage             float64   `json:"leverage"`
	LockupMonths         int       `json:"lockupMonths"`
	RedemptionNoticeDays int       `json:"redemptionNoticeDays"`
}

// Statistics sources.
const (
	SourceAssumed    = "assumed"
	SourceHistorical = "historical"
)

// Outputs holds the fund analysis.
type Outputs struct {
	ManagementFeeAmount  float64 `json:"managementFeeAmount" yaml:"managementFeeAmount"`
	PerformanceFeeAmount float64 `json:"performanceFeeAmount" yaml:"performanceFeeAmount"`
	TotalFees            float64 `json:"totalFees" yaml:"totalFees"`
	GrossProfit          float64 `json:"grossProfit" yaml:"grossProfit"`
	NetProfit            float64 `json:"netProfit" yaml:"netProfit"`
	NetReturn            float64 `json:"netReturn" yaml:"netReturn"`
	FeeDrag              float64 `json:"feeDrag" yaml:"feeDrag"`
	FeeShareOfProfit     float64 `json:"feeShareOfProfit" yaml:"feeShareOfProfit"`
	EndingValue          float64 `json:"endingValue" yaml:"endingValue"`
	SharpeRatio          float64 `json:"sharpeRatio" yaml:"sharpeRatio"`
	SortinoRatio         float64 `json:"sortinoRatio" yaml:"sortinoRatio"`
	CalmarRatio          float64 `json:"calmarRatio" yaml:"calmarRatio"`
	TreynorRatio         float64 `json:"treynorRatio" yaml:"treynorRatio"`
	JensensAlpha         float64 `json:"jensensAlpha" yaml:"jensensAlpha"`
	ExcessReturn         float64 `json:"excessReturn" yaml:"excessReturn"`
	ValueAtRisk          float64 `json:"valueAtRisk" yaml:"valueAtRisk"`
	ValueAtRiskPercent   float64 `json:"valueAtRiskPercent" yaml:"valueAtRiskPercent"`
	ConditionalVaR       float64 `json:"conditionalVaR" yaml:"conditionalVaR"`
	ModifiedVaR          float64 `json:"modifiedVaR" yaml:"modifiedVaR"`
	HistoricalVaR        float64 `json:"historicalVaR" yaml:"historicalVaR"`
	StatisticsSource     string  `json:"statisticsSource" yaml:"statisticsSource"`
	RealizedVolatility   float64 `json:"realizedVolatility" yaml:"realizedVolatility"`
	RealizedReturn       float64 `json:"realizedReturn" yaml:"realizedReturn"`
	DownsideDeviation    float64 `json:"downsideDeviation" yaml:"downsideDeviation"`
	Skewness             float64 `json:"skewness" yaml:"skewness"`
	Kurtosis             float64 `json:"kurtosis" yaml:"kurtosis"`
	MaxDrawdown          float64 `json:"maxDrawdown" yaml:"maxDrawdown"`
	LeveragedVolatility  float64 `json:"leveragedVolatility" yaml:"leveragedVolatility"`
	PositionShareOfAUM   float64 `json:"positionShareOfAum" yaml:"positionShareOfAum"`
	LockupEndDate        string  `json:"lockupEndDate" yaml:"lockupEndDate"`
	EarliestExitDate     string  `json:"earliestExitDate" yaml:"earliestExitDate"`
	LiquidityScore       int     `json:"liquidityScore" yaml:"liquidityScore"`
	RiskScore            int     `json:"riskScore" yaml:"riskScore"`
	ConfidenceLevel      int     `json:"confidenceLevel" yaml:"confidenceLevel"`

	Scenarios       []insights.Scenario `json:"scenarios" yaml:"scenarios"`
	insights.Advice `yaml:",inline"`
}

// Defaults holds the named placeholders used when pre-computed statistics
// are not supplied.
type Defaults struct {
	DownsideDeviationFactor float64 `json:"downsideDeviationFactor"` // share of volatility
	MaxDrawdownFactor       float64 `json:"maxDrawdownFactor"`       // multiple of volatility
	Beta                    float64 `json:"beta"`
	VarConfidence           float64 `json:"varConfidence"`
	TimeHorizonDays         int     `json:"timeHorizonDays"`
	Leverage                float64 `json:"leverage"`
	Strategy                string  `json:"strategy"`
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		DownsideDeviationFactor: 0.7,
		MaxDrawdownFactor:       1.5,
		Beta:                    1,
		VarConfidence:           95,
		TimeHorizonDays:         21,
		Leverage:                1,
		Strategy:                "multi-strategy",
	}
}
