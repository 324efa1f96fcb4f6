// Package valuation implements the business valuation calculator: a
// discounted cash flow model cross-checked against trading multiples.
package valuation

import "github.com/iwvelando/finance-calculators/pkg/insights"

// Inputs describes the company being valued. Rates are in percent.
type Inputs struct {
	CompanyName         string  `json:"companyName"`
	Revenue             float64 `json:"revenue"`
	EBITDA              float64 `json:"ebitda"`
	NetIncome           float64 `json:"netIncome"`
	FreeCashFlow        float64 `json:"freeCashFlow"`
	RevenueGrowthRate   float64 `json:"revenueGrowthRate"`
	ProjectionYears     int     `json:"projectionYears"`
	DiscountRate        float64 `json:"discountRate"` // 0 derives WACC
	RiskFreeRate        float64 `json:"riskFreeRate"`
	Beta                float64 `json:"beta"`
	MarketRiskPremium   float64 `json:"marketRiskPremium"`
	CostOfDebt          float64 `json:"costOfDebt"`
	TaxRate             float64 `json:"taxRate"`
	DebtRatio           float64 `json:"debtRatio"`
	TerminalGrowthRate  float64 `json:"terminalGrowthRate"`
	TotalDebt           float64 `json:"totalDebt"`
	CashAndEquivalents  float64 `json:"cashAndEquivalents"`
	SharesOutstanding   float64 `json:"sharesOutstanding"`
	IndustryEvToEbitda  float64 `json:"industryEvToEbitda"`
	IndustryPeRatio     float64 `json:"industryPeRatio"`
	IndustryEvToRevenue float64 `json:"industryEvToRevenue"`
}

// Projection is one projected year of the DCF.
type Projection struct {
	Year           int     `json:"year" yaml:"year"`
	Revenue        float64 `json:"revenue" yaml:"revenue"`
	FreeCashFlow   float64 `json:"freeCashFlow" yaml:"freeCashFlow"`
	DiscountFactor float64 `json:"discountFactor" yaml:"discountFactor"`
	PresentValue   float64 `json:"presentValue" yaml:"presentValue"`
}

// SensitivityPoint is one cell of the discount rate / terminal growth grid.
type SensitivityPoint struct {
	DiscountRate    float64 `json:"discountRate" yaml:"discountRate"`
	TerminalGrowth  float64 `json:"terminalGrowth" yaml:"terminalGrowth"`
	EnterpriseValue float64 `json:"enterpriseValue" yaml:"enterpriseValue"`
	ValuePerShare   float64 `json:"valuePerShare" yaml:"valuePerShare"`
}

// Outputs holds the valuation. Rates and margins are in percent.
type Outputs struct {
	CostOfEquity         float64            `json:"costOfEquity" yaml:"costOfEquity"`
	AfterTaxCostOfDebt   float64            `json:"afterTaxCostOfDebt" yaml:"afterTaxCostOfDebt"`
	WACC                 float64            `json:"wacc" yaml:"wacc"`
	DiscountRateUsed     float64            `json:"discountRateUsed" yaml:"discountRateUsed"`
	Projections          []Projection       `json:"projections" yaml:"projections"`
	SumPVCashFlows       float64            `json:"sumPvCashFlows" yaml:"sumPvCashFlows"`
	TerminalValue        float64            `json:"terminalValue" yaml:"terminalValue"`
	PVTerminalValue      float64            `json:"pvTerminalValue" yaml:"pvTerminalValue"`
	TerminalValuePercent float64            `json:"terminalValuePercent" yaml:"terminalValuePercent"`
	EnterpriseValue      float64            `json:"enterpriseValue" yaml:"enterpriseValue"`
	EquityValue          float64            `json:"equityValue" yaml:"equityValue"`
	ValuePerShare        float64            `json:"valuePerShare" yaml:"valuePerShare"`
	EvToEbitdaValuation  float64            `json:"evToEbitdaValuation" yaml:"evToEbitdaValuation"`
	EvToRevenueValuation float64            `json:"evToRevenueValuation" yaml:"evToRevenueValuation"`
	PeValuation          float64            `json:"peValuation" yaml:"peValuation"`
	BlendedValuation     float64            `json:"blendedValuation" yaml:"blendedValuation"`
	BlendedValuePerShare float64            `json:"blendedValuePerShare" yaml:"blendedValuePerShare"`
	ValuationLow         float64            `json:"valuationLow" yaml:"valuationLow"`
	ValuationHigh        float64            `json:"valuationHigh" yaml:"valuationHigh"`
	ImpliedEvToEbitda    float64            `json:"impliedEvToEbitda" yaml:"impliedEvToEbitda"`
	ImpliedPeRatio       float64            `json:"impliedPeRatio" yaml:"impliedPeRatio"`
	EbitdaMargin         float64            `json:"ebitdaMargin" yaml:"ebitdaMargin"`
	NetMargin            float64            `json:"netMargin" yaml:"netMargin"`
	FcfMargin            float64            `json:"fcfMargin" yaml:"fcfMargin"`
	Sensitivity          []SensitivityPoint `json:"sensitivity" yaml:"sensitivity"`
	ConfidenceLevel      int                `json:"confidenceLevel" yaml:"confidenceLevel"`

	Scenarios       []insights.Scenario `json:"scenarios" yaml:"scenarios"`
	insights.Advice `yaml:",inline"`
}

// Defaults holds the named fallbacks and method weights.
type Defaults struct {
	ProjectionYears   int     `json:"projectionYears"`
	Beta              float64 `json:"beta"`
	MarketRiskPremium float64 `json:"marketRiskPremium"`
	DCFWeight         float64 `json:"dcfWeight"`
	EvToEbitdaWeight  float64 `json:"evToEbitdaWeight"`
	EvToRevenueWeight float64 `json:"evToRevenueWeight"`
	PeWeight          float64 `json:"peWeight"`
	RateStep          float64 `json:"rateStep"`      // sensitivity discount rate step, percentage points
	GrowthStep        float64 `json:"growthStep"`    // sensitivity terminal growth step, percentage points
	ScenarioShift     float64 `json:"scenarioShift"` // bull/bear growth shift, percentage points
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		ProjectionYears:   5,
		Beta:              1,
		MarketRiskPremium: 5.5,
		DCFWeight:         0.5,
		EvToEbitdaWeight:  0.2,
		EvToRevenueWeight: 0.1,
		PeWeight:          0.2,
		RateStep:          1,
		GrowthStep:        0.5,
		ScenarioShift:     5,
	}
}
