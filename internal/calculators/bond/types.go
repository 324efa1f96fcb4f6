// Package bond implements the bond trading calculator: pricing, yields,
// duration and convexity, bid/ask analysis and trade heuristics.
package bond

import (
	"github.com/iwvelando/finance-calculators/pkg/insights"
)

// Inputs describes a bond position. Prices are quoted in the same currency
// units as the face value.
type Inputs struct {
	FaceValue          float64 `json:"faceValue"`
	CouponRate         float64 `json:"couponRate"` // percent, annual
	CurrentPrice       float64 `json:"currentPrice"`
	BidPrice           float64 `json:"bidPrice"`
	AskPrice           float64 `json:"askPrice"`
	IssueDate          string  `json:"issueDate"`
	MaturityDate       string  `json:"maturityDate"`
	SettlementDate     string  `json:"settlementDate,omitempty"`
	CallDate           string  `json:"callDate,omitempty"`
	CallPrice          float64 `json:"callPrice,omitempty"`
	PaymentFrequency   int     `json:"paymentFrequency"`
	DayCountConvention string  `json:"dayCountConvention"`
	CreditRating       string  `json:"creditRating"`
	LiquidityScore     int     `json:"liquidityScore"`
	Quantity           int     `json:"quantity"`
	MarketYield        float64 `json:"marketYield"`        // percent
	TaxRate            float64 `json:"taxRate"`            // percent
	ExpectedRateChange float64 `json:"expectedRateChange"` // percentage points
	RiskTolerance      string  `json:"riskTolerance"`
}

// Outputs holds the analysis of a bond position. Yields are in percent.
type Outputs struct {
	SettlementDate     string  `json:"settlementDate" yaml:"settlementDate"`
	LastCouponDate     string  `json:"lastCouponDate" yaml:"lastCouponDate"`
	NextCouponDate     string  `json:"nextCouponDate" yaml:"nextCouponDate"`
	DaysSinceCoupon    int     `json:"daysSinceCoupon" yaml:"daysSinceCoupon"`
	DaysToNextCoupon   int     `json:"daysToNextCoupon" yaml:"daysToNextCoupon"`
	RemainingPayments  int     `json:"remainingPayments" yaml:"remainingPayments"`
	YearsToMaturity    float64 `json:"yearsToMaturity" yaml:"yearsToMaturity"`
	CouponPayment      float64 `json:"couponPayment" yaml:"couponPayment"`
	AccruedInterest    float64 `json:"accruedInterest" yaml:"accruedInterest"`
	CleanPrice         float64 `json:"cleanPrice" yaml:"cleanPrice"`
	DirtyPrice         float64 `json:"dirtyPrice" yaml:"dirtyPrice"`
	CurrentYield       float64 `json:"currentYield" yaml:"currentYield"`
	YieldToMaturity    float64 `json:"yieldToMaturity" yaml:"yieldToMaturity"`
	YieldToCall        float64 `json:"yieldToCall" yaml:"yieldToCall"`
	YieldToWorst       float64 `json:"yieldToWorst" yaml:"yieldToWorst"`
	AfterTaxYield      float64 `json:"afterTaxYield" yaml:"afterTaxYield"`
	YieldSpreadBps     float64 `json:"yieldSpreadBps" yaml:"yieldSpreadBps"`
	MacaulayDuration   float64 `json:"macaulayDuration" yaml:"macaulayDuration"`
	ModifiedDuration   float64 `json:"modifiedDuration" yaml:"modifiedDuration"`
	Convexity          float64 `json:"convexity" yaml:"convexity"`
	DV01               float64 `json:"dv01" yaml:"dv01"`
	PriceChangePercent float64 `json:"priceChangePercent" yaml:"priceChangePercent"`
	EstimatedPrice     float64 `json:"estimatedPrice" yaml:"estimatedPrice"`
	MidPrice           float64 `json:"midPrice" yaml:"midPrice"`
	BidAskSpread       float64 `json:"bidAskSpread" yaml:"bidAskSpread"`
	SpreadPercent      float64 `json:"spreadPercent" yaml:"spreadPercent"`
	TotalCost          float64 `json:"totalCost" yaml:"totalCost"`
	MarketValue        float64 `json:"marketValue" yaml:"marketValue"`
	AnnualIncome       float64 `json:"annualIncome" yaml:"annualIncome"`
	AfterTaxIncome     float64 `json:"afterTaxIncome" yaml:"afterTaxIncome"`
	PositionDV01       float64 `json:"positionDv01" yaml:"positionDv01"`
	PositionPriceRisk  float64 `json:"positionPriceRisk" yaml:"positionPriceRisk"`
	InvestmentGrade    bool    `json:"investmentGrade" yaml:"investmentGrade"`
	Callable           bool    `json:"callable" yaml:"callable"`
	LiquidityScore     int     `json:"liquidityScore" yaml:"liquidityScore"`
	RiskScore          int     `json:"riskScore" yaml:"riskScore"`
	ConfidenceLevel    int     `json:"confidenceLevel" yaml:"confidenceLevel"`
	Recommendation     string  `json:"recommendation" yaml:"recommendation"`

	Scenarios       []insights.Scenario `json:"scenarios" yaml:"scenarios"`
	Strategies      []insights.Strategy `json:"strategies" yaml:"strategies"`
	insights.Advice `yaml:",inline"`
}

// Recommendations.
const (
	Buy  = "buy"
	Hold = "hold"
	Sell = "sell"
)

// Risk tolerances.
const (
	Conservative = "conservative"
	Moderate     = "moderate"
	Aggressive   = "aggressive"
)

// RiskTolerances lists the accepted risk tolerances.
var RiskTolerances = []string{Conservative, Moderate, Aggressive}

// PaymentFrequencies lists the accepted coupon frequencies per year.
var PaymentFrequencies = []int{1, 2, 4, 12}

// Ratings lists the accepted credit ratings from best to worst. Notch
// modifiers (+/-) are accepted on AA through CCC.
var Ratings = []string{"AAA", "AA", "A", "BBB", "BB", "B", "CCC", "CC", "C", "D"}

// Defaults holds the named fallbacks and tuning constants of the calculator.
type Defaults struct {
	PaymentFrequency   int       `json:"paymentFrequency"`
	DayCountConvention string    `json:"dayCountConvention"`
	CreditRating       string    `json:"creditRating"`
	RiskTolerance      string    `json:"riskTolerance"`
	RateScenarios      []float64 `json:"rateScenarios"` // percentage point shifts
	BuyThreshold       float64   `json:"buyThreshold"`  // yield pickup, percentage points
	SellThreshold      float64   `json:"sellThreshold"` // yield pickup, percentage points
	BuyConfidence      int       `json:"buyConfidence"` // minimum confidence to buy
	MaxYield           float64   `json:"maxYield"`      // solver upper bound, decimal
	SolverIterations   int       `json:"solverIterations"`
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		PaymentFrequency:   2,
		DayCountConvention: "30/360",
		CreditRating:       "BBB",
		RiskTolerance:      Moderate,
		RateScenarios:      []float64{-2, -1, -0.5, 0.5, 1, 2},
		BuyThreshold:       0.25,
		SellThreshold:      -0.25,
		BuyConfidence:      6,
		MaxYield:           5,
		SolverIterations:   200,
	}
}
