// Package rentalyield implements the rental property calculator: yields,
// net operating income, financing and a multi-year hold projection.
package rentalyield

import "github.com/iwvelando/finance-calculators/pkg/insights"

// Inputs describes a rental property purchase. Rates are annual percentages.
type Inputs struct {
	PropertyPrice           float64 `json:"propertyPrice"`
	MonthlyRent             float64 `json:"monthlyRent"`
	VacancyRate             float64 `json:"vacancyRate"`
	AnnualOperatingExpenses float64 `json:"annualOperatingExpenses"`
	AnnualPropertyTaxes     float64 `json:"annualPropertyTaxes"`
	AnnualInsurance         float64 `json:"annualInsurance"`
	AnnualMaintenance       float64 `json:"annualMaintenance"`
	AnnualManagementFees    float64 `json:"annualManagementFees"`
	OtherAnnualCosts        float64 `json:"otherAnnualCosts"`
	FinancingType           string  `json:"financingType"`
	DownPaymentPercent      float64 `json:"downPaymentPercent"`
	InterestRate            float64 `json:"interestRate"`
	LoanTermYears           int     `json:"loanTermYears"`
	ClosingCosts            float64 `json:"closingCosts"`
	AnnualAppreciationRate  float64 `json:"annualAppreciationRate"`
	AnnualRentGrowth        float64 `json:"annualRentGrowth"`
	HoldingPeriodYears      int     `json:"holdingPeriodYears"`
}

// Financing types.
const (
	Cash     = "cash"
	Mortgage = "mortgage"
)

// FinancingTypes lists the accepted financing types.
var FinancingTypes = []string{Cash, Mortgage}

// Investment ratings.
const (
	Excellent = "excellent"
	Good      = "good"
	Fair      = "fair"
	Poor      = "poor"
)

// YearProjection is the state of the investment at the end of a holding year.
type YearProjection struct {
	Year               int     `json:"year" yaml:"year"`
	AnnualRent         float64 `json:"annualRent" yaml:"annualRent"`
	NetOperatingIncome float64 `json:"netOperatingIncome" yaml:"netOperatingIncome"`
	CashFlow           float64 `json:"cashFlow" yaml:"cashFlow"`
	PropertyValue      float64 `json:"propertyValue" yaml:"propertyValue"`
	LoanBalance        float64 `json:"loanBalance" yaml:"loanBalance"`
	Equity             float64 `json:"equity" yaml:"equity"`
}

// Outputs holds the property analysis.
type Outputs struct {
	GrossAnnualRent          float64 `json:"grossAnnualRent" yaml:"grossAnnualRent"`
	VacancyLoss              float64 `json:"vacancyLoss" yaml:"vacancyLoss"`
	EffectiveGrossIncome     float64 `json:"effectiveGrossIncome" yaml:"effectiveGrossIncome"`
	TotalOperatingExpenses   float64 `json:"totalOperatingExpenses" yaml:"totalOperatingExpenses"`
	NetOperatingIncome       float64 `json:"netOperatingIncome" yaml:"netOperatingIncome"`
	GrossRentalYield         float64 `json:"grossRentalYield" yaml:"grossRentalYield"`
	NetRentalYield           float64 `json:"netRentalYield" yaml:"netRentalYield"`
	CapRate                  float64 `json:"capRate" yaml:"capRate"`
	ExpenseRatio             float64 `json:"expenseRatio" yaml:"expenseRatio"`
	LoanAmount               float64 `json:"loanAmount" yaml:"loanAmount"`
	MonthlyMortgagePayment   float64 `json:"monthlyMortgagePayment" yaml:"monthlyMortgagePayment"`
	AnnualDebtService        float64 `json:"annualDebtService" yaml:"annualDebtService"`
	FirstYearInterest        float64 `json:"firstYearInterest" yaml:"firstYearInterest"`
	AnnualCashFlow           float64 `json:"annualCashFlow" yaml:"annualCashFlow"`
	MonthlyCashFlow          float64 `json:"monthlyCashFlow" yaml:"monthlyCashFlow"`
	TotalCashInvested        float64 `json:"totalCashInvested" yaml:"totalCashInvested"`
	CashOnCashReturn         float64 `json:"cashOnCashReturn" yaml:"cashOnCashReturn"`
	DebtServiceCoverageRatio float64 `json:"debtServiceCoverageRatio" yaml:"debtServiceCoverageRatio"`
	BreakEvenOccupancy       float64 `json:"breakEvenOccupancy" yaml:"breakEvenOccupancy"`
	GrossRentMultiplier      float64 `json:"grossRentMultiplier" yaml:"grossRentMultiplier"`
	LoanToValue              float64 `json:"loanToValue" yaml:"loanToValue"`

	Projection         []YearProjection    `json:"projection" yaml:"projection"`
	FutureValue        float64             `json:"futureValue" yaml:"futureValue"`
	TotalAppreciation  float64             `json:"totalAppreciation" yaml:"totalAppreciation"`
	CumulativeCashFlow float64             `json:"cumulativeCashFlow" yaml:"cumulativeCashFlow"`
	SaleProceeds       float64             `json:"saleProceeds" yaml:"saleProceeds"`
	TotalProfit        float64             `json:"totalProfit" yaml:"totalProfit"`
	TotalReturn        float64             `json:"totalReturn" yaml:"totalReturn"`
	AnnualizedReturn   float64             `json:"annualizedReturn" yaml:"annualizedReturn"`
	InvestmentRating   string              `json:"investmentRating" yaml:"investmentRating"`
	RiskScore          int                 `json:"riskScore" yaml:"riskScore"`
	ConfidenceLevel    int                 `json:"confidenceLevel" yaml:"confidenceLevel"`
	Strategies         []insights.Strategy `json:"strategies" yaml:"strategies"`
	insights.Advice    `yaml:",inline"`
}

// Defaults holds the values used for empty optional inputs and the rating
// thresholds.
type Defaults struct {
	FinancingType      string  `json:"financingType"`
	LoanTermYears      int     `json:"loanTermYears"`
	HoldingPeriodYears int     `json:"holdingPeriodYears"`
	ExpenseGrowthRate  float64 `json:"expenseGrowthRate"`
	SellingCostPercent float64 `json:"sellingCostPercent"`
	ExcellentCapRate   float64 `json:"excellentCapRate"`
	GoodCapRate        float64 `json:"goodCapRate"`
	FairCapRate        float64 `json:"fairCapRate"`
	MinimumDSCR        float64 `json:"minimumDscr"`
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		FinancingType:      Cash,
		LoanTermYears:      30,
		HoldingPeriodYears: 10,
		ExpenseGrowthRate:  2,
		SellingCostPercent: 6,
		ExcellentCapRate:   8,
		GoodCapRate:        6,
		FairCapRate:        4,
		MinimumDSCR:        1.25,
	}
}
