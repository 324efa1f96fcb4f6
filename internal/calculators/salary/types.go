// Package salary implements the developer salary calculator: a market
// estimate from role, experience, location and skills, the resulting pay
// package and where a current salary sits against it.
package salary

import "github.com/iwvelando/finance-calculators/pkg/insights"

// Inputs describes a developer and their current package. Amounts are
// annual, rates are percentages.
type Inputs struct {
	Role                          string   `json:"role"`
	ExperienceYears               float64  `json:"experienceYears"`
	Location                      string   `json:"location"`
	CompanySize                   string   `json:"companySize"`
	EducationLevel                string   `json:"educationLevel"`
	Skills                        []string `json:"skills,omitempty"`
	CurrentSalary                 float64  `json:"currentSalary"`
	BonusPercentage               float64  `json:"bonusPercentage"`
	EquityValueAnnual             float64  `json:"equityValueAnnual"`
	BenefitsValue                 float64  `json:"benefitsValue"`
	TaxRate                       float64  `json:"taxRate"`
	RetirementContributionPercent float64  `json:"retirementContributionPercent"`
	AnnualRaiseRate               float64  `json:"annualRaiseRate"`
}

// Market positions of the current salary.
const (
	BelowMarket = "below market"
	AtMarket    = "at market"
	AboveMarket = "above market"
	Unknown     = "unknown"
)

// ExperienceLevel is a seniority band starting at MinYears.
type ExperienceLevel struct {
	Name       string  `json:"name"`
	MinYears   float64 `json:"minYears"`
	Multiplier float64 `json:"multiplier"`
}

// YearProjection is the expected package in a future year.
type YearProjection struct {
	Year              int     `json:"year" yaml:"year"`
	BaseSalary        float64 `json:"baseSalary" yaml:"baseSalary"`
	TotalCompensation float64 `json:"totalCompensation" yaml:"totalCompensation"`
}

// Outputs holds the salary estimate.
type Outputs struct {
	ExperienceLevel       string   `json:"experienceLevel" yaml:"experienceLevel"`
	RoleBase              float64  `json:"roleBase" yaml:"roleBase"`
	ExperienceMultiplier  float64  `json:"experienceMultiplier" yaml:"experienceMultiplier"`
	LocationMultiplier    float64  `json:"locationMultiplier" yaml:"locationMultiplier"`
	CompanySizeMultiplier float64  `json:"companySizeMultiplier" yaml:"companySizeMultiplier"`
	EducationMultiplier   float64  `json:"educationMultiplier" yaml:"educationMultiplier"`
	SkillPremium          float64  `json:"skillPremium" yaml:"skillPremium"` // percent
	MatchedSkills         []string `json:"matchedSkills" yaml:"matchedSkills"`
	UnknownSkills         []string `json:"unknownSkills" yaml:"unknownSkills"`

	EstimatedSalary     float64 `json:"estimatedSalary" yaml:"estimatedSalary"`
	SalaryRangeLow      float64 `json:"salaryRangeLow" yaml:"salaryRangeLow"`
	SalaryRangeHigh     float64 `json:"salaryRangeHigh" yaml:"salaryRangeHigh"`
	BonusAmount         float64 `json:"bonusAmount" yaml:"bonusAmount"`
	TotalCompensation   float64 `json:"totalCompensation" yaml:"totalCompensation"`
	RetirementAmount    float64 `json:"retirementAmount" yaml:"retirementAmount"`
	TaxAmount           float64 `json:"taxAmount" yaml:"taxAmount"`
	TakeHomePay         float64 `json:"takeHomePay" yaml:"takeHomePay"`
	MonthlyTakeHome     float64 `json:"monthlyTakeHome" yaml:"monthlyTakeHome"`
	HourlyRate          float64 `json:"hourlyRate" yaml:"hourlyRate"`
	MarketDifference    float64 `json:"marketDifference" yaml:"marketDifference"`
	MarketDifferencePct float64 `json:"marketDifferencePercent" yaml:"marketDifferencePercent"`
	MarketPercentile    float64 `json:"marketPercentile" yaml:"marketPercentile"`
	MarketPosition      string  `json:"marketPosition" yaml:"marketPosition"`

	Projection      []YearProjection `json:"projection" yaml:"projection"`
	ConfidenceLevel int              `json:"confidenceLevel" yaml:"confidenceLevel"`
	insights.Advice `yaml:",inline"`
}

// Defaults holds the market tables behind the estimate. Multipliers are
// relative to a mid-level developer at a medium company with a bachelor's
// degree; skill premiums are percentages of the base.
type Defaults struct {
	Currency         string             `json:"currency"`
	RoleBase         map[string]float64 `json:"roleBase"`
	ExperienceLevels []ExperienceLevel  `json:"experienceLevels"`
	Locations        map[string]float64 `json:"locations"`
	CompanySizes     map[string]float64 `json:"companySizes"`
	EducationLevels  map[string]float64 `json:"educationLevels"`
	SkillPremiums    map[string]float64 `json:"skillPremiums"`
	MaxSkillPremium  float64            `json:"maxSkillPremium"`
	RangeSpread      float64            `json:"rangeSpread"`
	Location         string             `json:"location"`
	CompanySize      string             `json:"companySize"`
	EducationLevel   string             `json:"educationLevel"`
	AnnualRaiseRate  float64            `json:"annualRaiseRate"`
	ProjectionYears  int                `json:"projectionYears"`
}

// DefaultDefaults returns the built-in defaults, in US dollars.
func DefaultDefaults() Defaults {
	return Defaults{
		Currency: "USD",
		RoleBase: map[string]float64{
			"frontend":         110_000,
			"backend":          120_000,
			"fullstack":        115_000,
			"mobile":           115_000,
			"devops":           125_000,
			"data-engineer":    125_000,
			"machine-learning": 145_000,
			"security":         130_000,
			"embedded":         115_000,
			"qa":               90_000,
		},
		ExperienceLevels: []ExperienceLevel{
			{Name: "junior", MinYears: 0, Multiplier: 0.8},
			{Name: "mid", MinYears: 2, Multiplier: 1.0},
			{Name: "senior", MinYears: 5, Multiplier: 1.25},
			{Name: "staff", MinYears: 8, Multiplier: 1.5},
			{Name: "principal", MinYears: 12, Multiplier: 1.75},
		},
		Locations: map[string]float64{
			"san-francisco": 1.4,
			"new-york":      1.3,
			"seattle":       1.25,
			"boston":        1.15,
			"austin":        1.05,
			"denver":        1.0,
			"remote":        1.0,
			"other":         0.9,
		},
		CompanySizes: map[string]float64{
			"startup":    0.95,
			"small":      0.9,
			"medium":     1.0,
			"large":      1.1,
			"enterprise": 1.15,
		},
		EducationLevels: map[string]float64{
			"none":      0.95,
			"bootcamp":  0.95,
			"associate": 0.97,
			"bachelors": 1.0,
			"masters":   1.05,
			"phd":       1.1,
		},
		SkillPremiums: map[string]float64{
			"go":               5,
			"rust":             6,
			"kubernetes":       5,
			"aws":              4,
			"terraform":        4,
			"machine-learning": 8,
			"security":         5,
			"scala":            5,
			"python":           3,
			"typescript":       2,
			"react":            2,
			"java":             2,
			"sql":              1,
		},
		MaxSkillPremium: 20,
		RangeSpread:     15,
		Location:        "remote",
		CompanySize:     "medium",
		EducationLevel:  "bachelors",
		AnnualRaiseRate: 3,
		ProjectionYears: 5,
	}
}
