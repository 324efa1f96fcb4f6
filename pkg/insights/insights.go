// Package insights holds the advisory text and synthetic strategy/scenario
// records attached to calculator outputs.
package insights

import "fmt"

// Advice collects generated advisory text. Outputs embed it so the four lists
// appear at the top level of the rendered result.
type Advice struct {
	KeyFactors      []string `json:"keyFactors" yaml:"keyFactors"`
	Risks           []string `json:"risks" yaml:"risks"`
	Opportunities   []string `json:"opportunities" yaml:"opportunities"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// NewAdvice returns an Advice whose lists render as empty arrays rather than null.
func NewAdvice() Advice {
	return Advice{
		KeyFactors:      []string{},
		Risks:           []string{},
		Opportunities:   []string{},
		Recommendations: []string{},
	}
}

// Factor appends a key factor.
func (a *Advice) Factor(format string, args ...any) {
	a.KeyFactors = append(a.KeyFactors, fmt.Sprintf(format, args...))
}

// Risk appends a risk.
func (a *Advice) Risk(format string, args ...any) {
	a.Risks = append(a.Risks, fmt.Sprintf(format, args...))
}

// Opportunity appends an opportunity.
func (a *Advice) Opportunity(format string, args ...any) {
	a.Opportunities = append(a.Opportunities, fmt.Sprintf(format, args...))
}

// Recommend appends a recommendation.
func (a *Advice) Recommend(format string, args ...any) {
	a.Recommendations = append(a.Recommendations, fmt.Sprintf(format, args...))
}

// Len returns the total number of advisory lines.
func (a Advice) Len() int {
	return len(a.KeyFactors) + len(a.Risks) + len(a.Opportunities) + len(a.Recommendations)
}

// Strategy is a named course of action with an expected annual return.
type Strategy struct {
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	ExpectedReturn float64 `json:"expectedReturn" yaml:"expectedReturn"` // percent
	RiskLevel      string  `json:"riskLevel" yaml:"riskLevel"`
	Suitable       bool    `json:"suitable" yaml:"suitable"`
}

// Scenario is a what-if outcome. Value is in the calculator's own unit
// (price, equity, account balance); Change and Return describe the move
// relative to the base case.
type Scenario struct {
	Name        string  `json:"name" yaml:"name"`
	Probability float64 `json:"probability" yaml:"probability"` // percent
	Value       float64 `json:"value" yaml:"value"`
	Change      float64 `json:"change" yaml:"change"`
	Return      float64 `json:"return" yaml:"return"` // percent
}

// Risk levels used by strategies and ratings.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// Level maps a 1-10 risk score onto a coarse level.
func Level(score int) string {
	switch {
	case score <= 3:
		return LevelLow
	case score <= 6:
		return LevelModerate
	default:
		return LevelHigh
	}
}
