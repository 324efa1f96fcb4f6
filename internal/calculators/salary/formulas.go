package salary

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/insights"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var skillAliases = map[string]string{
	"golang":   "go",
	"k8s":      "kubernetes",
	"ml":       "machine-learning",
	"ts":       "typescript",
	"reactjs":  "react",
	"postgres": "sql",
}

// NormalizeKey lower-cases a table key and joins words with dashes.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// NormalizeSkills splits comma separated entries, resolves aliases and
// drops duplicates while keeping the input order.
func NormalizeSkills(skills []string) []string {
	var result []string
	for _, entry := range skills {
		for _, s := range strings.Split(entry, ",") {
			key := NormalizeKey(s)
			if alias, ok := skillAliases[key]; ok {
				key = alias
			}
			if key != "" && !slices.Contains(result, key) {
				result = append(result, key)
			}
		}
	}
	return result
}

// Level returns the experience band for years.
func (c *Calculator) Level(years float64) ExperienceLevel {
	level := ExperienceLevel{Name: "mid", Multiplier: 1}
	for _, l := range c.Defaults.ExperienceLevels {
		if years >= l.MinYears && l.MinYears >= level.MinYears {
			level = l
		}
	}
	return level
}

// SkillPremium returns the capped premium in percent earned by skills,
// along with the skills that earned it and the ones not in the table.
func (c *Calculator) SkillPremium(skills []string) (premium float64, matched, unknown []string) {
	matched, unknown = []string{}, []string{}
	for _, s := range NormalizeSkills(skills) {
		if p, ok := c.Defaults.SkillPremiums[s]; ok {
			premium += p
			matched = append(matched, s)
			continue
		}
		unknown = append(unknown, s)
	}
	return math.Min(premium, c.Defaults.MaxSkillPremium), matched, unknown
}

func (c *Calculator) normalize(in Inputs) Inputs {
	in.Role = NormalizeKey(in.Role)
	in.Location = NormalizeKey(in.Location)
	if in.Location == "" {
		in.Location = c.Defaults.Location
	}
	in.CompanySize = NormalizeKey(in.CompanySize)
	if in.CompanySize == "" {
		in.CompanySize = c.Defaults.CompanySize
	}
	in.EducationLevel = NormalizeKey(in.EducationLevel)
	if in.EducationLevel == "" {
		in.EducationLevel = c.Defaults.EducationLevel
	}
	if in.AnnualRaiseRate == 0 {
		in.AnnualRaiseRate = c.Defaults.AnnualRaiseRate
	}
	return in
}

// multiplier looks key up in table; unknown keys are neutral.
func multiplier(table map[string]float64, key string) float64 {
	if m, ok := table[key]; ok {
		return m
	}
	return 1
}

// Calculate estimates the market salary for in.
func (c *Calculator) Calculate(in Inputs) Outputs {
	in = c.normalize(in)
	out := Outputs{Advice: insights.NewAdvice()}

	level := c.Level(in.ExperienceYears)
	premium, matched, unknown := c.SkillPremium(in.Skills)
	out.ExperienceLevel = level.Name
	out.RoleBase = c.Defaults.RoleBase[in.Role]
	out.ExperienceMultiplier = level.Multiplier
	out.LocationMultiplier = multiplier(c.Defaults.Locations, in.Location)
	out.CompanySizeMultiplier = multiplier(c.Defaults.CompanySizes, in.CompanySize)
	out.EducationMultiplier = multiplier(c.Defaults.EducationLevels, in.EducationLevel)
	out.SkillPremium = mathutil.RoundRatio(premium)
	out.MatchedSkills, out.UnknownSkills = matched, unknown

	base := out.RoleBase * level.Multiplier * out.LocationMultiplier *
		out.CompanySizeMultiplier * out.EducationMultiplier * (1 + mathutil.PercentToDecimal(premium))
	spread := mathutil.PercentToDecimal(c.Defaults.RangeSpread)
	out.EstimatedSalary = mathutil.Round(base)
	out.SalaryRangeLow = mathutil.Round(base * (1 - spread))
	out.SalaryRangeHigh = mathutil.Round(base * (1 + spread))

	// Package
	bonus := mathutil.ApplyPercentage(base, in.BonusPercentage)
	retirement := mathutil.ApplyPercentage(base, in.RetirementContributionPercent)
	taxable := math.Max(0, base+bonus+in.EquityValueAnnual-retirement)
	tax := mathutil.ApplyPercentage(taxable, in.TaxRate)
	takeHome := taxable - tax
	out.BonusAmount = mathutil.Round(bonus)
	out.TotalCompensation = mathutil.Round(base + bonus + in.EquityValueAnnual + in.BenefitsValue)
	out.RetirementAmount = mathutil.Round(retirement)
	out.TaxAmount = mathutil.Round(tax)
	out.TakeHomePay = mathutil.Round(takeHome)
	out.MonthlyTakeHome = mathutil.Round(takeHome / constants.MonthsPerYear)
	out.HourlyRate = mathutil.Round(base / constants.WorkHoursPerYear)

	// Market position; the range spread is one standard deviation.
	out.MarketPosition = Unknown
	if in.CurrentSalary > 0 && base > 0 {
		diff := in.CurrentSalary - base
		percentile := mathutil.NormalCDF(diff/(base*spread)) * constants.PercentageMultiplier
		out.MarketDifference = mathutil.Round(diff)
		out.MarketDifferencePct = mathutil.RoundRatio(mathutil.CalculatePercentage(diff, base))
		out.MarketPercentile = mathutil.RoundRatio(percentile)
		switch {
		case percentile < 25:
			out.MarketPosition = BelowMarket
		case percentile > 75:
			out.MarketPosition = AboveMarket
		default:
			out.MarketPosition = AtMarket
		}
	}

	out.Projection = c.project(in, base)
	out.ConfidenceLevel = c.confidenceLevel(in, out)
	c.advise(&out.Advice, in, out)
	return out
}

// project grows the estimate by the annual raise. Year 0 is the current
// calendar year.
func (c *Calculator) project(in Inputs, base float64) []YearProjection {
	raise := 1 + mathutil.PercentToDecimal(in.AnnualRaiseRate)
	year := c.Now().Year()
	result := make([]YearProjection, 0, c.Defaults.ProjectionYears)
	for t := 1; t <= c.Defaults.ProjectionYears; t++ {
		salary := base * math.Pow(raise, float64(t))
		bonus := mathutil.ApplyPercentage(salary, in.BonusPercentage)
		result = append(result, YearProjection{
			Year:              year + t,
			BaseSalary:        mathutil.Round(salary),
			TotalCompensation: mathutil.Round(salary + bonus + in.EquityValueAnnual + in.BenefitsValue),
		})
	}
	return result
}

func (c *Calculator) confidenceLevel(in Inputs, out Outputs) int {
	level := constants.NeutralConfidence
	if _, ok := c.Defaults.Locations[in.Location]; ok && in.Location != "other" {
		level++
	}
	if in.ExperienceYears >= 1 && in.ExperienceYears <= 25 {
		level++
	}
	if in.ExperienceYears > 30 {
		level--
	}
	if len(out.UnknownSkills) > 0 {
		level--
	}
	if len(out.MatchedSkills) >= 3 {
		level++
	}
	if out.MarketPosition == AtMarket {
		level++
	}
	return mathutil.ClampScore(level)
}

func (c *Calculator) advise(a *insights.Advice, in Inputs, out Outputs) {
	a.Factor("%s %s developer in %s: base %.0f %s", out.ExperienceLevel, in.Role, in.Location, out.RoleBase, c.Defaults.Currency)
	a.Factor("Multipliers: experience %.2f, location %.2f, company %.2f, education %.2f",
		out.ExperienceMultiplier, out.LocationMultiplier, out.CompanySizeMultiplier, out.EducationMultiplier)
	if len(out.MatchedSkills) > 0 {
		a.Factor("Skill premium of %.1f%% from %s", out.SkillPremium, strings.Join(out.MatchedSkills, ", "))
	}

	if out.MarketPosition == BelowMarket {
		a.Risk("Current salary is %.0f below the estimate (%.0fth percentile)", -out.MarketDifference, out.MarketPercentile)
	}
	if len(out.UnknownSkills) > 0 {
		a.Risk("No market data for %s", strings.Join(out.UnknownSkills, ", "))
	}
	if in.EquityValueAnnual > out.EstimatedSalary/2 {
		a.Risk("Equity is a large share of pay and may be illiquid")
	}

	next := c.nextLevel(in.ExperienceYears)
	if next.Name != out.ExperienceLevel {
		a.Opportunity("Reaching %s adds about %.0f%% to base pay", next.Name, (next.Multiplier/out.ExperienceMultiplier-1)*constants.PercentageMultiplier)
	}
	if out.SkillPremium < c.Defaults.MaxSkillPremium {
		a.Opportunity("In-demand skills can add up to %.0f%% more", c.Defaults.MaxSkillPremium-out.SkillPremium)
	}
	if out.LocationMultiplier < 1 {
		a.Opportunity("Remote roles pay %.0f%% more than the local market", (multiplier(c.Defaults.Locations, "remote")/out.LocationMultiplier-1)*constants.PercentageMultiplier)
	}

	switch out.MarketPosition {
	case BelowMarket:
		a.Recommend("Negotiate toward %.0f or test the market", out.EstimatedSalary)
	case AboveMarket:
		a.Recommend("Pay is above market; weigh growth and equity over salary when moving")
	case AtMarket:
		a.Recommend("Pay is in line with the market; focus on level and skills to grow it")
	default:
		a.Recommend("Enter a current salary to compare against the market")
	}
	if in.RetirementContributionPercent < 5 {
		a.Recommend("Raise retirement contributions to capture employer matches")
	}
}

// nextLevel returns the band above years, or the current band at the top.
func (c *Calculator) nextLevel(years float64) ExperienceLevel {
	current := c.Level(years)
	levels := slices.Clone(c.Defaults.ExperienceLevels)
	slices.SortFunc(levels, func(a, b ExperienceLevel) int {
		return cmp.Compare(a.MinYears, b.MinYears)
	})
	for _, l := range levels {
		if l.MinYears > current.MinYears {
			return l
		}
	}
	return current
}
