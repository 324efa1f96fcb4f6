package salary

import (
	"maps"
	"slices"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Validate checks in for errors and warnings.
func (c *Calculator) Validate(in Inputs) validation.Result {
	return c.rules.Validate(in)
}

// ValidateField checks a single field of in.
func (c *Calculator) ValidateField(field string, in Inputs) validation.FieldResult {
	return c.rules.ValidateField(field, in)
}

// Roles returns the roles with market data, sorted.
func (c *Calculator) Roles() []string {
	return slices.Sorted(maps.Keys(c.Defaults.RoleBase))
}

func (c *Calculator) buildRules() validation.Table[Inputs] {
	choice := func(field string, get func(Inputs) string, table map[string]float64) validation.Rule[Inputs] {
		return validation.OneOf(field, func(in Inputs) string { return NormalizeKey(get(in)) }, slices.Sorted(maps.Keys(table)), "").
			If(func(in Inputs) bool { return strings.TrimSpace(get(in)) != "" })
	}

	return validation.Table[Inputs]{
		validation.Check("role", func(in Inputs) bool { return strings.TrimSpace(in.Role) == "" }, "Role is required"),
		choice("role", func(in Inputs) string { return in.Role }, c.Defaults.RoleBase),
		choice("location", func(in Inputs) string { return in.Location }, c.Defaults.Locations),
		choice("companySize", func(in Inputs) string { return in.CompanySize }, c.Defaults.CompanySizes),
		choice("educationLevel", func(in Inputs) string { return in.EducationLevel }, c.Defaults.EducationLevels),

		validation.Range("experienceYears", func(in Inputs) float64 { return in.ExperienceYears }, 0, 50, "Experience must be between 0 and 50 years"),
		validation.Above("experienceYears", func(in Inputs) float64 { return in.ExperienceYears }, 40, "Market data beyond 40 years of experience is sparse"),
		validation.Warn("skills", func(in Inputs) bool {
			_, _, unknown := c.SkillPremium(in.Skills)
			return len(unknown) > 0
		}, "Some skills have no market data and earn no premium"),

		validation.NonNegative("currentSalary", func(in Inputs) float64 { return in.CurrentSalary }, "Current salary cannot be negative"),
		validation.Warn("currentSalary", func(in Inputs) bool { return in.CurrentSalary > 0 && in.CurrentSalary < 10_000 }, "Current salary looks monthly; enter the annual amount"),
		validation.Range("bonusPercentage", func(in Inputs) float64 { return in.BonusPercentage }, 0, 200, "Bonus must be between 0% and 200%"),
		validation.Above("bonusPercentage", func(in Inputs) float64 { return in.BonusPercentage }, 50, "Bonus above 50% of base is unusual outside finance"),
		validation.NonNegative("equityValueAnnual", func(in Inputs) float64 { return in.EquityValueAnnual }, "Equity value cannot be negative"),
		validation.NonNegative("benefitsValue", func(in Inputs) float64 { return in.BenefitsValue }, "Benefits value cannot be negative"),
		validation.Range("taxRate", func(in Inputs) float64 { return in.TaxRate }, 0, 70, "Tax rate must be between 0% and 70%"),
		validation.Range("retirementContributionPercent", func(in Inputs) float64 { return in.RetirementContributionPercent }, 0, 100, "Retirement contribution must be between 0% and 100%"),
		validation.Range("annualRaiseRate", func(in Inputs) float64 { return in.AnnualRaiseRate }, -20, 50, "Annual raise must be between -20% and 50%"),
	}
}
