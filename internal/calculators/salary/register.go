package salary

import (
	"maps"
	"slices"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/registry"
)

// ID is the registry id of the calculator.
const ID = "developer-salary"

// ExampleInputs returns a senior backend engineer at a large company.
func ExampleInputs() Inputs {
	return Inputs{
		Role:                          "backend",
		ExperienceYears:               6,
		Location:                      "seattle",
		CompanySize:                   "large",
		EducationLevel:                "bachelors",
		Skills:                        []string{"go", "kubernetes", "aws"},
		CurrentSalary:                 165_000,
		BonusPercentage:               10,
		EquityValueAnnual:             20_000,
		BenefitsValue:                 15_000,
		TaxRate:                       30,
		RetirementContributionPercent: 6,
		AnnualRaiseRate:               4,
	}
}

func juniorExample() Inputs {
	return Inputs{
		Role:            "frontend",
		ExperienceYears: 1,
		Location:        "remote",
		CompanySize:     "startup",
		EducationLevel:  "bootcamp",
		Skills:          []string{"react, typescript, figma"},
		CurrentSalary:   70_000,
		TaxRate:         22,
	}
}

// Descriptor returns the catalog entry of the calculator.
func (c *Calculator) Descriptor() registry.Descriptor {
	sorted := func(m map[string]float64) []string { return slices.Sorted(maps.Keys(m)) }
	return registry.Descriptor{
		ID:          ID,
		Title:       "Developer Salary Calculator",
		Category:    "career",
		Description: "Market salary estimate by role, experience, location, company and skills, with take-home pay and market position.",
		Version:     "1.0.0",
		Tags:        []string{"salary", "compensation", "career"},
		Inputs: []registry.Field{
			registry.Select("role", "Role", c.Roles()...).Require(),
			registry.Number("experienceYears", "Experience").In("years").Between(0, 50).Require(),
			registry.Select("location", "Location", sorted(c.Defaults.Locations)...).WithDefault(c.Defaults.Location),
			registry.Select("companySize", "Company size", sorted(c.Defaults.CompanySizes)...).WithDefault(c.Defaults.CompanySize),
			registry.Select("educationLevel", "Education", sorted(c.Defaults.EducationLevels)...).WithDefault(c.Defaults.EducationLevel),
			registry.List("skills", "Skills").Describe("Known: " + strings.Join(sorted(c.Defaults.SkillPremiums), ", ")),
			registry.Currency("currentSalary", "Current salary").AtLeast(0),
			registry.Percentage("bonusPercentage", "Bonus").Between(0, 200),
			registry.Currency("equityValueAnnual", "Equity per year").AtLeast(0),
			registry.Currency("benefitsValue", "Benefits value").AtLeast(0),
			registry.Percentage("taxRate", "Tax rate").Between(0, 70),
			registry.Percentage("retirementContributionPercent", "Retirement contribution").Between(0, 100),
			registry.Percentage("annualRaiseRate", "Annual raise").Between(-20, 50).WithDefault(c.Defaults.AnnualRaiseRate),
		},
		Outputs: []registry.Field{
			registry.Currency("estimatedSalary", "Estimated salary"),
			registry.Currency("salaryRangeLow", "Range low"),
			registry.Currency("salaryRangeHigh", "Range high"),
			registry.Currency("totalCompensation", "Total compensation"),
			registry.Currency("takeHomePay", "Take-home pay"),
			registry.Currency("hourlyRate", "Hourly rate"),
			registry.Percentage("marketPercentile", "Market percentile"),
			registry.Text("marketPosition", "Market position"),
			registry.Integer("confidenceLevel", "Confidence").Between(1, 10),
		},
		Examples: []registry.Example{
			registry.NewExample("senior-backend", "Senior backend engineer in Seattle", ExampleInputs()),
			registry.NewExample("junior-frontend", "Junior remote frontend developer from a bootcamp", juniorExample()),
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
