package salary

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

var frozen = datetime.FixedClock(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

func TestCalculateSeniorBackend(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(ExampleInputs())

	tests := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"Skill premium", out.SkillPremium, 14, 1e-9},
		{"Estimated salary", out.EstimatedSalary, 235_125, 0.01},
		{"Range low", out.SalaryRangeLow, 199_856.25, 0.01},
		{"Range high", out.SalaryRangeHigh, 270_393.75, 0.01},
		{"Bonus", out.BonusAmount, 23_512.5, 0.01},
		{"Total compensation", out.TotalCompensation, 293_637.5, 0.01},
		{"Retirement", out.RetirementAmount, 14_107.5, 0.01},
		{"Tax", out.TaxAmount, 79_359, 0.01},
		{"Take-home", out.TakeHomePay, 185_171, 0.01},
		{"Monthly take-home", out.MonthlyTakeHome, 15_430.92, 0.01},
		{"Hourly rate", out.HourlyRate, 113.04, 0.01},
		{"Market difference", out.MarketDifference, -70_125, 0.01},
		{"Market difference percent", out.MarketDifferencePct, -29.8246, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > tt.tolerance {
				t.Errorf("got %.6f, expected %.6f", tt.got, tt.expected)
			}
		})
	}

	if out.ExperienceLevel != "senior" {
		t.Errorf("ExperienceLevel = %s, expected senior", out.ExperienceLevel)
	}
	if !reflect.DeepEqual(out.MatchedSkills, []string{"go", "kubernetes", "aws"}) || len(out.UnknownSkills) != 0 {
		t.Errorf("skills = %v / %v", out.MatchedSkills, out.UnknownSkills)
	}
	if out.MarketPosition != BelowMarket || out.MarketPercentile >= 5 {
		t.Errorf("market = %s at %.2f, expected well below market", out.MarketPosition, out.MarketPercentile)
	}
	if len(out.Projection) != 5 || out.Projection[0].Year != 2026 {
		t.Fatalf("projection = %+v", out.Projection)
	}
	if math.Abs(out.Projection[0].BaseSalary-244_530) > 0.01 {
		t.Errorf("first projected salary = %.2f, expected 244530", out.Projection[0].BaseSalary)
	}
	if out.ConfidenceLevel != 8 {
		t.Errorf("ConfidenceLevel = %d, expected 8", out.ConfidenceLevel)
	}
}

func TestCalculateJuniorWithUnknownSkill(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(juniorExample())

	if out.ExperienceLevel != "junior" {
		t.Errorf("ExperienceLevel = %s, expected junior", out.ExperienceLevel)
	}
	if math.Abs(out.EstimatedSalary-82_596.8) > 0.01 {
		t.Errorf("EstimatedSalary = %.2f, expected 82596.80", out.EstimatedSalary)
	}
	if !reflect.DeepEqual(out.UnknownSkills, []string{"figma"}) {
		t.Errorf("UnknownSkills = %v, expected [figma]", out.UnknownSkills)
	}
	// The default raise applies when none is given.
	if math.Abs(out.Projection[0].BaseSalary-82_596.8*1.03) > 0.01 {
		t.Errorf("first projected salary = %.2f", out.Projection[0].BaseSalary)
	}
}

func TestLevel(t *testing.T) {
	c := New()
	tests := []struct {
		years    float64
		expected string
	}{
		{0, "junior"},
		{1.9, "junior"},
		{2, "mid"},
		{4.99, "mid"},
		{5, "senior"},
		{8, "staff"},
		{12, "principal"},
		{40, "principal"},
	}
	for _, tt := range tests {
		if got := c.Level(tt.years).Name; got != tt.expected {
			t.Errorf("Level(%v) = %s, expected %s", tt.years, got, tt.expected)
		}
	}
	if next := c.nextLevel(40); next.Name != "principal" {
		t.Errorf("nextLevel at the top = %s, expected principal", next.Name)
	}
	if next := c.nextLevel(3); next.Name != "senior" {
		t.Errorf("nextLevel(3) = %s, expected senior", next.Name)
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{"Golang", "k8s, AWS", "go", " "})
	if !reflect.DeepEqual(got, []string{"go", "kubernetes", "aws"}) {
		t.Errorf("NormalizeSkills = %v", got)
	}
}

func TestSkillPremiumIsCapped(t *testing.T) {
	premium, matched, _ := New().SkillPremium([]string{"go", "rust", "kubernetes", "aws", "terraform", "ml"})
	if premium != 20 || len(matched) != 6 {
		t.Errorf("premium = %v with %d skills, expected the 20%% cap", premium, len(matched))
	}
}

func TestMarketPosition(t *testing.T) {
	c := New(WithClock(frozen))
	base := c.Calculate(ExampleInputs()).EstimatedSalary

	tests := []struct {
		name     string
		current  float64
		expected string
	}{
		{"No current salary", 0, Unknown},
		{"At the estimate", base, AtMarket},
		{"Twenty percent above", base * 1.2, AboveMarket},
		{"Twenty percent below", base * 0.8, BelowMarket},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ExampleInputs()
			in.CurrentSalary = tt.current
			out := c.Calculate(in)
			if out.MarketPosition != tt.expected {
				t.Errorf("MarketPosition = %s (percentile %.2f), expected %s", out.MarketPosition, out.MarketPercentile, tt.expected)
			}
		})
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	c := New(WithClock(frozen))
	if !reflect.DeepEqual(c.Calculate(ExampleInputs()), c.Calculate(ExampleInputs())) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Inputs)
		expectValid bool
		field       string
	}{
		{"Example is valid", func(in *Inputs) {}, true, ""},
		{"Missing role", func(in *Inputs) { in.Role = "" }, false, "role"},
		{"Unknown role", func(in *Inputs) { in.Role = "wizard" }, false, "role"},
		{"Role in words", func(in *Inputs) { in.Role = "Machine Learning" }, true, ""},
		{"Unknown location", func(in *Inputs) { in.Location = "mars" }, false, "location"},
		{"Default location", func(in *Inputs) { in.Location = "" }, true, ""},
		{"Unknown company size", func(in *Inputs) { in.CompanySize = "huge" }, false, "companySize"},
		{"Unknown education", func(in *Inputs) { in.EducationLevel = "wizardry" }, false, "educationLevel"},
		{"Experience above 50", func(in *Inputs) { in.ExperienceYears = 51 }, false, "experienceYears"},
		{"Negative salary", func(in *Inputs) { in.CurrentSalary = -1 }, false, "currentSalary"},
		{"Bonus above 200", func(in *Inputs) { in.BonusPercentage = 201 }, false, "bonusPercentage"},
		{"Tax above 70", func(in *Inputs) { in.TaxRate = 71 }, false, "taxRate"},
		{"Retirement above 100", func(in *Inputs) { in.RetirementContributionPercent = 101 }, false, "retirementContributionPercent"},
		{"Unknown skill is only a warning", func(in *Inputs) { in.Skills = []string{"cobol-on-mars"} }, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ExampleInputs()
			tt.mutate(&in)
			result := Validate(in)
			if result.IsValid != tt.expectValid {
				t.Errorf("IsValid = %v, expected %v (errors: %v)", result.IsValid, tt.expectValid, result.Errors)
			}
			if tt.field != "" && result.Errors[tt.field] == "" {
				t.Errorf("expected error on %s, got %v", tt.field, result.Errors)
			}
		})
	}
}

func TestValidateFieldWarnings(t *testing.T) {
	in := juniorExample()
	if r := ValidateField("skills", in); !r.IsValid || r.Warning == "" {
		t.Errorf("ValidateField(skills) = %+v, expected a warning for figma", r)
	}
	in.CurrentSalary = 6_000
	if r := ValidateField("currentSalary", in); !r.IsValid || r.Warning == "" {
		t.Errorf("ValidateField(currentSalary) = %+v, expected a monthly-amount warning", r)
	}
	if r := ValidateField("role", in); !r.IsValid || r.Error != "" || r.Warning != "" {
		t.Errorf("ValidateField(role) = %+v, expected clean", r)
	}
}

func TestBindEvaluatesExamples(t *testing.T) {
	calc := New(WithClock(frozen)).Bind()
	for _, ex := range calc.Descriptor().Examples {
		if _, err := calc.Evaluate(ex.Inputs); err != nil {
			t.Errorf("example %s: %v", ex.Name, err)
		}
	}
}
