package loan

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

var frozen = datetime.FixedClock(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

func TestEffectiveAnnualRate(t *testing.T) {
	tests := []struct {
		nominal  float64
		expected float64
	}{
		{0, 0},
		{12, 12.682503},
		{6, 6.167781},
	}
	for _, tt := range tests {
		if got := EffectiveAnnualRate(tt.nominal); math.Abs(got-tt.expected) > 1e-5 {
			t.Errorf("EffectiveAnnualRate(%v) = %.6f, expected %.6f", tt.nominal, got, tt.expected)
		}
	}
}

func TestCalculateMortgageWithExtra(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(ExampleInputs())

	if out.FinancedAmount != 240_000 {
		t.Errorf("FinancedAmount = %.2f, expected 240000", out.FinancedAmount)
	}
	if math.Abs(out.MonthlyPayment-1_516.96) > 0.05 {
		t.Errorf("MonthlyPayment = %.2f, expected about 1516.96", out.MonthlyPayment)
	}
	if out.BaselinePayoffDate != "2054-12" {
		t.Errorf("BaselinePayoffDate = %s, expected 2054-12", out.BaselinePayoffDate)
	}
	if out.PayoffMonths >= 360 || out.MonthsSaved != 360-out.PayoffMonths {
		t.Errorf("PayoffMonths = %d, MonthsSaved = %d", out.PayoffMonths, out.MonthsSaved)
	}
	if out.InterestSaved <= 0 || out.TotalInterest >= out.BaselineTotalInterest {
		t.Errorf("interest %.2f vs baseline %.2f, saved %.2f", out.TotalInterest, out.BaselineTotalInterest, out.InterestSaved)
	}
	if math.Abs(out.TotalPaid-(240_000+out.TotalInterest)) > 0.05 {
		t.Errorf("TotalPaid %.2f should equal principal plus interest %.2f", out.TotalPaid, out.TotalInterest)
	}
	if len(out.Schedule) != out.PayoffMonths {
		t.Errorf("schedule has %d payments, expected %d", len(out.Schedule), out.PayoffMonths)
	}
	if last := out.Schedule[len(out.Schedule)-1]; last.RemainingPrincipal != 0 || last.Date != out.PayoffDate {
		t.Errorf("last payment = %+v, expected a zero balance on %s", last, out.PayoffDate)
	}
}

func TestCalculateZeroRate(t *testing.T) {
	in := Inputs{LoanAmount: 12_000, TermMonths: 12, StartDate: "2025-01"}
	out := New(WithClock(frozen)).Calculate(in)

	if out.MonthlyPayment != 1_000 || out.TotalInterest != 0 || out.EffectiveAnnualRate != 0 {
		t.Errorf("payment %.2f interest %.2f EAR %.4f", out.MonthlyPayment, out.TotalInterest, out.EffectiveAnnualRate)
	}
	if out.PayoffDate != "2025-12" || out.MonthsSaved != 0 || out.InterestSaved != 0 {
		t.Errorf("payoff %s saved %d months %.2f", out.PayoffDate, out.MonthsSaved, out.InterestSaved)
	}
	expected := []YearSummary{{Year: 2025, Principal: 12_000, EndingBalance: 0}}
	if !reflect.DeepEqual(out.YearlySummary, expected) {
		t.Errorf("YearlySummary = %+v", out.YearlySummary)
	}
}

func TestCalculateNothingFinanced(t *testing.T) {
	in := Inputs{LoanAmount: 30_000, DownPayment: 30_000, AnnualInterestRate: 6, TermMonths: 60, StartDate: "2025-01"}
	if result := Validate(in); !result.IsValid {
		t.Fatalf("full down payment should validate: %v", result.Errors)
	}
	out := New(WithClock(frozen)).Calculate(in)

	if out.FinancedAmount != 0 || out.MonthlyPayment != 0 || out.TotalInterest != 0 || len(out.Schedule) != 0 {
		t.Errorf("unexpected outputs: %+v", out)
	}
	factors := strings.Join(out.KeyFactors, "\n")
	if !strings.Contains(factors, "nothing is financed") || strings.Contains(factors, "Paid off") {
		t.Errorf("KeyFactors = %q", out.KeyFactors)
	}
	if len(out.Recommendations) != 1 {
		t.Errorf("Recommendations = %q", out.Recommendations)
	}
}

func TestCalculateLumpSum(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(autoExample())

	if out.MonthsSaved <= 0 || out.InterestSaved <= 0 {
		t.Errorf("a lump sum should save time and interest, got %d months %.2f", out.MonthsSaved, out.InterestSaved)
	}
	var found bool
	for _, p := range out.Schedule {
		if p.Date == "2026-06" {
			found = p.ExtraPrincipal == 2_000
		}
	}
	if !found {
		t.Error("expected the 2000 lump sum on 2026-06")
	}

	if out.YearlySummary[0].Year != 2025 {
		t.Errorf("first summary year = %d, expected 2025", out.YearlySummary[0].Year)
	}
	var repaid float64
	for _, y := range out.YearlySummary {
		repaid += y.Principal + y.Extra
	}
	if math.Abs(repaid-30_000) > 0.1 {
		t.Errorf("yearly principal sums to %.2f, expected 30000", repaid)
	}
}

func TestStartDateDefaultsToClock(t *testing.T) {
	in := ExampleInputs()
	in.StartDate = ""
	out := New(WithClock(frozen)).Calculate(in)
	if out.Schedule[0].Date != "2025-03" {
		t.Errorf("first payment on %s, expected 2025-03", out.Schedule[0].Date)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	c := New(WithClock(frozen))
	if !reflect.DeepEqual(c.Calculate(autoExample()), c.Calculate(autoExample())) {
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
		{"Zero amount", func(in *Inputs) { in.LoanAmount = 0 }, false, "loanAmount"},
		{"Down payment above amount", func(in *Inputs) { in.DownPayment = 300_001 }, false, "downPayment"},
		{"Negative down payment", func(in *Inputs) { in.DownPayment = -1 }, false, "downPayment"},
		{"Rate above 50", func(in *Inputs) { in.AnnualInterestRate = 51 }, false, "annualInterestRate"},
		{"Zero term", func(in *Inputs) { in.TermMonths = 0 }, false, "termMonths"},
		{"Term above 600", func(in *Inputs) { in.TermMonths = 601 }, false, "termMonths"},
		{"Negative extra", func(in *Inputs) { in.ExtraMonthlyPayment = -1 }, false, "extraMonthlyPayment"},
		{"Bad start date", func(in *Inputs) { in.StartDate = "2025/01" }, false, "startDate"},
		{"Month out of range", func(in *Inputs) { in.StartDate = "2025-13" }, false, "startDate"},
		{"Empty start date", func(in *Inputs) { in.StartDate = "" }, true, ""},
		{"Unknown loan type", func(in *Inputs) { in.LoanType = "boat" }, false, "loanType"},
		{"Bad lump sum month", func(in *Inputs) { in.LumpSumPayments = map[string]float64{"June": 100} }, false, "lumpSumPayments"},
		{"Negative lump sum", func(in *Inputs) { in.LumpSumPayments = map[string]float64{"2026-06": -100} }, false, "lumpSumPayments"},
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

func TestValidateHighRateWarns(t *testing.T) {
	in := ExampleInputs()
	in.AnnualInterestRate = 25
	if r := ValidateField("annualInterestRate", in); !r.IsValid || r.Warning == "" {
		t.Errorf("ValidateField(annualInterestRate) = %+v, expected valid with warning", r)
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
