package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

var frozen = datetime.FixedClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

func flatCompany() Inputs {
	return Inputs{
		Revenue:            1000,
		FreeCashFlow:       100,
		RevenueGrowthRate:  0,
		ProjectionYears:    5,
		DiscountRate:       10,
		TerminalGrowthRate: 0,
		SharesOutstanding:  10,
	}
}

func TestDCFOfFlatPerpetuity(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(flatCompany())

	// A flat perpetuity of 100 at 10% is worth 1000 regardless of the horizon split.
	if math.Abs(out.EnterpriseValue-1000) > 0.01 {
		t.Errorf("EnterpriseValue = %.4f, expected 1000", out.EnterpriseValue)
	}
	if math.Abs(out.SumPVCashFlows-379.08) > 0.01 {
		t.Errorf("SumPVCashFlows = %.4f, expected 379.08", out.SumPVCashFlows)
	}
	if math.Abs(out.ValuePerShare-100) > 0.01 {
		t.Errorf("ValuePerShare = %.4f, expected 100", out.ValuePerShare)
	}
	if len(out.Projections) != 5 || out.Projections[0].Year != 2026 {
		t.Errorf("unexpected projections %+v", out.Projections)
	}
}

func TestWACCDerivedWhenDiscountRateIsZero(t *testing.T) {
	in := ExampleInputs()
	out := New(WithClock(frozen)).Calculate(in)

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Cost of equity", out.CostOfEquity, 10.6},
		{"After-tax cost of debt", out.AfterTaxCostOfDebt, 4.5},
		{"WACC", out.WACC, 9.38},
		{"Discount rate used", out.DiscountRateUsed, 9.38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-4 {
				t.Errorf("got %.4f, expected %.4f", tt.got, tt.expected)
			}
		})
	}
}

func TestEquityBridgeAndMultiples(t *testing.T) {
	in := ExampleInputs()
	out := New(WithClock(frozen)).Calculate(in)

	netDebt := in.TotalDebt - in.CashAndEquivalents
	if math.Abs(out.EquityValue-(out.EnterpriseValue-netDebt)) > 0.02 {
		t.Errorf("EquityValue %.2f does not equal EV %.2f less net debt %.2f", out.EquityValue, out.EnterpriseValue, netDebt)
	}
	if math.Abs(out.EvToEbitdaValuation-(12_000_000*12-netDebt)) > 0.01 {
		t.Errorf("EvToEbitdaValuation = %.2f", out.EvToEbitdaValuation)
	}
	if math.Abs(out.PeValuation-140_000_000) > 0.01 {
		t.Errorf("PeValuation = %.2f", out.PeValuation)
	}
	if out.BlendedValuation < out.ValuationLow || out.BlendedValuation > out.ValuationHigh {
		t.Errorf("blended %.2f outside range [%.2f, %.2f]", out.BlendedValuation, out.ValuationLow, out.ValuationHigh)
	}
	if out.ConfidenceLevel < 1 || out.ConfidenceLevel > 10 {
		t.Errorf("ConfidenceLevel %d out of range", out.ConfidenceLevel)
	}
}

func TestSensitivityGrid(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(flatCompany())
	if len(out.Sensitivity) != 9 {
		t.Fatalf("expected 9 sensitivity points, got %d", len(out.Sensitivity))
	}
	center := out.Sensitivity[4]
	if center.DiscountRate != 10 || center.TerminalGrowth != 0 {
		t.Fatalf("unexpected center point %+v", center)
	}
	if math.Abs(center.EnterpriseValue-out.EnterpriseValue) > 0.01 {
		t.Errorf("center EV %.2f differs from base EV %.2f", center.EnterpriseValue, out.EnterpriseValue)
	}
	// Higher discount rates lower the value.
	if out.Sensitivity[7].EnterpriseValue >= center.EnterpriseValue {
		t.Errorf("EV at 11%% (%.2f) should be below EV at 10%% (%.2f)", out.Sensitivity[7].EnterpriseValue, center.EnterpriseValue)
	}
}

func TestScenariosAreOrdered(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(ExampleInputs())
	if len(out.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(out.Scenarios))
	}
	bull, base, bear := out.Scenarios[0], out.Scenarios[1], out.Scenarios[2]
	if !(bull.Value > base.Value && base.Value > bear.Value) {
		t.Errorf("scenarios not ordered: %v / %v / %v", bull.Value, base.Value, bear.Value)
	}
	if math.Abs(base.Value-out.EquityValue) > 0.02 {
		t.Errorf("base scenario %.2f differs from equity value %.2f", base.Value, out.EquityValue)
	}
}

func TestValidate(t *testing.T) {
	c := New(WithClock(frozen))
	tests := []struct {
		name        string
		mutate      func(*Inputs)
		expectValid bool
		field       string
	}{
		{"Example is valid", func(in *Inputs) {}, true, ""},
		{"Zero revenue", func(in *Inputs) { in.Revenue = 0 }, false, "revenue"},
		{"Too many years", func(in *Inputs) { in.ProjectionYears = 31 }, false, "projectionYears"},
		{"Default years", func(in *Inputs) { in.ProjectionYears = 0 }, true, ""},
		{"Discount equals terminal growth", func(in *Inputs) { in.DiscountRate = 3; in.TerminalGrowthRate = 3 }, false, "discountRate"},
		{"Growth below floor", func(in *Inputs) { in.RevenueGrowthRate = -60 }, false, "revenueGrowthRate"},
		{"Zero shares", func(in *Inputs) { in.SharesOutstanding = 0 }, false, "sharesOutstanding"},
		{"Negative multiple", func(in *Inputs) { in.IndustryPeRatio = -1 }, false, "industryPeRatio"},
		{"Debt ratio above 100", func(in *Inputs) { in.DebtRatio = 120 }, false, "debtRatio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ExampleInputs()
			tt.mutate(&in)
			result := c.Validate(in)
			if result.IsValid != tt.expectValid {
				t.Errorf("IsValid = %v, expected %v (errors: %v)", result.IsValid, tt.expectValid, result.Errors)
			}
			if tt.field != "" && result.Errors[tt.field] == "" {
				t.Errorf("expected error on %s, got %v", tt.field, result.Errors)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	in := ExampleInputs()
	in.RevenueGrowthRate = 80
	in.TerminalGrowthRate = 5
	result := Validate(in)
	if !result.IsValid {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Warnings["revenueGrowthRate"] == "" || result.Warnings["terminalGrowthRate"] == "" {
		t.Errorf("expected growth warnings, got %v", result.Warnings)
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
