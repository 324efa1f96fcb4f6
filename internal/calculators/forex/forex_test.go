package forex

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
)

var frozen = datetime.FixedClock(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC))

func TestPipSizeAndConversion(t *testing.T) {
	tests := []struct {
		name         string
		pair         string
		account      string
		price        float64
		rate         float64
		expectedPip  float64
		expectedConv float64
	}{
		{"Quote is account currency", "EUR/USD", "USD", 1.1, 0, 0.0001, 1},
		{"Base is account currency", "USD/CHF", "USD", 0.8, 0, 0.0001, 1.25},
		{"Cross pair uses conversion rate", "EUR/GBP", "USD", 0.85, 1.27, 0.0001, 1.27},
		{"Yen quote", "USD/JPY", "USD", 150, 0, 0.01, 1.0 / 150},
		{"Compact pair", "gbpjpy", "USD", 190, 0.0067, 0.01, 0.0067},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, quote, ok := ParsePair(tt.pair)
			if !ok {
				t.Fatalf("ParsePair(%q) failed", tt.pair)
			}
			if pip := PipSize(quote); pip != tt.expectedPip {
				t.Errorf("PipSize(%s) = %v, expected %v", quote, pip, tt.expectedPip)
			}
			conv := QuoteConversion(base, quote, tt.account, tt.price, tt.rate)
			if math.Abs(conv-tt.expectedConv) > 1e-12 {
				t.Errorf("QuoteConversion = %v, expected %v", conv, tt.expectedConv)
			}
		})
	}
}

func TestParsePairRejects(t *testing.T) {
	for _, pair := range []string{"", "EUR", "EUR/EUR", "EURO/USD", "EUR-USD"} {
		if _, _, ok := ParsePair(pair); ok {
			t.Errorf("ParsePair(%q) should fail", pair)
		}
	}
}

func TestCalculateLongEURUSD(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(ExampleInputs())

	tests := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"Units", out.Units, 40_000, 1e-9},
		{"Pip value per lot", out.PipValuePerLot, 10, 1e-9},
		{"Pip value", out.PipValue, 4, 1e-9},
		{"Margin required", out.MarginRequired, 1466.67, 0.005},
		{"Stop loss pips", out.StopLossPips, 50, 1e-9},
		{"Take profit pips", out.TakeProfitPips, 100, 1e-9},
		{"Potential loss", out.PotentialLoss, 200, 0.005},
		{"Potential profit", out.PotentialProfit, 400, 0.005},
		{"Risk reward", out.RiskRewardRatio, 2, 1e-4},
		{"Account risk", out.AccountRiskPercent, 2, 1e-4},
		{"Recommended lots", out.RecommendedLotSize, 0.4, 1e-9},
		{"Total cost", out.TotalCost, 9.2, 0.005},
		{"Break-even price", out.BreakEvenPrice, 1.10023, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > tt.tolerance {
				t.Errorf("got %.6f, expected %.6f", tt.got, tt.expected)
			}
		})
	}

	if out.ProbabilityHitStop <= out.ProbabilityHitTarget {
		t.Errorf("the nearer stop should be more likely to be touched: stop %.2f target %.2f", out.ProbabilityHitStop, out.ProbabilityHitTarget)
	}
	if out.ProbabilityHitTarget <= 0 || out.ProbabilityHitTarget >= 100 {
		t.Errorf("ProbabilityHitTarget %.2f out of (0, 100)", out.ProbabilityHitTarget)
	}
	if out.TradeDate != "2025-03-10" || out.ExitByDate != "2025-03-15" {
		t.Errorf("dates = %s / %s", out.TradeDate, out.ExitByDate)
	}
}

func TestShortBreakEvenIsBelowEntry(t *testing.T) {
	in := yenExample()
	out := New(WithClock(frozen)).Calculate(in)
	if out.BreakEvenPrice >= in.EntryPrice {
		t.Errorf("short break-even %.4f should be below entry %.4f", out.BreakEvenPrice, in.EntryPrice)
	}
	if out.PipSize != 0.01 {
		t.Errorf("PipSize = %v, expected 0.01", out.PipSize)
	}
	// 0.5 lots of GBP/JPY: 50,000 * 0.01 JPY per pip * 0.0067 USD per JPY.
	if math.Abs(out.PipValue-3.35) > 1e-4 {
		t.Errorf("PipValue = %.4f, expected 3.35", out.PipValue)
	}
}

func TestScenarioProbabilitiesSumToHundred(t *testing.T) {
	out := New(WithClock(frozen)).Calculate(ExampleInputs())
	var total float64
	for _, s := range out.Scenarios {
		total += s.Probability
	}
	if math.Abs(total-100) > 0.01 {
		t.Errorf("scenario probabilities sum to %.4f", total)
	}
	if out.ConfidenceLevel < 1 || out.ConfidenceLevel > 10 {
		t.Errorf("ConfidenceLevel %d out of range", out.ConfidenceLevel)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	c := New(WithClock(frozen))
	if !reflect.DeepEqual(c.Calculate(yenExample()), c.Calculate(yenExample())) {
		t.Error("Calculate returned different outputs for identical inputs")
	}
}

func TestValidate(t *testing.T) {
	c := New(WithClock(frozen))
	tests := []struct {
		name        string
		base        func() Inputs
		mutate      func(*Inputs)
		expectValid bool
		field       string
	}{
		{"Long example valid", ExampleInputs, func(in *Inputs) {}, true, ""},
		{"Short example valid", yenExample, func(in *Inputs) {}, true, ""},
		{"Long stop above entry", ExampleInputs, func(in *Inputs) { in.StopLossPrice = 1.1050 }, false, "stopLossPrice"},
		{"Long target below entry", ExampleInputs, func(in *Inputs) { in.TakeProfitPrice = 1.09 }, false, "takeProfitPrice"},
		{"Short stop below entry", yenExample, func(in *Inputs) { in.StopLossPrice = 189 }, false, "stopLossPrice"},
		{"Cross pair without conversion", yenExample, func(in *Inputs) { in.ConversionRate = 0 }, false, "conversionRate"},
		{"Bad pair", ExampleInputs, func(in *Inputs) { in.CurrencyPair = "EURUSDX" }, false, "currencyPair"},
		{"Lot too small", ExampleInputs, func(in *Inputs) { in.LotSize = 0.001 }, false, "lotSize"},
		{"Leverage zero", ExampleInputs, func(in *Inputs) { in.Leverage = 0 }, false, "leverage"},
		{"Risk too small", ExampleInputs, func(in *Inputs) { in.RiskPercentage = 0.05 }, false, "riskPercentage"},
		{"Unknown position", ExampleInputs, func(in *Inputs) { in.PositionType = "flat" }, false, "positionType"},
		{"Holding too long", ExampleInputs, func(in *Inputs) { in.HoldingPeriodDays = 400 }, false, "holdingPeriodDays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.base()
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

func TestValidateLeverageWarning(t *testing.T) {
	in := ExampleInputs()
	in.Leverage = 200
	r := ValidateField("leverage", in)
	if !r.IsValid || r.Warning == "" {
		t.Errorf("ValidateField(leverage) = %+v, expected valid with warning", r)
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
