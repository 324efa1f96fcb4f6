package validation

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

type quote struct {
	Bid       float64
	Ask       float64
	Liquidity float64
	Side      string
	Settle    string
	Margin    bool
	Leverage  float64
}

var quoteRules = Table[quote]{
	Positive("bid", func(q quote) float64 { return q.Bid }, "Bid must be greater than 0"),
	Positive("ask", func(q quote) float64 { return q.Ask }, "Ask must be greater than 0"),
	Check("bid", func(q quote) bool { return q.Bid > q.Ask }, "Bid must not exceed ask"),
	Range("liquidity", func(q quote) float64 { return q.Liquidity }, 1, 10, "Liquidity must be between 1 and 10"),
	Above("liquidity", func(q quote) float64 { return q.Liquidity }, 9, "Liquidity seems unusually high"),
	OneOf("side", func(q quote) string { return q.Side }, []string{"buy", "sell"}, ""),
	Date("settle", func(q quote) string { return q.Settle }, constants.DateLayout, true, "Settle must be YYYY-MM-DD"),
	Range("leverage", func(q quote) float64 { return q.Leverage }, 1, 50, "Leverage must be between 1 and 50").
		If(func(q quote) bool { return q.Margin }),
}

func validQuote() quote {
	return quote{Bid: 99, Ask: 100, Liquidity: 5, Side: "buy"}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*quote)
		expectValid   bool
		expectError   string
		expectWarning string
	}{
		{"Valid record", func(q *quote) {}, true, "", ""},
		{"Bid above ask", func(q *quote) { q.Bid = 101 }, false, "bid", ""},
		{"Bid equal to ask", func(q *quote) { q.Bid = 100 }, true, "", ""},
		{"Liquidity zero", func(q *quote) { q.Liquidity = 0 }, false, "liquidity", ""},
		{"Liquidity one", func(q *quote) { q.Liquidity = 1 }, true, "", ""},
		{"Liquidity ten warns", func(q *quote) { q.Liquidity = 10 }, true, "", "liquidity"},
		{"Liquidity eleven", func(q *quote) { q.Liquidity = 11 }, false, "liquidity", "liquidity"},
		{"Side case-insensitive", func(q *quote) { q.Side = "SELL" }, true, "", ""},
		{"Side unknown", func(q *quote) { q.Side = "hold" }, false, "side", ""},
		{"Optional date empty", func(q *quote) { q.Settle = "" }, true, "", ""},
		{"Bad date", func(q *quote) { q.Settle = "2025/01/01" }, false, "settle", ""},
		{"Conditional rule skipped", func(q *quote) { q.Leverage = 500 }, true, "", ""},
		{"Conditional rule applied", func(q *quote) { q.Margin = true; q.Leverage = 500 }, false, "leverage", ""},
		{"Infinite ask", func(q *quote) { q.Ask = math.Inf(1) }, false, "ask", ""},
		{"NaN liquidity", func(q *quote) { q.Liquidity = math.NaN() }, false, "liquidity", ""},
		{"Negative infinite liquidity", func(q *quote) { q.Liquidity = math.Inf(-1) }, false, "liquidity", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuote()
			tt.mutate(&q)
			result := quoteRules.Validate(q)

			if result.IsValid != tt.expectValid {
				t.Errorf("IsValid = %v, expected %v (errors: %v)", result.IsValid, tt.expectValid, result.Errors)
			}
			if tt.expectError != "" {
				if _, ok := result.Errors[tt.expectError]; !ok {
					t.Errorf("expected error on %s, got %v", tt.expectError, result.Errors)
				}
			}
			if tt.expectWarning != "" {
				if _, ok := result.Warnings[tt.expectWarning]; !ok {
					t.Errorf("expected warning on %s, got %v", tt.expectWarning, result.Warnings)
				}
			}
		})
	}
}

func TestNumericRulesRejectNonFinite(t *testing.T) {
	get := func(v float64) float64 { return v }
	rules := map[string]Rule[float64]{
		"Positive":    Positive("v", get, "positive"),
		"NonNegative": NonNegative("v", get, "non-negative"),
		"Range":       Range("v", get, math.Inf(-1), math.Inf(1), "range"),
	}
	values := []float64{math.Inf(1), math.Inf(-1), math.NaN()}

	for name, rule := range rules {
		for _, v := range values {
			if result := (Table[float64]{rule}).Validate(v); result.IsValid {
				t.Errorf("%s accepted %v", name, v)
			}
		}
		if result := (Table[float64]{rule}).Validate(1); !result.IsValid {
			t.Errorf("%s rejected 1: %v", name, result.Errors)
		}
	}
}

func TestTableValidateKeepsFirstMessage(t *testing.T) {
	q := validQuote()
	q.Bid = -1
	result := quoteRules.Validate(q)
	if result.Errors["bid"] != "Bid must be greater than 0" {
		t.Errorf("expected the first failing rule's message, got %q", result.Errors["bid"])
	}
}

func TestTableValidateField(t *testing.T) {
	q := validQuote()
	q.Bid = 150

	field := quoteRules.ValidateField("bid", q)
	if field.IsValid || field.Error != "Bid must not exceed ask" {
		t.Errorf("ValidateField(bid) = %+v", field)
	}

	field = quoteRules.ValidateField("ask", q)
	if !field.IsValid {
		t.Errorf("ValidateField(ask) should only run ask rules, got %+v", field)
	}

	q.Liquidity = 10
	field = quoteRules.ValidateField("liquidity", q)
	if !field.IsValid || field.Warning == "" {
		t.Errorf("ValidateField(liquidity) = %+v, expected valid with warning", field)
	}

	field = quoteRules.ValidateField("unknown", q)
	if !field.IsValid || field.Error != "" || field.Warning != "" {
		t.Errorf("ValidateField(unknown) = %+v, expected clean pass", field)
	}
}

func TestTableFields(t *testing.T) {
	fields := quoteRules.Fields()
	expected := []string{"bid", "ask", "liquidity", "side", "settle", "leverage"}
	if len(fields) != len(expected) {
		t.Fatalf("Fields() = %v, expected %v", fields, expected)
	}
	for i := range expected {
		if fields[i] != expected[i] {
			t.Errorf("Fields()[%d] = %s, expected %s", i, fields[i], expected[i])
		}
	}
}
