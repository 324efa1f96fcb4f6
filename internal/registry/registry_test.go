package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

type doublerInputs struct {
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
	Panic  bool    `json:"panic"`
}

type doublerOutputs struct {
	Doubled float64 `json:"doubled"`
}

var doublerRules = validation.Table[doublerInputs]{
	validation.Positive("amount", func(in doublerInputs) float64 { return in.Amount }, "Amount must be greater than 0"),
	validation.Above("amount", func(in doublerInputs) float64 { return in.Amount }, 1000, "Amount seems unusually high"),
}

func newDoubler(id, category string) Calculator {
	return Bind(Module[doublerInputs, doublerOutputs]{
		Descriptor: Descriptor{
			ID:       id,
			Title:    "Doubler",
			Category: category,
			Inputs: []Field{
				Currency("amount", "Amount").Require(),
				Text("label", "Label"),
				{Name: "panic", Label: "Panic", Type: FieldBoolean},
			},
			Examples: []Example{
				NewExample("ten", "Doubles ten", doublerInputs{Amount: 10}),
			},
		},
		Calculate: func(in doublerInputs) doublerOutputs {
			if in.Panic {
				panic("boom")
			}
			return doublerOutputs{Doubled: in.Amount * 2}
		},
		Validate:      doublerRules.Validate,
		ValidateField: doublerRules.ValidateField,
	})
}

func TestRegisterRejectsDuplicatesAndEmptyIDs(t *testing.T) {
	r := New(zap.NewNop())
	if err := r.Register(newDoubler("doubler", "test")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(newDoubler("doubler", "test")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := r.Register(newDoubler("", "test")); err == nil {
		t.Error("expected error for empty id")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", r.Len())
	}
}

func TestGetUnknown(t *testing.T) {
	r := New(nil)
	if _, err := r.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndCategories(t *testing.T) {
	r := New(nil)
	for _, c := range []Calculator{
		newDoubler("zeta", "investing"),
		newDoubler("alpha", "investing"),
		newDoubler("beta", "lending"),
	} {
		if err := r.Register(c); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	list := r.List()
	expectedOrder := []string{"alpha", "zeta", "beta"}
	for i, id := range expectedOrder {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %s, expected %s", i, list[i].ID, id)
		}
	}

	categories := r.Categories()
	if len(categories) != 2 {
		t.Fatalf("Categories() = %v, expected 2 groups", categories)
	}
	if categories[0].Name != "investing" || len(categories[0].Calculators) != 2 {
		t.Errorf("unexpected first category %+v", categories[0])
	}
}

func TestEvaluate(t *testing.T) {
	calc := newDoubler("doubler", "test")

	eval, err := calc.Evaluate(map[string]any{"amount": "21"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	out, ok := eval.Outputs.(doublerOutputs)
	if !ok || out.Doubled != 42 {
		t.Errorf("Outputs = %#v, expected Doubled=42", eval.Outputs)
	}

	eval, err = calc.Evaluate(map[string]any{"amount": 0})
	if !errors.Is(err, ErrInvalidInputs) {
		t.Errorf("expected ErrInvalidInputs, got %v", err)
	}
	if eval.Validation.Errors["amount"] == "" {
		t.Errorf("expected amount error, got %+v", eval.Validation)
	}

	_, err = calc.Evaluate(map[string]any{"amount": "lots"})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}

	_, err = calc.Evaluate(map[string]any{"amount": 1, "unknown": 2})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode for unknown key, got %v", err)
	}
}

func TestEvaluateRecoversPanics(t *testing.T) {
	calc := newDoubler("doubler", "test")
	eval, err := calc.Evaluate(map[string]any{"amount": 1, "panic": true})
	if !errors.Is(err, ErrCalculation) {
		t.Fatalf("expected ErrCalculation, got %v", err)
	}
	if err.Error() != "error calculating Doubler: calculation failed" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if eval.Outputs != nil {
		t.Errorf("expected no outputs, got %#v", eval.Outputs)
	}
}

func TestValidateField(t *testing.T) {
	calc := newDoubler("doubler", "test")
	raw := map[string]any{"amount": 10}

	tests := []struct {
		name        string
		field       string
		value       any
		expectValid bool
		expectWarn  bool
	}{
		{"Valid amount", "amount", 50, true, false},
		{"Zero amount", "amount", 0, false, false},
		{"High amount warns", "amount", 5000, true, true},
		{"Text amount", "amount", "abc", false, false},
		{"Unknown field", "nonsense", "x", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.ValidateField(tt.field, tt.value, raw)
			if err != nil {
				t.Fatalf("ValidateField failed: %v", err)
			}
			if result.IsValid != tt.expectValid {
				t.Errorf("IsValid = %v, expected %v (%+v)", result.IsValid, tt.expectValid, result)
			}
			if (result.Warning != "") != tt.expectWarn {
				t.Errorf("Warning = %q, expectWarn %v", result.Warning, tt.expectWarn)
			}
		})
	}
	if raw["amount"] != 10 {
		t.Error("ValidateField must not modify the caller's map")
	}
}

func TestFingerprintIgnoresRepresentation(t *testing.T) {
	calc := newDoubler("doubler", "test")
	a, err := calc.Fingerprint(map[string]any{"amount": 5, "label": "x"})
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	b, err := calc.Fingerprint(map[string]any{"label": "x", "amount": "5"})
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	c, err := calc.Fingerprint(map[string]any{"amount": 6, "label": "x"})
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if a != b {
		t.Error("equivalent inputs should share a fingerprint")
	}
	if a == c {
		t.Error("different inputs should not share a fingerprint")
	}
}

func TestRunExamples(t *testing.T) {
	r := New(zap.NewNop())
	_ = r.Register(newDoubler("one", "test"))
	_ = r.Register(newDoubler("two", "test"))

	runs, err := r.RunExamples(context.Background())
	if err != nil {
		t.Fatalf("RunExamples failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Calculator != "one" || runs[1].Calculator != "two" {
		t.Errorf("runs out of order: %+v", runs)
	}
	if out := runs[0].Evaluation.Outputs.(doublerOutputs); out.Doubled != 20 {
		t.Errorf("Doubled = %f, expected 20", out.Doubled)
	}

	if _, err := r.RunExamples(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToRaw(t *testing.T) {
	raw, err := ToRaw(doublerInputs{Amount: 3, Label: "three"})
	if err != nil {
		t.Fatalf("ToRaw failed: %v", err)
	}
	if raw["amount"] != 3.0 || raw["label"] != "three" {
		t.Errorf("ToRaw = %v", raw)
	}
}
