package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rental.yaml")
	contents := `propertyPrice: 300000
monthlyRent: 2500
financingType: cash
lumpSumPayments:
  2026-06: 2000
skills: [go, kubernetes]
`
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write inputs: %v", err)
	}

	raw, err := LoadInputs(path, nil)
	if err != nil {
		t.Fatalf("LoadInputs() error = %v", err)
	}
	if raw["propertyPrice"] != 300000 {
		t.Errorf("propertyPrice = %v (%T)", raw["propertyPrice"], raw["propertyPrice"])
	}
	if raw["financingType"] != "cash" {
		t.Errorf("financingType = %v", raw["financingType"])
	}
	lumps, ok := raw["lumpSumPayments"].(map[string]any)
	if !ok || lumps["2026-06"] != 2000 {
		t.Errorf("lumpSumPayments = %#v", raw["lumpSumPayments"])
	}
	if skills, ok := raw["skills"].([]any); !ok || len(skills) != 2 {
		t.Errorf("skills = %#v", raw["skills"])
	}
}

func TestLoadInputsFromStdin(t *testing.T) {
	raw, err := LoadInputs("-", strings.NewReader(`{"baseCurrency": "EUR", "positionSize": 1.5}`))
	if err != nil {
		t.Fatalf("LoadInputs() error = %v", err)
	}
	if raw["baseCurrency"] != "EUR" || raw["positionSize"] != 1.5 {
		t.Errorf("unexpected inputs: %v", raw)
	}
}

func TestParseInputsErrors(t *testing.T) {
	if raw, err := ParseInputs(nil); err != nil || len(raw) != 0 {
		t.Errorf("empty input should decode to an empty record, got %v, %v", raw, err)
	}
	if _, err := ParseInputs([]byte("- a\n- b\n")); err == nil {
		t.Error("a list is not an input record")
	}
	if _, err := LoadInputs(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("a missing file should be an error")
	}
}
