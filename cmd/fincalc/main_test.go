package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/registry"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fincalc.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	base := []string{"--config", writeConfig(t, "cache:\n  backend: none\n"), "--log-level", "error"}
	root.SetArgs(append(base, args...))
	err := root.ExecuteContext(ctx)
	return stdout.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, context.Background(), "", args...)
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, id := range []string{"bond-trading", "business-valuation", "forex-trading", "hedge-fund-analytics", "rental-yield", "developer-salary", "amortized-loan"} {
		if !strings.Contains(out, id) {
			t.Errorf("list output missing %s", id)
		}
	}

	out, err = run(t, "list", "--category", "lending", "-o", "csv")
	if err != nil {
		t.Fatalf("list --category failed: %v", err)
	}
	if !strings.Contains(out, "amortized-loan") || strings.Contains(out, "bond-trading") {
		t.Errorf("unexpected filtered list:\n%s", out)
	}
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "rental-yield")
	if err != nil {
		t.Fatalf("describe failed: %v", err)
	}
	if !strings.Contains(out, "Inputs:") || !strings.Contains(out, "propertyPrice") {
		t.Errorf("unexpected describe output:\n%s", out)
	}

	if _, err := run(t, "describe", "nope"); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("error = %v, expected ErrNotFound", err)
	}
}

func TestRunExample(t *testing.T) {
	out, err := run(t, "run", "rental-yield", "--example", "cash-purchase", "-o", "json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var res struct {
		Calculator string         `json:"calculator"`
		Outputs    map[string]any `json:"outputs"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("run output is not JSON: %v\n%s", err, out)
	}
	if res.Calculator != "rental-yield" || res.Outputs["grossRentalYield"] != 10.0 {
		t.Errorf("unexpected result: %+v", res)
	}

	if _, err := run(t, "run", "rental-yield", "--example", "missing"); err == nil {
		t.Error("an unknown example should be an error")
	}
	if _, err := run(t, "run", "rental-yield"); err == nil {
		t.Error("run without inputs should be an error")
	}
}

func TestRunFromStdin(t *testing.T) {
	inputs := `propertyPrice: 300000
monthlyRent: 2500
vacancyRate: 5
annualPropertyTaxes: 3600
financingType: cash
`
	out, err := execute(t, context.Background(), inputs, "run", "rental-yield", "-i", "-", "-o", "csv")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "grossRentalYield,10") {
		t.Errorf("unexpected csv output:\n%s", out)
	}
}

func TestRunInvalidInputs(t *testing.T) {
	out, err := execute(t, context.Background(), "propertyPrice: 0\nmonthlyRent: 2500\n", "run", "rental-yield", "-i", "-")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("error = %v, expected errInvalid", err)
	}
	if !strings.Contains(out, "propertyPrice") {
		t.Errorf("validation output should name the field:\n%s", out)
	}
}

func TestValidateAndCheck(t *testing.T) {
	if _, err := run(t, "validate", "rental-yield", "--example", "mortgaged"); err != nil {
		t.Errorf("validate failed: %v", err)
	}

	out, err := run(t, "check", "rental-yield", "vacancyRate", "150")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("error = %v, expected errInvalid", err)
	}
	if !strings.Contains(out, "vacancyRate: invalid") {
		t.Errorf("unexpected check output:\n%s", out)
	}

	out, err = run(t, "check", "rental-yield", "financingType", "cash", "--example", "cash-purchase", "-o", "json")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, `"isValid": true`) {
		t.Errorf("unexpected check output:\n%s", out)
	}
}

func TestExamples(t *testing.T) {
	out, err := run(t, "examples")
	if err != nil {
		t.Fatalf("examples failed: %v\n%s", err, out)
	}
	if strings.Contains(out, "FAILED") || !strings.Contains(out, "amortized-loan / auto-lump-sum: ok") {
		t.Errorf("unexpected examples output:\n%s", out)
	}
}

func TestVersionAndFlags(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "fincalc dev") {
		t.Errorf("unexpected version output:\n%s", out)
	}

	if _, err := run(t, "list", "-o", "xml"); err == nil {
		t.Error("an unknown output format should be an error")
	}
}

func TestServeStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := execute(t, ctx, "", "serve", "--address", "127.0.0.1:0"); err != nil {
		t.Errorf("serve returned %v", err)
	}
}
