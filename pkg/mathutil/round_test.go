package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round away from zero", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Nearly two cents", 0.019, 0.02},
		{"Very large number", 999999999.999, 1000000000.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundToNonFinite(t *testing.T) {
	if !math.IsNaN(RoundTo(math.NaN(), 2)) {
		t.Error("RoundTo(NaN) should stay NaN")
	}
	if !math.IsInf(RoundTo(math.Inf(1), 2), 1) {
		t.Error("RoundTo(+Inf) should stay +Inf")
	}
}

func TestRoundRatio(t *testing.T) {
	if got := RoundRatio(0.123456); got != 0.1235 {
		t.Errorf("RoundRatio() = %v, expected 0.1235", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{"Below range", -1, 0},
		{"Inside range", 0.5, 0.5},
		{"Above range", 2, 1},
		{"At lower bound", 0, 0},
		{"At upper bound", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, 0, 1); got != tt.expected {
				t.Errorf("Clamp(%v) = %v, expected %v", tt.val, got, tt.expected)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {5, 5}, {10, 10}, {11, 10}, {42, 10},
	}

	for _, tt := range tests {
		if got := ClampScore(tt.input); got != tt.expected {
			t.Errorf("ClampScore(%d) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		fallback float64
		expected float64
	}{
		{"Normal division", 10, 4, 0, 2.5},
		{"Zero divisor", 10, 0, -1, -1},
		{"Zero numerator", 0, 5, -1, 0},
		{"Negative divisor", 10, -5, 0, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDivide(tt.a, tt.b, tt.fallback); got != tt.expected {
				t.Errorf("SafeDivide(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"More than 100%", 150.0, 100.0, 150.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Negative total", 50.0, -100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"50% of 100", 100.0, 50.0, 50.0},
		{"150% of value", 100.0, 150.0, 150.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Negative percentage", 100.0, -50.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestIsZeroBoundaries(t *testing.T) {
	tolerance := 0.01

	if !IsZero(tolerance) {
		t.Errorf("Value exactly at tolerance should be considered zero")
	}
	if !IsZero(-tolerance) {
		t.Errorf("Negative value exactly at tolerance should be considered zero")
	}
	if IsZero(tolerance + 0.001) {
		t.Errorf("Value just outside tolerance should not be considered zero")
	}
}
