package mathutil

import (
	"math"
	"testing"
)

func TestBisect(t *testing.T) {
	tests := []struct {
		name     string
		f        func(float64) float64
		lo, hi   float64
		expected float64
	}{
		{"Square root of two", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2},
		{"Decreasing function", func(x float64) float64 { return 1 - x }, -5, 5, 1},
		{"Root at endpoint", func(x float64) float64 { return x }, 0, 1, 0},
		{"No sign change returns closer end", func(x float64) float64 { return x + 10 }, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bisect(tt.f, tt.lo, tt.hi, 1e-12, 200)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Bisect = %.12f, expected %.12f", got, tt.expected)
			}
		})
	}
}
