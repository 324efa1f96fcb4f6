package mathutil

import (
	"math"
	"testing"
)

func TestDiscountFactor(t *testing.T) {
	if got := DiscountFactor(0.10, 1); math.Abs(got-0.909091) > 1e-6 {
		t.Errorf("DiscountFactor(10%%, 1) = %v", got)
	}
	if got := DiscountFactor(0.05, 0); got != 1 {
		t.Errorf("DiscountFactor with zero periods = %v, expected 1", got)
	}
}

func TestPresentAndFutureValueAreInverse(t *testing.T) {
	fv := FutureValue(1000, 0.07, 10)
	if pv := PresentValue(fv, 0.07, 10); math.Abs(pv-1000) > 1e-9 {
		t.Errorf("PresentValue(FutureValue(1000)) = %v", pv)
	}
}

func TestGordonGrowth(t *testing.T) {
	tests := []struct {
		name     string
		cf, r, g float64
		expected float64
	}{
		{"No growth perpetuity", 100, 0.10, 0, 1000},
		{"Growing perpetuity", 100, 0.10, 0.02, 1275},
		{"Growth equals discount", 100, 0.05, 0.05, 0},
		{"Growth above discount", 100, 0.05, 0.06, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GordonGrowth(tt.cf, tt.r, tt.g); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("GordonGrowth() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
