package insights

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAdviceAppends(t *testing.T) {
	advice := NewAdvice()
	advice.Factor("Yield of %.2f%%", 5.0)
	advice.Risk("Duration of %.1f years", 7.25)
	advice.Opportunity("Spread pickup")
	advice.Recommend("Hold to maturity")

	if advice.Len() != 4 {
		t.Fatalf("Len() = %d, expected 4", advice.Len())
	}
	if advice.KeyFactors[0] != "Yield of 5.00%" {
		t.Errorf("KeyFactors[0] = %q", advice.KeyFactors[0])
	}
	if advice.Risks[0] != "Duration of 7.2 years" && advice.Risks[0] != "Duration of 7.3 years" {
		t.Errorf("Risks[0] = %q", advice.Risks[0])
	}
}

func TestNewAdviceRendersEmptyArrays(t *testing.T) {
	data, err := json.Marshal(NewAdvice())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("expected empty arrays, got %s", data)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{1, LevelLow},
		{3, LevelLow},
		{4, LevelModerate},
		{6, LevelModerate},
		{7, LevelHigh},
		{10, LevelHigh},
	}
	for _, tt := range tests {
		if got := Level(tt.score); got != tt.expected {
			t.Errorf("Level(%d) = %s, expected %s", tt.score, got, tt.expected)
		}
	}
}
