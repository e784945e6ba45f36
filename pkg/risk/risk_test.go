package risk_test

import (
	"testing"

	"github.com/contractiq/console/pkg/risk"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  risk.Level
	}{
		{"exact high threshold", 60, risk.LevelHigh},
		{"just below high", 59, risk.LevelMedium},
		{"exact medium threshold", 30, risk.LevelMedium},
		{"just below medium", 29, risk.LevelLow},
		{"zero", 0, risk.LevelLow},
		{"top of range", 100, risk.LevelHigh},
		{"below range clamps low", -5, risk.LevelLow},
		{"above range clamps high", 120, risk.LevelHigh},
		{"fractional boundary", 59.99, risk.LevelMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := risk.Classify(tt.score); got.Level != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.score, got.Level, tt.want)
			}
		})
	}
}

func TestClassifyTierFields(t *testing.T) {
	tier := risk.Classify(75)
	if tier.Label == "" {
		t.Error("tier label is empty")
	}
	if tier.Color == "" {
		t.Error("tier color is empty")
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name  string
		level risk.Level
		want  risk.Level
	}{
		{"high", risk.LevelHigh, risk.LevelHigh},
		{"not found", risk.LevelNotFound, risk.LevelNotFound},
		{"unknown falls back", risk.Level("SEVERE"), risk.LevelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := risk.TierFor(tt.level); got.Level != tt.want {
				t.Errorf("TierFor(%s) = %s, want %s", tt.level, got.Level, tt.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	ordered := []risk.Level{
		risk.LevelHigh,
		risk.LevelMedium,
		risk.LevelLow,
		risk.LevelNotFound,
	}

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("%s should rank before %s", ordered[i-1], ordered[i])
		}
	}

	if risk.Level("bogus").Rank() <= risk.LevelNotFound.Rank() {
		t.Error("unknown level should rank after NOT_FOUND")
	}
}

func TestValid(t *testing.T) {
	if !risk.LevelMedium.Valid() {
		t.Error("MEDIUM should be valid")
	}
	if risk.Level("").Valid() {
		t.Error("empty level should be invalid")
	}
}
