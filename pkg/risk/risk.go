// Package risk classifies numeric risk scores into display tiers.
// It provides the banding rules shared by the dashboard and chat surfaces.
package risk

// Level identifies a risk tier for a clause finding or an overall contract.
type Level string

// Risk levels assigned by the extraction service or derived from a score.
const (
	LevelHigh     Level = "HIGH"
	LevelMedium   Level = "MEDIUM"
	LevelLow      Level = "LOW"
	LevelNotFound Level = "NOT_FOUND"
)

// Band thresholds over the [0,100] score range. Membership is tested from
// the highest band down with inclusive lower bounds, so boundary scores
// land in the higher band.
const (
	ThresholdHigh   = 60.0
	ThresholdMedium = 30.0
)

// Tier pairs a risk level with its display label and color.
type Tier struct {
	Level Level  `json:"level"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var tiers = map[Level]Tier{
	LevelHigh:     {Level: LevelHigh, Label: "High Risk", Color: "#ef4444"},
	LevelMedium:   {Level: LevelMedium, Label: "Medium Risk", Color: "#f59e0b"},
	LevelLow:      {Level: LevelLow, Label: "Low Risk", Color: "#10b981"},
	LevelNotFound: {Level: LevelNotFound, Label: "Not Found", Color: "#9ca3af"},
}

// Classify maps a score to its tier. Total over all inputs: scores below
// the range classify LOW, above it HIGH. Never produces NOT_FOUND, which
// is assigned directly to missing clauses rather than derived.
func Classify(score float64) Tier {
	switch {
	case score >= ThresholdHigh:
		return tiers[LevelHigh]
	case score >= ThresholdMedium:
		return tiers[LevelMedium]
	default:
		return tiers[LevelLow]
	}
}

// TierFor returns the display tier for a level assigned upstream.
// Unknown levels fall back to the NOT_FOUND tier.
func TierFor(level Level) Tier {
	if t, ok := tiers[level]; ok {
		return t
	}
	return tiers[LevelNotFound]
}

// Rank orders levels for display: HIGH before MEDIUM before LOW before
// NOT_FOUND. Unknown levels sort last.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 0
	case LevelMedium:
		return 1
	case LevelLow:
		return 2
	case LevelNotFound:
		return 3
	default:
		return 4
	}
}

// Valid reports whether the level is one of the known tiers.
func (l Level) Valid() bool {
	_, ok := tiers[l]
	return ok
}
