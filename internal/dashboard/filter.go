package dashboard

import (
	"fmt"

	"github.com/contractiq/console/pkg/risk"
)

// Filter selects which risk tiers are visible in the clause list.
type Filter string

// Filter tags. Missing matches only clauses the extraction did not find.
const (
	FilterAll     Filter = "all"
	FilterHigh    Filter = "high"
	FilterMedium  Filter = "medium"
	FilterLow     Filter = "low"
	FilterMissing Filter = "missing"
)

// ParseFilter validates a filter tag.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterHigh, FilterMedium, FilterLow, FilterMissing:
		return Filter(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Matches reports whether a clause at the given level is visible under
// the filter.
func (f Filter) Matches(level risk.Level) bool {
	switch f {
	case FilterAll:
		return true
	case FilterHigh:
		return level == risk.LevelHigh
	case FilterMedium:
		return level == risk.LevelMedium
	case FilterLow:
		return level == risk.LevelLow
	case FilterMissing:
		return level == risk.LevelNotFound
	default:
		return false
	}
}
