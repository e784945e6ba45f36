// Package dashboard derives the presentation model for a completed
// analysis. Projection is pure: no network access, no mutation of the
// underlying result.
package dashboard

import (
	"slices"

	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/formatting"
	"github.com/contractiq/console/pkg/risk"
)

// TextBudget is the display character budget for clause text. Longer
// text is shortened with a truncation marker; the underlying finding is
// untouched.
const TextBudget = 200

// ClauseRow is the display form of one clause finding.
type ClauseRow struct {
	ClauseType      string
	Found           bool
	Text            string
	PageNumber      *int
	Confidence      float64
	RiskScore       float64
	Tier            risk.Tier
	ReliabilityFlag string
}

// View is the projected dashboard for one analysis result. Aggregate
// fields are carried through from the extraction service as delivered;
// the projector never recomputes them from the clause list.
type View struct {
	DocumentID           string
	Filename             string
	PageCount            int
	OverallScore         float64
	OverallTier          risk.Tier
	GaugeRatio           float64
	HighCount            int
	MediumCount          int
	LowCount             int
	MissingCriticalCount int
	Clauses              []ClauseRow
}

// Project builds the dashboard view. Clauses are sorted HIGH, MEDIUM,
// LOW, NOT_FOUND; the sort is stable, so ties preserve the extraction
// service's order.
func Project(result *service.AnalysisResult) View {
	rows := make([]ClauseRow, len(result.Clauses))
	for i, f := range result.Clauses {
		tier := risk.TierFor(f.RiskLevel)
		if f.RiskLevel == "" && f.Found {
			// level omitted by the service; derive it from the score
			tier = risk.Classify(f.RiskScore)
		}
		rows[i] = ClauseRow{
			ClauseType:      f.ClauseType,
			Found:           f.Found,
			Text:            formatting.Truncate(f.ExtractedText, TextBudget),
			PageNumber:      f.PageNumber,
			Confidence:      f.Confidence,
			RiskScore:       f.RiskScore,
			Tier:            tier,
			ReliabilityFlag: f.ReliabilityFlag,
		}
	}
	slices.SortStableFunc(rows, func(a, b ClauseRow) int {
		return a.Tier.Level.Rank() - b.Tier.Level.Rank()
	})

	overall := risk.TierFor(result.OverallRiskLevel)
	if result.OverallRiskLevel == "" {
		overall = risk.Classify(result.OverallRiskScore)
	}

	return View{
		DocumentID:           result.DocumentID,
		Filename:             result.Filename,
		PageCount:            result.PageCount,
		OverallScore:         result.OverallRiskScore,
		OverallTier:          overall,
		GaugeRatio:           result.OverallRiskScore / 100,
		HighCount:            result.HighCount,
		MediumCount:          result.MediumCount,
		LowCount:             result.LowCount,
		MissingCriticalCount: result.MissingCriticalCount,
		Clauses:              rows,
	}
}

// Filtered returns the rows visible under the filter. The clause list
// is already sorted; filtering only applies the visibility predicate
// and never resorts or touches the aggregate counts.
func (v View) Filtered(f Filter) []ClauseRow {
	if f == FilterAll {
		return v.Clauses
	}

	var rows []ClauseRow
	for _, row := range v.Clauses {
		if f.Matches(row.Tier.Level) {
			rows = append(rows, row)
		}
	}
	return rows
}
