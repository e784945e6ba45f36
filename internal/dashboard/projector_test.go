package dashboard_test

import (
	"strings"
	"testing"

	"github.com/contractiq/console/internal/dashboard"
	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/risk"
)

func sampleResult() *service.AnalysisResult {
	return &service.AnalysisResult{
		DocumentID:       "d1",
		Filename:         "msa.pdf",
		PageCount:        12,
		OverallRiskScore: 72,
		OverallRiskLevel: risk.LevelHigh,
		HighCount:        1,
		MediumCount:      1,
		Clauses: []service.ClauseFinding{
			{ClauseType: "Governing Law", Found: true, RiskLevel: risk.LevelLow, RiskScore: 10},
			{ClauseType: "Audit Rights", Found: false, RiskLevel: risk.LevelNotFound},
			{ClauseType: "Indemnity", Found: true, RiskLevel: risk.LevelHigh, RiskScore: 90},
			{ClauseType: "Insurance", Found: true, RiskLevel: risk.LevelMedium, RiskScore: 40},
			{ClauseType: "Exclusivity", Found: true, RiskLevel: risk.LevelHigh, RiskScore: 65},
		},
	}
}

func levels(rows []dashboard.ClauseRow) []risk.Level {
	out := make([]risk.Level, len(rows))
	for i, r := range rows {
		out[i] = r.Tier.Level
	}
	return out
}

func TestProjectSortOrder(t *testing.T) {
	view := dashboard.Project(sampleResult())

	want := []risk.Level{
		risk.LevelHigh,
		risk.LevelHigh,
		risk.LevelMedium,
		risk.LevelLow,
		risk.LevelNotFound,
	}
	got := levels(view.Clauses)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted levels = %v, want %v", got, want)
		}
	}

	// stable: the two HIGH clauses keep upstream order
	if view.Clauses[0].ClauseType != "Indemnity" || view.Clauses[1].ClauseType != "Exclusivity" {
		t.Errorf("HIGH tie order = %s, %s; want Indemnity, Exclusivity",
			view.Clauses[0].ClauseType, view.Clauses[1].ClauseType)
	}
}

func TestProjectIdempotentSort(t *testing.T) {
	first := dashboard.Project(sampleResult())

	// re-project a result whose clauses are already in display order
	resorted := sampleResult()
	resorted.Clauses = []service.ClauseFinding{
		{ClauseType: "Indemnity", Found: true, RiskLevel: risk.LevelHigh, RiskScore: 90},
		{ClauseType: "Exclusivity", Found: true, RiskLevel: risk.LevelHigh, RiskScore: 65},
		{ClauseType: "Insurance", Found: true, RiskLevel: risk.LevelMedium, RiskScore: 40},
		{ClauseType: "Governing Law", Found: true, RiskLevel: risk.LevelLow, RiskScore: 10},
		{ClauseType: "Audit Rights", Found: false, RiskLevel: risk.LevelNotFound},
	}
	second := dashboard.Project(resorted)

	for i := range first.Clauses {
		if first.Clauses[i].ClauseType != second.Clauses[i].ClauseType {
			t.Fatalf("sort not idempotent at %d: %s vs %s",
				i, first.Clauses[i].ClauseType, second.Clauses[i].ClauseType)
		}
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	result := sampleResult()
	dashboard.Project(result)

	if result.Clauses[0].ClauseType != "Governing Law" {
		t.Error("projection reordered the source clause list")
	}
}

func TestProjectAggregatesTrusted(t *testing.T) {
	result := sampleResult()
	// deliberately inconsistent with the clause list; carried through as-is
	result.HighCount = 9
	result.MissingCriticalCount = 3

	view := dashboard.Project(result)
	if view.HighCount != 9 {
		t.Errorf("HighCount = %d, want upstream value 9", view.HighCount)
	}
	if view.MissingCriticalCount != 3 {
		t.Errorf("MissingCriticalCount = %d, want 3", view.MissingCriticalCount)
	}
	if view.GaugeRatio != 0.72 {
		t.Errorf("GaugeRatio = %v, want 0.72", view.GaugeRatio)
	}
	if view.OverallTier.Level != risk.LevelHigh {
		t.Errorf("OverallTier = %s, want HIGH", view.OverallTier.Level)
	}
}

func TestProjectTruncatesText(t *testing.T) {
	result := sampleResult()
	long := strings.Repeat("a", dashboard.TextBudget+50)
	result.Clauses[2].ExtractedText = long

	view := dashboard.Project(result)
	var row dashboard.ClauseRow
	for _, r := range view.Clauses {
		if r.ClauseType == "Indemnity" {
			row = r
		}
	}

	if len(row.Text) != dashboard.TextBudget {
		t.Errorf("display text length = %d, want %d", len(row.Text), dashboard.TextBudget)
	}
	if !strings.HasSuffix(row.Text, "...") {
		t.Error("truncated text missing marker")
	}
	if result.Clauses[2].ExtractedText != long {
		t.Error("truncation altered the underlying finding")
	}
}

func TestFiltered(t *testing.T) {
	view := dashboard.Project(sampleResult())

	tests := []struct {
		name   string
		filter dashboard.Filter
		want   int
	}{
		{"all returns everything", dashboard.FilterAll, 5},
		{"high", dashboard.FilterHigh, 2},
		{"medium", dashboard.FilterMedium, 1},
		{"low", dashboard.FilterLow, 1},
		{"missing matches not found only", dashboard.FilterMissing, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := view.Filtered(tt.filter)
			if len(rows) != tt.want {
				t.Errorf("Filtered(%s) = %d rows, want %d", tt.filter, len(rows), tt.want)
			}
		})
	}

	missing := view.Filtered(dashboard.FilterMissing)
	if len(missing) != 1 || missing[0].Found {
		t.Error("missing filter must return only unfound clauses")
	}

	// filtering keeps the sorted order
	high := view.Filtered(dashboard.FilterHigh)
	if high[0].ClauseType != "Indemnity" || high[1].ClauseType != "Exclusivity" {
		t.Error("filtering reordered rows")
	}
}

func TestProjectDerivesTierFromScore(t *testing.T) {
	result := sampleResult()
	// level omitted; the score places it in the medium band
	result.Clauses[0] = service.ClauseFinding{
		ClauseType: "Governing Law", Found: true, RiskScore: 45,
	}

	view := dashboard.Project(result)
	for _, row := range view.Clauses {
		if row.ClauseType == "Governing Law" {
			if row.Tier.Level != risk.LevelMedium {
				t.Errorf("derived tier = %s, want MEDIUM", row.Tier.Level)
			}
			return
		}
	}
	t.Fatal("clause missing from view")
}

func TestParseFilter(t *testing.T) {
	if _, err := dashboard.ParseFilter("high"); err != nil {
		t.Errorf("ParseFilter(high) failed: %v", err)
	}
	if _, err := dashboard.ParseFilter("severe"); err == nil {
		t.Error("ParseFilter(severe) should fail")
	}
}
