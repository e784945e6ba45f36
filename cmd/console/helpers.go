package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/contractiq/console/internal/config"
	"github.com/contractiq/console/internal/console"
	"github.com/contractiq/console/internal/dashboard"
	"github.com/contractiq/console/internal/pipeline"
)

func newConsole(observer pipeline.Observer) (*console.Console, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return console.New(cfg, observer)
}

// renderView writes the risk dashboard for one completed analysis.
func renderView(w io.Writer, view *dashboard.View, filter dashboard.Filter) {
	fmt.Fprintf(w, "\n%s (%d pages)\n", view.Filename, view.PageCount)
	fmt.Fprintf(w, "Overall risk: %.0f/100 %s\n", view.OverallScore, view.OverallTier.Label)
	fmt.Fprintf(w, "Gauge: %s %.0f%%\n", gaugeBar(view.GaugeRatio), view.GaugeRatio*100)
	fmt.Fprintf(w, "High: %d  Medium: %d  Low: %d  Missing critical: %d\n\n",
		view.HighCount, view.MediumCount, view.LowCount, view.MissingCriticalCount)

	rows := view.Filtered(filter)
	if len(rows) == 0 {
		fmt.Fprintf(w, "No clauses match filter %q\n", filter)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLAUSE\tRISK\tSCORE\tPAGE\tFLAG\tTEXT")
	for _, row := range rows {
		page := "-"
		if row.PageNumber != nil {
			page = fmt.Sprintf("%d", *row.PageNumber)
		}
		flag := "-"
		if row.ReliabilityFlag != "" {
			flag = row.ReliabilityFlag
		}
		text := row.Text
		if !row.Found {
			text = "(not found in document)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%s\t%s\n",
			row.ClauseType, row.Tier.Label, row.RiskScore, page, flag, oneLine(text))
	}
	tw.Flush()
}

func gaugeBar(ratio float64) string {
	const width = 20
	filled := int(ratio * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
