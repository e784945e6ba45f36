package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contractiq/console/pkg/pagination"
)

var historyFlags struct {
	page     int
	pageSize int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously analyzed contracts",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.IntVar(&historyFlags.page, "page", 1, "Page number")
	f.IntVar(&historyFlags.pageSize, "page-size", 0, "Records per page (0 uses the configured default)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	c, err := newConsole(nil)
	if err != nil {
		return err
	}
	defer c.Lifecycle.Shutdown(c.Config.ShutdownTimeoutDuration())

	page, err := c.History.List(cmd.Context(), pagination.PageRequest{
		Page:     historyFlags.page,
		PageSize: historyFlags.pageSize,
	})
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	out := cmd.OutOrStdout()
	if page.Total == 0 {
		fmt.Fprintln(out, "No analyses recorded yet")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ANALYZED\tDOCUMENT\tFILE\tPAGES\tRISK\tHIGH\tMEDIUM\tLOW\tMISSING")
	for _, rec := range page.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f %s\t%d\t%d\t%d\t%d\n",
			rec.AnalyzedAt.Format("2006-01-02 15:04"),
			rec.DocumentID, rec.Filename, rec.PageCount,
			rec.OverallRiskScore, rec.OverallRiskLevel,
			rec.HighCount, rec.MediumCount, rec.LowCount, rec.MissingCriticalCount)
	}
	tw.Flush()

	fmt.Fprintf(out, "\nPage %d of %d (%d total)\n", page.Page, page.TotalPages, page.Total)
	return nil
}
