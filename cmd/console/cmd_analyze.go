package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contractiq/console/internal/dashboard"
	"github.com/contractiq/console/internal/pipeline"
)

var analyzeFlags struct {
	filter string
	chat   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <contract.pdf>",
	Short: "Upload a contract and run the full risk analysis",
	Long: `Analyze uploads a contract PDF, runs clause extraction and risk
scoring, and renders the risk dashboard.

Usage:
  contractiq analyze msa.pdf
  contractiq analyze msa.pdf --filter high
  contractiq analyze msa.pdf --chat       # open a chat session afterwards`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.filter, "filter", "all", "Clause filter: all, high, medium, low, missing")
	f.BoolVar(&analyzeFlags.chat, "chat", false, "Open an interactive chat session after analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filter, err := dashboard.ParseFilter(analyzeFlags.filter)
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open contract: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat contract: %w", err)
	}

	out := cmd.OutOrStdout()
	c, err := newConsole(func(stage pipeline.Stage, step, percent int) {
		fmt.Fprintf(out, "[%d/5] %s (%d%%)\n", step, stage, percent)
	})
	if err != nil {
		return err
	}
	defer c.Lifecycle.Shutdown(c.Config.ShutdownTimeoutDuration())

	view, err := c.Analyze(cmd.Context(), pipeline.File{
		Name: info.Name(),
		Size: info.Size(),
		Data: f,
	})
	if err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			return fmt.Errorf("analysis failed during %s: %s", stageErr.Stage, stageErr.Message)
		}
		return err
	}

	renderView(out, view, filter)

	if analyzeFlags.chat {
		fmt.Fprintln(out)
		return chatLoop(cmd, c)
	}
	return nil
}
