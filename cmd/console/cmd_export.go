package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contractiq/console/pkg/formatting"
)

var exportFlags struct {
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export <doc-id>",
	Short: "Download the analysis spreadsheet for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "Output path (default: <doc-id>.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	documentID := args[0]
	path := exportFlags.output
	if path == "" {
		path = documentID + ".xlsx"
	}

	c, err := newConsole(nil)
	if err != nil {
		return err
	}
	defer c.Lifecycle.Shutdown(c.Config.ShutdownTimeoutDuration())

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	n, err := c.Service.Export(cmd.Context(), documentID, f)
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", path, formatting.FormatBytes(n, 1))
	return nil
}
