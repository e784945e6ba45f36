package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/contractiq/console/internal/config"
	"github.com/contractiq/console/pkg/formatting"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <contract.pdf>",
	Short: "Inspect a contract PDF locally before uploading",
	Long: `Inspect reads a PDF locally and reports its page count and size,
along with whether it fits within the configured upload limit. No
network activity is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read contract: %w", err)
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return fmt.Errorf("not a readable PDF: %w", err)
	}

	size := int64(len(data))
	limit := cfg.Pipeline.MaxUploadBytes()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:  %s\n", args[0])
	fmt.Fprintf(out, "Size:  %s\n", formatting.FormatBytes(size, 1))
	fmt.Fprintf(out, "Pages: %d\n", count)
	if size > limit {
		fmt.Fprintf(out, "Too large to upload: limit is %s\n", formatting.FormatBytes(limit, 1))
	} else {
		fmt.Fprintln(out, "Ready to upload")
	}
	return nil
}
