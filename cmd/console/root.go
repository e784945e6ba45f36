// contractiq is the console client for the contract analysis service:
// analyze, chat, history, export, health, inspect.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "contractiq",
	Short: "Contract risk analysis console",
	Long: "ContractIQ uploads contract PDFs to the analysis service, walks them\n" +
		"through clause extraction and risk scoring, and presents the results\n" +
		"as a risk dashboard with a document-scoped chat session.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.Version = version
}

func main() {
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
