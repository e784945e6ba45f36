package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the analysis service is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	c, err := newConsole(nil)
	if err != nil {
		return err
	}
	defer c.Lifecycle.Shutdown(c.Config.ShutdownTimeoutDuration())

	if !c.Service.Health(cmd.Context()) {
		return fmt.Errorf("service at %s is not healthy", c.Config.Service.BaseURL)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "service at %s is healthy\n", c.Config.Service.BaseURL)
	return nil
}
