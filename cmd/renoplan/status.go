package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/status"
)

var statusJSONOutput bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check availability of the configured external services",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false,
		"Output in JSON format")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := status.NewChecker(cfg).Check(context.Background())

	if statusJSONOutput {
		return printJSON(cmd.OutOrStdout(), report)
	}
	return status.WriteText(cmd.OutOrStdout(), report)
}
