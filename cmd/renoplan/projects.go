package main

import (
	"github.com/spf13/cobra"
)

var projectsJSONOutput bool

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage renovation projects",
	Long:  "List, create, and archive renovation projects against the configured backend.",
}

func init() {
	projectsCmd.PersistentFlags().BoolVar(&projectsJSONOutput, "json", false,
		"Output in JSON format")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsArchiveCmd)
}
