package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/store"
)

var (
	projectsListOwner        string
	projectsListShowArchived bool
)

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List renovation projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

func init() {
	projectsListCmd.Flags().StringVar(&projectsListOwner, "owner", "",
		"Limit to projects owned by this user id")
	projectsListCmd.Flags().BoolVar(&projectsListShowArchived, "archived", false,
		"Include archived projects")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	projects, err := st.ListProjects(context.Background(), store.ListOptions{
		OwnerID:         projectsListOwner,
		IncludeArchived: projectsListShowArchived,
	})
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	if projectsJSONOutput {
		return printJSON(cmd.OutOrStdout(), projects)
	}

	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tBUDGET\tSTART")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Status, formatMoney(p.TotalBudget), formatDay(p.StartDate))
	}
	return w.Flush()
}
