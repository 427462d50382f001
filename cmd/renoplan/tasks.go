package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/store"
)

var (
	tasksJSONOutput   bool
	tasksProject      string
	tasksShowArchived bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks ordered by due date",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

func init() {
	tasksCmd.PersistentFlags().BoolVar(&tasksJSONOutput, "json", false,
		"Output in JSON format")
	tasksListCmd.Flags().StringVar(&tasksProject, "project", "",
		"Limit to tasks in this project id")
	tasksListCmd.Flags().BoolVar(&tasksShowArchived, "archived", false,
		"Include archived tasks")

	tasksCmd.AddCommand(tasksListCmd)
}

func runTasksList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	tasks, err := st.ListTasks(context.Background(), store.ListOptions{
		ProjectID:       tasksProject,
		IncludeArchived: tasksShowArchived,
	})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	if tasksJSONOutput {
		return printJSON(cmd.OutOrStdout(), tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tDUE\tESTIMATED\tACTUAL")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Status, formatDayPtr(t.DueDate),
			formatMoney(t.EstimatedCost), formatMoney(t.ActualCost))
	}
	return w.Flush()
}
