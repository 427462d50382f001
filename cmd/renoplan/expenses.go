package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/store"
)

var (
	expensesJSONOutput bool
	expensesProject    string
	expensesTask       string
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Inspect expenses",
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses with a running total",
	Args:  cobra.NoArgs,
	RunE:  runExpensesList,
}

func init() {
	expensesCmd.PersistentFlags().BoolVar(&expensesJSONOutput, "json", false,
		"Output in JSON format")
	expensesListCmd.Flags().StringVar(&expensesProject, "project", "",
		"Limit to expenses in this project id")
	expensesListCmd.Flags().StringVar(&expensesTask, "task", "",
		"Limit to expenses tied to this task id")

	expensesCmd.AddCommand(expensesListCmd)
}

func runExpensesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	expenses, err := st.ListExpenses(context.Background(), store.ListOptions{
		ProjectID: expensesProject,
		TaskID:    expensesTask,
	})
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}

	if expensesJSONOutput {
		return printJSON(cmd.OutOrStdout(), expenses)
	}

	if len(expenses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No expenses found.")
		return nil
	}

	var total float64
	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tDATE\tVENDOR\tCATEGORY\tAMOUNT")
	for _, e := range expenses {
		total += e.Amount
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, formatDay(e.Date), e.Vendor, e.Category, formatMoney(e.Amount))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %s across %d expenses\n",
		formatMoney(total), len(expenses))
	return nil
}
