package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/types"
	"github.com/oakbuilt/renoplan/internal/validation"
)

var (
	createAddress string
	createBudget  float64
	createStart   string
	createOwner   string
)

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a renovation project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

func init() {
	projectsCreateCmd.Flags().StringVar(&createAddress, "address", "",
		"Property address")
	projectsCreateCmd.Flags().Float64Var(&createBudget, "budget", 0,
		"Total budget in dollars")
	projectsCreateCmd.Flags().StringVar(&createStart, "start", "",
		"Start date as YYYY-MM-DD (default: today)")
	projectsCreateCmd.Flags().StringVar(&createOwner, "owner", "",
		"Owner user id")
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	if createStart != "" {
		parsed, err := time.Parse("2006-01-02", createStart)
		if err != nil {
			return fmt.Errorf("invalid --start date %q: %w", createStart, err)
		}
		start = parsed
	}

	draft := types.ProjectDraft{
		Name:        args[0],
		Address:     createAddress,
		TotalBudget: createBudget,
		StartDate:   start,
		OwnerID:     createOwner,
	}
	if errs := validation.ValidateProjectDraft(draft); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", e.Field, e.Message)
		}
		return fmt.Errorf("invalid project")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	project, err := st.CreateProject(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	if projectsJSONOutput {
		return printJSON(cmd.OutOrStdout(), project)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %q (id: %s)\n", project.Name, project.ID)
	return nil
}
