package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakbuilt/renoplan/internal/types"
)

var projectsArchiveCmd = &cobra.Command{
	Use:   "archive <project-id>",
	Short: "Archive a project",
	Long:  "Archive a project by setting its status. Archived projects drop out of default listings but remain fetchable by id.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsArchive,
}

func runProjectsArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := resolveStore(cfg)
	if err != nil {
		return err
	}

	archived := types.ProjectArchived
	project, err := st.UpdateProject(context.Background(), args[0],
		types.ProjectPatch{Status: &archived})
	if err != nil {
		return fmt.Errorf("archive project: %w", err)
	}

	if projectsJSONOutput {
		return printJSON(cmd.OutOrStdout(), project)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Archived project %q (id: %s)\n", project.Name, project.ID)
	return nil
}
