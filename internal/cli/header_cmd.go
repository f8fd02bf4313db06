package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHeaderCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "header",
		Short: "Show the timeline header for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			if _, err := app.Gantt.GetChart(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHeader(app.Gantt.GetTimelineHeaderModel()))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
