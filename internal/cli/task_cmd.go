package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskProgressCmd(app),
		newTaskDeleteCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var projectRef, title, start, due, responsible, color, icon, parent string
	var progress int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			dueDate, err := parseDateFlag("due", due)
			if err != nil {
				return err
			}
			parentRef, err := parseRefFlag("parent", parent)
			if err != nil {
				return err
			}

			t := &domain.Task{
				ProjectID:   p.ID,
				Title:       title,
				Responsible: responsible,
				StartDate:   startDate,
				DueDate:     dueDate,
				Progress:    progress,
				Color:       color,
				Icon:        icon,
			}
			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			ref := domain.ItemRef{Tag: domain.TagTask, ID: t.ID}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", ref, t.Title)

			if parentRef != nil {
				if err := app.Gantt.SetParent(ctx, ref, *parentRef); err != nil {
					return fmt.Errorf("%s created without a parent: %w", ref, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  parent %s\n", parentRef)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&responsible, "responsible", "", "Person responsible")
	cmd.Flags().IntVar(&progress, "progress", 0, "Completion percentage (0-100)")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (#rrggbb)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon identifier")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item (tag:id, e.g. meeting:3)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	return cmd
}

func newTaskProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <task-id> <percent>",
		Short: "Set a task's completion percentage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(domain.TagTask, args[0])
			if err != nil {
				return err
			}
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid percent %q", args[1])
			}
			if err := app.Tasks.SetProgress(commandContext(cmd), id, pct); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "task:%d %s\n", id, formatter.ProgressPill(pct))
			return nil
		},
	}
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <task-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task and detach its children",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := parseItemID(domain.TagTask, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Delete task:%d %s?", t.ID, t.Title))
				if err != nil || !ok {
					return err
				}
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task:%d %s\n", t.ID, t.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// parseItemID accepts either a bare id or a tag:id reference whose tag
// must match.
func parseItemID(tag, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	ref, err := domain.ParseItemRef(arg)
	if err != nil {
		return 0, err
	}
	if ref.Tag != tag {
		return 0, fmt.Errorf("%s is not a %s", ref, tag)
	}
	return ref.ID, nil
}
