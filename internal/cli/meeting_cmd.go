package cli

import (
	"fmt"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/spf13/cobra"
)

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Manage meetings",
	}

	cmd.AddCommand(
		newMeetingAddCmd(app),
		newMeetingListCmd(app),
		newMeetingDeleteCmd(app),
	)

	return cmd
}

func newMeetingAddCmd(app *App) *cobra.Command {
	var projectRef, subject, on, until, organizer, location, color, icon, parent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a meeting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			date, err := parseDateFlag("on", on)
			if err != nil {
				return err
			}
			end, err := parseDateFlag("until", until)
			if err != nil {
				return err
			}
			parentRef, err := parseRefFlag("parent", parent)
			if err != nil {
				return err
			}

			m := &domain.Meeting{
				ProjectID:   p.ID,
				Subject:     subject,
				Organizer:   organizer,
				MeetingDate: date,
				EndDate:     end,
				Location:    location,
				Color:       color,
				Icon:        icon,
			}
			if err := app.Meetings.Create(ctx, m); err != nil {
				return err
			}
			ref := domain.ItemRef{Tag: domain.TagMeeting, ID: m.ID}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", ref, m.Subject)

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
	cmd.Flags().StringVar(&subject, "subject", "", "Meeting subject")
	cmd.Flags().StringVar(&on, "on", "", "Meeting date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Last day of a multi-day event (YYYY-MM-DD)")
	cmd.Flags().StringVar(&organizer, "organizer", "", "Organizer")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (#rrggbb)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon identifier")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item (tag:id, e.g. task:4)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newMeetingListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List meetings in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			meetings, err := app.Meetings.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMeetingList(meetings))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	return cmd
}

func newMeetingDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <meeting-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a meeting and detach its children",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			id, err := parseItemID(domain.TagMeeting, args[0])
			if err != nil {
				return err
			}
			m, err := app.Meetings.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Delete meeting:%d %s?", m.ID, m.Subject))
				if err != nil || !ok {
					return err
				}
			}
			if err := app.Meetings.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meeting:%d %s\n", m.ID, m.Subject)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
