package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parent",
		Short: "Link items across stores",
		Long: `Items are addressed as tag:id, for example task:4 or meeting:2.
A parent may live in a different store than its child.`,
	}

	cmd.AddCommand(
		newParentSetCmd(app),
		newParentClearCmd(app),
	)

	return cmd
}

func newParentSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <child> <parent>",
		Short: "Make one item the parent of another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			child, err := resolveItemArg(args[0])
			if err != nil {
				return err
			}
			parent, err := resolveItemArg(args[1])
			if err != nil {
				return err
			}
			if err := app.Gantt.SetParent(commandContext(cmd), child, parent); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → parent %s\n", child, parent)
			return nil
		},
	}
}

func newParentClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear <child>",
		Short: "Detach an item from its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			child, err := resolveItemArg(args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := app.confirm(fmt.Sprintf("Detach %s from its parent?", child))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Gantt.ClearParent(commandContext(cmd), child); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now a root item\n", child)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
