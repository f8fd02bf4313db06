package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/service"
	"github.com/spf13/cobra"
)

const (
	chartFormatText    = "text"
	chartFormatSVG     = "svg"
	chartFormatOutline = "outline"
)

func newChartCmd(app *App) *cobra.Command {
	var projectRef, format, out, from, to string
	var tree, warnings bool
	var width int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render a project's Gantt chart",
		Long: `Rebuild the chart for a project and print it.

Formats:
  text     bars drawn in the terminal (default)
  svg      a standalone SVG document
  outline  the item hierarchy without bars`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			if err := checkChartFormat(format); err != nil {
				return err
			}
			p, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			req := service.ChartRequest{}
			if tree || format == chartFormatOutline {
				req.Ordering = gantt.OrderTree
			}
			if req.From, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if req.To, err = parseDateFlag("to", to); err != nil {
				return err
			}

			view, err := app.Gantt.GetChartWith(ctx, p.ID, req)
			if err != nil {
				return err
			}

			if out == "" {
				if err := writeChart(cmd.OutOrStdout(), app, p.Name, format, width, view); err != nil {
					return err
				}
			} else if err := writeChartFile(out, app, p.Name, format, width, view); err != nil {
				return err
			}
			if warnings && len(view.Chart.Warnings) > 0 {
				fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatWarnings(view.Chart.Warnings))
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", out, formatter.Plural(len(view.Chart.Rows), "row"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project short ID or UUID")
	cmd.Flags().BoolVar(&tree, "tree", false, "Order rows as a tree instead of by level")
	cmd.Flags().StringVar(&format, "format", chartFormatText, "Output format: text, svg or outline")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&from, "from", "", "Start the visible range at this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End the visible range at this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&width, "width", 0, "Text chart width in columns (default: terminal width)")
	cmd.Flags().BoolVar(&warnings, "warnings", false, "List data-quality warnings on stderr")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func checkChartFormat(format string) error {
	switch format {
	case chartFormatText, chartFormatSVG, chartFormatOutline, "":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, svg or outline)", format)
	}
}

func writeChartFile(path string, app *App, title, format string, width int, view *service.ChartView) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeChart(f, app, title, format, width, view); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func writeChart(w io.Writer, app *App, title, format string, width int, view *service.ChartView) error {
	switch format {
	case chartFormatText, "":
		if width <= 0 {
			width = app.width()
		}
		_, err := fmt.Fprint(w, formatter.FormatGantt(view.Chart, view.Header, view.Bars, width))
		return err
	case chartFormatSVG:
		return render.WriteSVG(w, view.Header, view.Bars, app.Config.SVGOptions(title))
	case chartFormatOutline:
		if view.Chart.Empty() {
			_, err := fmt.Fprintln(w, formatter.Dim("No items in this project."))
			return err
		}
		_, err := fmt.Fprint(w, formatter.RenderTree(formatter.TreeItemsFromRows(view.Chart.Rows)))
		return err
	default:
		return checkChartFormat(format)
	}
}
