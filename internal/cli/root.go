package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/ganttline/internal/config"
	"github.com/alexanderramin/ganttline/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all services used by CLI commands.
type App struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	Meetings service.MeetingService
	Gantt    service.GanttService
	Config   config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title string) (bool, error)
	// TermWidth reports the output width for text charts. Nil or a
	// non-positive result uses the formatter default.
	TermWidth func() int
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}

func (a *App) width() int {
	if a.TermWidth == nil {
		return 0
	}
	return a.TermWidth()
}

// GlobalFlags are read before the services exist: they decide which
// database and configuration the App is built from.
type GlobalFlags struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

// BindGlobalFlags registers the global flags on fs.
func BindGlobalFlags(fs *pflag.FlagSet, g *GlobalFlags) {
	fs.StringVar(&g.ConfigPath, "config", "", "Config file (.yaml, .yml or .toml)")
	fs.StringVar(&g.DBPath, "db", "", "Database path (overrides config and GANTTLINE_DB)")
	fs.StringVar(&g.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// ParseGlobalFlags extracts the global flags from args and ignores
// everything else, including --help.
func ParseGlobalFlags(args []string) (GlobalFlags, error) {
	var g GlobalFlags
	fs := pflag.NewFlagSet("ganttline", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	BindGlobalFlags(fs, &g)
	if err := fs.Parse(args); err != nil && err != pflag.ErrHelp {
		return g, fmt.Errorf("parsing flags: %w", err)
	}
	return g, nil
}

// NewRootCmd creates the top-level "ganttline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ganttline",
		Short:         "Gantt charts across tasks, meetings and anything else with dates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var globals GlobalFlags
	BindGlobalFlags(root.PersistentFlags(), &globals)

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newMeetingCmd(app),
		newParentCmd(app),
		newChartCmd(app),
		newHeaderCmd(app),
		newViewCmd(app),
	)
	return root
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
