package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/ganttline/internal/app"
	"github.com/alexanderramin/ganttline/internal/cli"
	"github.com/alexanderramin/ganttline/internal/config"
	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags, err := cli.ParseGlobalFlags(os.Args[1:])
	if err != nil {
		return err
	}

	// Config file: --config flag, then GANTTLINE_CONFIG.
	cfgPath := flags.ConfigPath
	if cfgPath == "" {
		cfgPath = os.Getenv("GANTTLINE_CONFIG")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if flags.DBPath != "" {
		cfg.DBPath = flags.DBPath
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	services := app.Wire(database, cfg, app.WithLogger(logger))

	a := &cli.App{
		Projects: services.Projects,
		Tasks:    services.Tasks,
		Meetings: services.Meetings,
		Gantt:    services.Gantt,
		Config:   cfg,
	}
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	a.TermWidth = func() int {
		fd := os.Stdout.Fd()
		if !isatty.IsTerminal(fd) {
			return 0
		}
		w, _, err := term.GetSize(fd)
		if err != nil {
			return 0
		}
		return w
	}

	return cli.NewRootCmd(a).Execute()
}
