// Package app wires repositories, the hierarchy resolver, the row assembler
// and the renderer into the services the CLI consumes.
package app

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/alexanderramin/ganttline/internal/config"
	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/hierarchy"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/service"
)

// Services is the wired service layer.
type Services struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	Meetings service.MeetingService
	Gantt    service.GanttService

	// Resolver is shared by the assembler and parent assignment.
	Resolver *hierarchy.Resolver
}

type options struct {
	logger   *slog.Logger
	clock    func() time.Time
	observer service.UseCaseObserver
}

// Option customizes Wire.
type Option func(*options)

// WithLogger sets the logger for data-quality warnings and use-case events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock fixes "today" for timeline headers.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithObserver replaces the logging use-case observer.
func WithObserver(obs service.UseCaseObserver) Option {
	return func(o *options) { o.observer = obs }
}

// Wire builds every service over database using cfg.
func Wire(database *sql.DB, cfg config.Config, opts ...Option) *Services {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = service.NewLogUseCaseObserver(o.logger)
	}

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	meetingRepo := repository.NewSQLiteMeetingRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	resolver := hierarchy.NewResolver(hierarchy.WithMaxDepth(cfg.Hierarchy.MaxDepth))
	resolver.Register(domain.TagTask, taskRepo.Lookup)
	resolver.Register(domain.TagMeeting, meetingRepo.Lookup)

	assembler := gantt.NewAssembler(resolver, []gantt.Source{taskRepo, meetingRepo},
		gantt.WithLogger(o.logger),
		gantt.WithOrdering(cfg.Ordering()),
		gantt.WithTiers(cfg.Timeline.Tiers),
		gantt.WithPaddingDays(cfg.Timeline.PaddingDays),
	)
	renderer := render.NewStandardRegistry(cfg.Style(), render.WithRegistryLogger(o.logger))

	ganttOpts := []service.GanttOption{
		service.WithChartTiers(cfg.Timeline.Tiers),
		service.WithObserver(o.observer),
	}
	if o.clock != nil {
		ganttOpts = append(ganttOpts, service.WithChartClock(o.clock))
	}

	return &Services{
		Projects: service.NewProjectService(projectRepo),
		Tasks:    service.NewTaskService(taskRepo, projectRepo, uow, repository.NewSQLiteItemStores, o.observer),
		Meetings: service.NewMeetingService(meetingRepo, projectRepo, uow, repository.NewSQLiteItemStores, o.observer),
		Gantt: service.NewGanttService(resolver, assembler, renderer,
			[]repository.ItemStore{taskRepo, meetingRepo}, ganttOpts...),
		Resolver: resolver,
	}
}
