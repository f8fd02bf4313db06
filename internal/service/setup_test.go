package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/hierarchy"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	projects repository.ProjectRepo
	tasks    *repository.SQLiteTaskRepo
	meetings *repository.SQLiteMeetingRepo
	resolver *hierarchy.Resolver
	observer *recordingObserver

	Projects ProjectService
	Tasks    TaskService
	Meetings MeetingService
	Gantt    GanttService
}

func today() time.Time { return domain.MustDate("2024-01-10") }

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		projects: repository.NewSQLiteProjectRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		meetings: repository.NewSQLiteMeetingRepo(database),
		resolver: hierarchy.NewResolver(),
		observer: &recordingObserver{},
	}
	env.resolver.Register(domain.TagTask, env.tasks.Lookup)
	env.resolver.Register(domain.TagMeeting, env.meetings.Lookup)

	stores := []repository.ItemStore{env.tasks, env.meetings}
	assembler := gantt.NewAssembler(env.resolver, []gantt.Source{env.tasks, env.meetings})

	env.Projects = NewProjectService(env.projects)
	env.Tasks = NewTaskService(env.tasks, env.projects, env.uow, repository.NewSQLiteItemStores, env.observer)
	env.Meetings = NewMeetingService(env.meetings, env.projects, env.uow, repository.NewSQLiteItemStores, env.observer)
	env.Gantt = NewGanttService(env.resolver, assembler, render.NewStandardRegistry(render.DefaultStyle()), stores,
		WithChartClock(today), WithObserver(env.observer))
	return env
}

func (e *testEnv) project(t *testing.T, name string) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name)
	p.ID = ""
	require.NoError(t, e.Projects.Create(context.Background(), p))
	return p
}

func (e *testEnv) task(t *testing.T, projectID, title string, opts ...testutil.TaskOption) domain.ItemRef {
	t.Helper()
	task := testutil.NewTestTask(projectID, title, opts...)
	require.NoError(t, e.Tasks.Create(context.Background(), task))
	return domain.ItemRef{Tag: domain.TagTask, ID: task.ID}
}

func (e *testEnv) meeting(t *testing.T, projectID, subject string, opts ...testutil.MeetingOption) domain.ItemRef {
	t.Helper()
	m := testutil.NewTestMeeting(projectID, subject, opts...)
	require.NoError(t, e.Meetings.Create(context.Background(), m))
	return domain.ItemRef{Tag: domain.TagMeeting, ID: m.ID}
}
