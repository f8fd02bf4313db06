package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create_Validation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj := env.project(t, "Tasks")

	err := env.Tasks.Create(ctx, testutil.NewTestTask(proj.ID, "   "))
	assert.ErrorContains(t, err, "title is required")

	err = env.Tasks.Create(ctx, testutil.NewTestTask(proj.ID, "Build", testutil.WithProgress(140)))
	assert.ErrorContains(t, err, "between 0 and 100")

	err = env.Tasks.Create(ctx, testutil.NewTestTask(proj.ID, "Build", testutil.WithTaskDates("2024-02-01", "2024-01-01")))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	err = env.Tasks.Create(ctx, testutil.NewTestTask("missing-project", "Build"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_CreateAndProgress(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj := env.project(t, "Tasks")
	ref := env.task(t, proj.ID, "Build", testutil.WithTaskDates("2024-01-01", "2024-01-10"))

	require.NoError(t, env.Tasks.SetProgress(ctx, ref.ID, 60))
	got, err := env.Tasks.GetByID(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress)

	assert.Error(t, env.Tasks.SetProgress(ctx, ref.ID, -1))
	assert.ErrorIs(t, env.Tasks.SetProgress(ctx, 9999, 10), repository.ErrNotFound)

	list, err := env.Tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMeetingService_Create_Validation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj := env.project(t, "Meetings")

	assert.ErrorContains(t, env.Meetings.Create(ctx, testutil.NewTestMeeting(proj.ID, "")), "subject is required")
	assert.ErrorContains(t, env.Meetings.Create(ctx,
		testutil.NewTestMeeting(proj.ID, "Retro", testutil.UntilDate("2024-01-03"))), "no date")
	assert.ErrorIs(t, env.Meetings.Create(ctx,
		testutil.NewTestMeeting(proj.ID, "Retro", testutil.OnDate("2024-01-05"), testutil.UntilDate("2024-01-03"))),
		domain.ErrInvalidRange)

	ref := env.meeting(t, proj.ID, "Kickoff", testutil.OnDate("2024-01-02"), testutil.WithOrganizer("Sam"))
	got, err := env.Meetings.GetByID(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Organizer)
}

func TestTaskService_DeleteClearsLinksAcrossStores(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj := env.project(t, "Links")

	epic := env.task(t, proj.ID, "Epic")
	sub := env.task(t, proj.ID, "Subtask", testutil.WithTaskParent(epic))
	sync := env.meeting(t, proj.ID, "Sync", testutil.OnDate("2024-01-02"), testutil.WithMeetingParent(epic))

	require.NoError(t, env.Tasks.Delete(ctx, epic.ID))

	_, err := env.Tasks.GetByID(ctx, epic.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	task, err := env.Tasks.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, task.Parent)

	meeting, err := env.Meetings.GetByID(ctx, sync.ID)
	require.NoError(t, err)
	assert.Nil(t, meeting.Parent)

	event := env.observer.last()
	assert.Equal(t, "delete-task", event.Name)
	assert.True(t, event.Success)
	assert.Equal(t, int64(2), event.Fields["links_cleared"])
}

func TestMeetingService_DeleteMissing(t *testing.T) {
	env := setupEnv(t)
	err := env.Meetings.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, env.observer.last().Success)
}

func TestTaskService_DeleteRollsBackOnFailure(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj := env.project(t, "Rollback")
	epic := env.task(t, proj.ID, "Epic")
	sub := env.task(t, proj.ID, "Subtask", testutil.WithTaskParent(epic))

	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: boom}
	svc := NewTaskService(env.tasks, env.projects, failing, repository.NewSQLiteItemStores)

	// Exec 1 and 2 clear links in tasks and meetings; exec 3 is the delete.
	err := svc.Delete(ctx, epic.ID)
	assert.ErrorIs(t, err, boom)

	_, err = env.Tasks.GetByID(ctx, epic.ID)
	require.NoError(t, err)
	task, err := env.Tasks.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, task.Parent)
	assert.Equal(t, epic, task.Parent.Ref())
}
