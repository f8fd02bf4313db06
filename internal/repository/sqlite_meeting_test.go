package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := setupProject(t, NewSQLiteProjectRepo(db))
	repo := NewSQLiteMeetingRepo(db)
	ctx := context.Background()

	m := testutil.NewTestMeeting(proj.ID, "Workshop",
		testutil.OnDate("2024-02-05"),
		testutil.UntilDate("2024-02-06"),
		testutil.WithOrganizer("Lee"))
	m.Location = "Room 4"
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Workshop", fetched.Subject)
	assert.Equal(t, "Lee", fetched.Organizer)
	assert.Equal(t, "Room 4", fetched.Location)
	assert.Equal(t, "2024-02-06", fetched.EndDate.Format(domain.DateLayout))
}

func TestMeetingRepo_InstantScheduleItem(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := setupProject(t, NewSQLiteProjectRepo(db))
	repo := NewSQLiteMeetingRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMeeting(proj.ID, "Standup", testutil.OnDate("2024-02-05"))))

	items, err := repo.ListScheduleItems(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].HasDates())
	assert.True(t, items[0].StartDate.Equal(*items[0].EndDate))
	assert.Equal(t, domain.TagMeeting, items[0].EntityTypeTag)
}

func TestMeetingRepo_LookupMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteMeetingRepo(db).Lookup(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestMeetingRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := setupProject(t, NewSQLiteProjectRepo(db))
	repo := NewSQLiteMeetingRepo(db)
	ctx := context.Background()

	m := testutil.NewTestMeeting(proj.ID, "Sync", testutil.OnDate("2024-02-05"))
	require.NoError(t, repo.Create(ctx, m))

	m.Subject = "Weekly sync"
	require.NoError(t, repo.Update(ctx, m))
	fetched, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly sync", fetched.Subject)

	require.NoError(t, repo.DeleteItem(ctx, m.ID))
	_, err = repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
