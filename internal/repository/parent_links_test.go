package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveParentLink_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := setupProject(t, NewSQLiteProjectRepo(database))
	tasks := NewSQLiteTaskRepo(database)
	meetings := NewSQLiteMeetingRepo(database)
	ctx := context.Background()

	parent := testutil.NewTestTask(proj.ID, "Epic")
	require.NoError(t, tasks.Create(ctx, parent))
	m := testutil.NewTestMeeting(proj.ID, "Review", testutil.OnDate("2024-01-05"))
	require.NoError(t, meetings.Create(ctx, m))

	link := &domain.ParentLink{ParentTypeTag: domain.TagTask, ParentID: parent.ID}
	require.NoError(t, meetings.SaveParentLink(ctx, m.ID, link))

	item, err := meetings.Lookup(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, item.ParentLink)
	assert.Equal(t, *link, *item.ParentLink)

	require.NoError(t, meetings.SaveParentLink(ctx, m.ID, nil))
	item, err = meetings.Lookup(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, item.ParentLink)

	assert.ErrorIs(t, meetings.SaveParentLink(ctx, 999, link), ErrNotFound)
}

func TestClearLinksTo_AcrossStoresInOneTx(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := setupProject(t, NewSQLiteProjectRepo(database))
	tasks := NewSQLiteTaskRepo(database)
	meetings := NewSQLiteMeetingRepo(database)
	ctx := context.Background()

	parent := testutil.NewTestTask(proj.ID, "Epic")
	require.NoError(t, tasks.Create(ctx, parent))
	ref := domain.ItemRef{Tag: domain.TagTask, ID: parent.ID}

	child := testutil.NewTestTask(proj.ID, "Story", testutil.WithTaskParent(ref))
	require.NoError(t, tasks.Create(ctx, child))
	review := testutil.NewTestMeeting(proj.ID, "Review", testutil.WithMeetingParent(ref))
	require.NoError(t, meetings.Create(ctx, review))
	// Same id, different tag: must survive.
	other := testutil.NewTestMeeting(proj.ID, "Other", testutil.WithMeetingParent(domain.ItemRef{Tag: domain.TagMeeting, ID: parent.ID}))
	require.NoError(t, meetings.Create(ctx, other))

	uow := testutil.NewTestUoW(database)
	var cleared int64
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, store := range []ItemStore{NewSQLiteTaskRepo(tx), NewSQLiteMeetingRepo(tx)} {
			n, err := store.ClearLinksTo(ctx, ref)
			if err != nil {
				return err
			}
			cleared += n
		}
		return NewSQLiteTaskRepo(tx).DeleteItem(ctx, parent.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	fetchedChild, err := tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, fetchedChild.Parent)

	fetchedOther, err := meetings.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetchedOther.Parent)
}

func TestClearLinksTo_RollbackKeepsLinks(t *testing.T) {
	database := testutil.NewTestDB(t)
	proj := setupProject(t, NewSQLiteProjectRepo(database))
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	parent := testutil.NewTestTask(proj.ID, "Epic")
	require.NoError(t, tasks.Create(ctx, parent))
	ref := domain.ItemRef{Tag: domain.TagTask, ID: parent.ID}
	child := testutil.NewTestTask(proj.ID, "Story", testutil.WithTaskParent(ref))
	require.NoError(t, tasks.Create(ctx, child))

	injected := errors.New("injected")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := NewSQLiteTaskRepo(tx).ClearLinksTo(ctx, ref); err != nil {
			return err
		}
		return NewSQLiteTaskRepo(tx).DeleteItem(ctx, parent.ID)
	})
	assert.ErrorIs(t, err, injected)

	fetched, err := tasks.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Parent)
	assert.Equal(t, ref, fetched.Parent.Ref())

	_, err = tasks.GetByID(ctx, parent.ID)
	assert.NoError(t, err)
}
