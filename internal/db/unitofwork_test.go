package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

const insertProject = `INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, 'x', 'x')`

// readName reads a project name inside its own transaction.
func readName(uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	var name string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT name FROM projects WHERE id = ?`, id).Scan(&name); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return name, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertProject, "p1", "Website")
		return err
	})
	require.NoError(t, err)

	name, found := readName(uow, "p1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Website", name)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertProject, "p2", "Mobile")
		if err != nil {
			return err
		}
		return fmt.Errorf("link clearing failed")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link clearing failed")

	_, found := readName(uow, "p2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertProject, "p3", "Infra")
			panic("boom")
		})
	})

	_, found := readName(uow, "p3")
	assert.False(t, found, "row should not exist after panic rollback")
}
