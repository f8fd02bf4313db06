package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateNormalizeParentLinks(db); err != nil {
		return fmt.Errorf("normalizing parent links: %w", err)
	}
	return nil
}

// ItemTables lists every table that carries a weak parent link.
var ItemTables = []string{"tasks", "meetings"}

// migrateNormalizeParentLinks lowercases stored type tags and drops links
// where only one half of (parent_type, parent_id) is set. Idempotent.
func migrateNormalizeParentLinks(db *sql.DB) error {
	ctx := context.Background()
	for _, table := range ItemTables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(
			`UPDATE %s SET parent_type = LOWER(TRIM(parent_type))
			 WHERE parent_type IS NOT NULL AND parent_type != LOWER(TRIM(parent_type))`, table)); err != nil {
			return fmt.Errorf("lowercasing %s.parent_type: %w", table, err)
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf(
			`UPDATE %s SET parent_type = NULL, parent_id = NULL
			 WHERE (parent_type IS NULL OR parent_type = '') != (parent_id IS NULL)`, table)); err != nil {
			return fmt.Errorf("clearing half-set links in %s: %w", table, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		responsible TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		due_date    TEXT,
		progress    INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		color       TEXT NOT NULL DEFAULT '',
		parent_type TEXT,
		parent_id   INTEGER,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_type, parent_id)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		subject      TEXT NOT NULL,
		organizer    TEXT NOT NULL DEFAULT '',
		meeting_date TEXT,
		end_date     TEXT,
		color        TEXT NOT NULL DEFAULT '',
		parent_type  TEXT,
		parent_id    INTEGER,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_meetings_project ON meetings(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_parent ON meetings(parent_type, parent_id)`,

	// Add short_id column to projects
	`ALTER TABLE projects ADD COLUMN short_id TEXT NOT NULL DEFAULT ''`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	// Icons per item, and meeting locations
	`ALTER TABLE tasks ADD COLUMN icon TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE meetings ADD COLUMN icon TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE meetings ADD COLUMN location TEXT NOT NULL DEFAULT ''`,
}
