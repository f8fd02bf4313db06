package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, title, responsible, start_date, due_date, progress,
		color, icon, parent_type, parent_id, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Tag() string { return domain.TagTask }

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	now := time.Now().UTC().Truncate(time.Second)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	parentType, parentID := parentLinkValues(t.Parent)

	query := `INSERT INTO tasks (project_id, title, responsible, start_date, due_date, progress,
		color, icon, parent_type, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		t.Title,
		t.Responsible,
		nullableTimeToString(t.StartDate, domain.DateLayout),
		nullableTimeToString(t.DueDate, domain.DateLayout),
		t.ProgressPercent(),
		t.Color,
		t.Icon,
		parentType,
		parentID,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := r.scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	parentType, parentID := parentLinkValues(t.Parent)

	query := `UPDATE tasks SET title = ?, responsible = ?, start_date = ?, due_date = ?, progress = ?,
		color = ?, icon = ?, parent_type = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Responsible,
		nullableTimeToString(t.StartDate, domain.DateLayout),
		nullableTimeToString(t.DueDate, domain.DateLayout),
		t.ProgressPercent(),
		t.Color,
		t.Icon,
		parentType,
		parentID,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("task %d", t.ID))
}

// UpdateProgress stores progress clamped to 0..100.
func (r *SQLiteTaskRepo) UpdateProgress(ctx context.Context, id int64, progress int) error {
	progress = min(100, max(0, progress))
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET progress = ?, updated_at = ? WHERE id = ?`, progress, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task progress: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("task %d", id))
}

func (r *SQLiteTaskRepo) DeleteItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("task %d", id))
}

func (r *SQLiteTaskRepo) ListScheduleItems(ctx context.Context, projectID string) ([]*domain.ScheduleItem, error) {
	tasks, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.ScheduleItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, t.ScheduleItem())
	}
	return items, nil
}

// Lookup finds a task by id for parent resolution.
func (r *SQLiteTaskRepo) Lookup(ctx context.Context, id int64) (*domain.ScheduleItem, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrParentNotFound, err)
		}
		return nil, err
	}
	return t.ScheduleItem(), nil
}

func (r *SQLiteTaskRepo) SaveParentLink(ctx context.Context, id int64, link *domain.ParentLink) error {
	return saveParentLink(ctx, r.db, "tasks", id, link)
}

func (r *SQLiteTaskRepo) ClearLinksTo(ctx context.Context, ref domain.ItemRef) (int64, error) {
	return clearLinksTo(ctx, r.db, "tasks", ref)
}

func (r *SQLiteTaskRepo) scanTask(row scanner) (*domain.Task, error) {
	var t domain.Task
	var startStr, dueStr, parentType sql.NullString
	var parentID sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Responsible, &startStr, &dueStr, &t.Progress,
		&t.Color, &t.Icon, &parentType, &parentID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.StartDate = parseNullableTime(startStr, domain.DateLayout)
	t.DueDate = parseNullableTime(dueStr, domain.DateLayout)
	t.Parent = parseParentLink(parentType, parentID)
	t.CreatedAt, t.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing task timestamps: %w", err)
	}
	return &t, nil
}
