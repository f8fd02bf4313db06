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

const meetingColumns = `id, project_id, subject, organizer, meeting_date, end_date, location,
		color, icon, parent_type, parent_id, created_at, updated_at`

// SQLiteMeetingRepo implements MeetingRepo using a SQLite database.
type SQLiteMeetingRepo struct {
	db db.DBTX
}

// NewSQLiteMeetingRepo creates a new SQLiteMeetingRepo.
func NewSQLiteMeetingRepo(conn db.DBTX) *SQLiteMeetingRepo {
	return &SQLiteMeetingRepo{db: conn}
}

func (r *SQLiteMeetingRepo) Tag() string { return domain.TagMeeting }

func (r *SQLiteMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	now := time.Now().UTC().Truncate(time.Second)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	parentType, parentID := parentLinkValues(m.Parent)

	query := `INSERT INTO meetings (project_id, subject, organizer, meeting_date, end_date, location,
		color, icon, parent_type, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		m.ProjectID,
		m.Subject,
		m.Organizer,
		nullableTimeToString(m.MeetingDate, domain.DateLayout),
		nullableTimeToString(m.EndDate, domain.DateLayout),
		m.Location,
		m.Color,
		m.Icon,
		parentType,
		parentID,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting meeting: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading meeting id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *SQLiteMeetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	m, err := r.scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meeting %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *SQLiteMeetingRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*domain.Meeting
	for rows.Next() {
		m, err := r.scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meetings: %w", err)
	}
	return meetings, nil
}

func (r *SQLiteMeetingRepo) Update(ctx context.Context, m *domain.Meeting) error {
	m.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	parentType, parentID := parentLinkValues(m.Parent)

	query := `UPDATE meetings SET subject = ?, organizer = ?, meeting_date = ?, end_date = ?, location = ?,
		color = ?, icon = ?, parent_type = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Subject,
		m.Organizer,
		nullableTimeToString(m.MeetingDate, domain.DateLayout),
		nullableTimeToString(m.EndDate, domain.DateLayout),
		m.Location,
		m.Color,
		m.Icon,
		parentType,
		parentID,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating meeting: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("meeting %d", m.ID))
}

func (r *SQLiteMeetingRepo) DeleteItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("meeting %d", id))
}

func (r *SQLiteMeetingRepo) ListScheduleItems(ctx context.Context, projectID string) ([]*domain.ScheduleItem, error) {
	meetings, err := r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.ScheduleItem, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, m.ScheduleItem())
	}
	return items, nil
}

// Lookup finds a meeting by id for parent resolution.
func (r *SQLiteMeetingRepo) Lookup(ctx context.Context, id int64) (*domain.ScheduleItem, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrParentNotFound, err)
		}
		return nil, err
	}
	return m.ScheduleItem(), nil
}

func (r *SQLiteMeetingRepo) SaveParentLink(ctx context.Context, id int64, link *domain.ParentLink) error {
	return saveParentLink(ctx, r.db, "meetings", id, link)
}

func (r *SQLiteMeetingRepo) ClearLinksTo(ctx context.Context, ref domain.ItemRef) (int64, error) {
	return clearLinksTo(ctx, r.db, "meetings", ref)
}

func (r *SQLiteMeetingRepo) scanMeeting(row scanner) (*domain.Meeting, error) {
	var m domain.Meeting
	var dateStr, endStr, parentType sql.NullString
	var parentID sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&m.ID, &m.ProjectID, &m.Subject, &m.Organizer, &dateStr, &endStr, &m.Location,
		&m.Color, &m.Icon, &parentType, &parentID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning meeting: %w", err)
	}

	m.MeetingDate = parseNullableTime(dateStr, domain.DateLayout)
	m.EndDate = parseNullableTime(endStr, domain.DateLayout)
	m.Parent = parseParentLink(parentType, parentID)
	m.CreatedAt, m.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing meeting timestamps: %w", err)
	}
	return &m, nil
}
