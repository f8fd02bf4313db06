package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// parentLinkValues splits a link into its two nullable columns.
func parentLinkValues(link *domain.ParentLink) (any, any) {
	if link == nil {
		return nil, nil
	}
	return link.ParentTypeTag, link.ParentID
}

// parseParentLink rebuilds a link from its columns. A half-set pair is
// treated as no link.
func parseParentLink(tag sql.NullString, id sql.NullInt64) *domain.ParentLink {
	if !tag.Valid || tag.String == "" || !id.Valid {
		return nil
	}
	return &domain.ParentLink{ParentTypeTag: tag.String, ParentID: id.Int64}
}

// parseTimestamps parses created_at / updated_at columns.
func parseTimestamps(createdAt, updatedAt string) (time.Time, time.Time, error) {
	c, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	u, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return c, u, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
