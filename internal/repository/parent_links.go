package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// saveParentLink writes (or clears, when link is nil) one row's link. The
// table name is always one of db.ItemTables, never user input.
func saveParentLink(ctx context.Context, conn db.DBTX, table string, id int64, link *domain.ParentLink) error {
	parentType, parentID := parentLinkValues(link)
	res, err := conn.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET parent_type = ?, parent_id = ?, updated_at = ? WHERE id = ?`, table),
		parentType, parentID, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("saving %s parent link: %w", table, err)
	}
	return requireAffected(res, fmt.Sprintf("%s row %d", table, id))
}

func clearLinksTo(ctx context.Context, conn db.DBTX, table string, ref domain.ItemRef) (int64, error) {
	res, err := conn.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET parent_type = NULL, parent_id = NULL, updated_at = ?
			WHERE parent_type = ? AND parent_id = ?`, table),
		nowUTC(), ref.Tag, ref.ID)
	if err != nil {
		return 0, fmt.Errorf("clearing %s links to %s: %w", table, ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}
	return n, nil
}
