package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
)

// deleteItem clears every link naming ref in all stores and then deletes the
// item from its owner, in one transaction.
func deleteItem(ctx context.Context, uow db.UnitOfWork, stores repository.ItemStoresFunc, ref domain.ItemRef) (cleared int64, err error) {
	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cleared = 0
		var owner repository.ItemStore
		for _, store := range stores(tx) {
			n, err := store.ClearLinksTo(ctx, ref)
			if err != nil {
				return err
			}
			cleared += n
			if store.Tag() == ref.Tag {
				owner = store
			}
		}
		if owner == nil {
			return &domain.UnknownTypeTagError{Tag: ref.Tag}
		}
		return owner.DeleteItem(ctx, ref.ID)
	})
	return cleared, err
}

// checkDates rejects an inverted pair. Either bound may be missing.
func checkDates(start, end *time.Time) error {
	if start == nil || end == nil {
		return nil
	}
	if end.Before(*start) {
		return &domain.InvalidRangeError{
			Start:  *start,
			End:    *end,
			Reason: fmt.Sprintf("end %s is before start %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout)),
		}
	}
	return nil
}
