package repository

import "github.com/alexanderramin/ganttline/internal/db"

// ItemStoresFunc builds every item store over one connection or transaction.
type ItemStoresFunc func(conn db.DBTX) []ItemStore

// NewSQLiteItemStores returns the task and meeting stores, in chart fetch
// order, sharing conn.
func NewSQLiteItemStores(conn db.DBTX) []ItemStore {
	return []ItemStore{
		NewSQLiteTaskRepo(conn),
		NewSQLiteMeetingRepo(conn),
	}
}
