package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/warehouse"
	"github.com/quoteflow/quoteflow/ports"
)

// WarehouseStore implements ports.WarehouseStore using SQLite.
type WarehouseStore struct {
	db *DB
}

// NewWarehouseStore creates a new SQLite warehouse store.
func NewWarehouseStore(db *DB) *WarehouseStore {
	return &WarehouseStore{db: db}
}

var warehouseTable = table[warehouse.Warehouse]{
	name:    "warehouses",
	columns: []string{"id", "name", "address", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (warehouse.Warehouse, error) {
		var w warehouse.Warehouse
		var address sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&w.ID, &w.Name, &address,
			&w.CreatedAt, &w.UpdatedAt, &deleted); err != nil {
			return w, err
		}
		w.Address = strValue(address)
		w.DeletedAt = timePtr(deleted)
		return w, nil
	},
	args: func(w warehouse.Warehouse, now time.Time) []any {
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		return []any{w.ID, w.Name, nullString(w.Address), w.CreatedAt, now, nullTime(w.DeletedAt)}
	},
	filters:  map[string]string{"name": "name"},
	sortable: map[string]bool{"name": true, "created_at": true},
}

func (s *WarehouseStore) Find(ctx context.Context, id string) (assoc.Lookup[warehouse.Warehouse], error) {
	return warehouseTable.find(ctx, s.db, id)
}

func (s *WarehouseStore) List(ctx context.Context, q ports.ListQuery) ([]warehouse.Warehouse, error) {
	return warehouseTable.list(ctx, s.db, q)
}

func (s *WarehouseStore) Create(ctx context.Context, w warehouse.Warehouse) error {
	return warehouseTable.create(ctx, s.db, w)
}

func (s *WarehouseStore) Update(ctx context.Context, w warehouse.Warehouse) error {
	return warehouseTable.update(ctx, s.db, w)
}

func (s *WarehouseStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[warehouse.Warehouse], error) {
	return warehouseTable.delete(ctx, s.db, id, force)
}

var _ ports.WarehouseStore = (*WarehouseStore)(nil)
