package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/supplier"
	"github.com/quoteflow/quoteflow/ports"
)

// SupplierStore implements ports.SupplierStore using SQLite.
type SupplierStore struct {
	db *DB
}

// NewSupplierStore creates a new SQLite supplier store.
func NewSupplierStore(db *DB) *SupplierStore {
	return &SupplierStore{db: db}
}

var supplierTable = table[supplier.Supplier]{
	name:    "suppliers",
	columns: []string{"id", "name", "email", "phone", "address", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (supplier.Supplier, error) {
		var sp supplier.Supplier
		var email, phone, address sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&sp.ID, &sp.Name, &email, &phone, &address,
			&sp.CreatedAt, &sp.UpdatedAt, &deleted); err != nil {
			return sp, err
		}
		sp.Email = strValue(email)
		sp.Phone = strValue(phone)
		sp.Address = strValue(address)
		sp.DeletedAt = timePtr(deleted)
		return sp, nil
	},
	args: func(sp supplier.Supplier, now time.Time) []any {
		if sp.CreatedAt.IsZero() {
			sp.CreatedAt = now
		}
		return []any{sp.ID, sp.Name, nullString(sp.Email), nullString(sp.Phone),
			nullString(sp.Address), sp.CreatedAt, now, nullTime(sp.DeletedAt)}
	},
	filters:  map[string]string{"name": "name", "created_at": "created_at"},
	sortable: map[string]bool{"name": true, "created_at": true},
}

func (s *SupplierStore) Find(ctx context.Context, id string) (assoc.Lookup[supplier.Supplier], error) {
	return supplierTable.find(ctx, s.db, id)
}

func (s *SupplierStore) List(ctx context.Context, q ports.ListQuery) ([]supplier.Supplier, error) {
	return supplierTable.list(ctx, s.db, q)
}

func (s *SupplierStore) Create(ctx context.Context, sp supplier.Supplier) error {
	return supplierTable.create(ctx, s.db, sp)
}

func (s *SupplierStore) Update(ctx context.Context, sp supplier.Supplier) error {
	return supplierTable.update(ctx, s.db, sp)
}

func (s *SupplierStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[supplier.Supplier], error) {
	return supplierTable.delete(ctx, s.db, id, force)
}

var _ ports.SupplierStore = (*SupplierStore)(nil)
