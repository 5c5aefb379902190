package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/material"
	"github.com/quoteflow/quoteflow/ports"
)

// MaterialStore implements ports.MaterialStore using SQLite.
type MaterialStore struct {
	db *DB
}

// NewMaterialStore creates a new SQLite material store.
func NewMaterialStore(db *DB) *MaterialStore {
	return &MaterialStore{db: db}
}

var materialTable = table[material.Material]{
	name:    "materials",
	columns: []string{"id", "name", "code", "price", "supplier_id", "category_id", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (material.Material, error) {
		var m material.Material
		var code, supplierID, categoryID sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&m.ID, &m.Name, &code, &m.Price, &supplierID, &categoryID,
			&m.CreatedAt, &m.UpdatedAt, &deleted); err != nil {
			return m, err
		}
		m.Code = strValue(code)
		m.SupplierID = strValue(supplierID)
		m.CategoryID = strValue(categoryID)
		m.DeletedAt = timePtr(deleted)
		return m, nil
	},
	args: func(m material.Material, now time.Time) []any {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		return []any{m.ID, m.Name, nullString(m.Code), m.Price,
			nullString(m.SupplierID), nullString(m.CategoryID),
			m.CreatedAt, now, nullTime(m.DeletedAt)}
	},
	filters: map[string]string{
		"name": "name", "code": "code", "price": "price",
		"supplier_id": "supplier_id", "category_id": "category_id",
	},
	sortable: map[string]bool{"name": true, "code": true, "price": true, "created_at": true},
}

func (s *MaterialStore) Find(ctx context.Context, id string) (assoc.Lookup[material.Material], error) {
	return materialTable.find(ctx, s.db, id)
}

func (s *MaterialStore) List(ctx context.Context, q ports.ListQuery) ([]material.Material, error) {
	return materialTable.list(ctx, s.db, q)
}

func (s *MaterialStore) Create(ctx context.Context, m material.Material) error {
	return materialTable.create(ctx, s.db, m)
}

func (s *MaterialStore) Update(ctx context.Context, m material.Material) error {
	return materialTable.update(ctx, s.db, m)
}

func (s *MaterialStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[material.Material], error) {
	return materialTable.delete(ctx, s.db, id, force)
}

var _ ports.MaterialStore = (*MaterialStore)(nil)
