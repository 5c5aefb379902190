package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/category"
	"github.com/quoteflow/quoteflow/ports"
)

// CategoryStore implements ports.CategoryStore using SQLite.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore creates a new SQLite category store.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

var categoryTable = table[category.Category]{
	name:    "categories",
	columns: []string{"id", "name", "description", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (category.Category, error) {
		var c category.Category
		var description sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&c.ID, &c.Name, &description,
			&c.CreatedAt, &c.UpdatedAt, &deleted); err != nil {
			return c, err
		}
		c.Description = strValue(description)
		c.DeletedAt = timePtr(deleted)
		return c, nil
	},
	args: func(c category.Category, now time.Time) []any {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		return []any{c.ID, c.Name, nullString(c.Description), c.CreatedAt, now, nullTime(c.DeletedAt)}
	},
	filters:  map[string]string{"name": "name"},
	sortable: map[string]bool{"name": true, "created_at": true},
}

func (s *CategoryStore) Find(ctx context.Context, id string) (assoc.Lookup[category.Category], error) {
	return categoryTable.find(ctx, s.db, id)
}

func (s *CategoryStore) List(ctx context.Context, q ports.ListQuery) ([]category.Category, error) {
	return categoryTable.list(ctx, s.db, q)
}

func (s *CategoryStore) Create(ctx context.Context, c category.Category) error {
	return categoryTable.create(ctx, s.db, c)
}

func (s *CategoryStore) Update(ctx context.Context, c category.Category) error {
	return categoryTable.update(ctx, s.db, c)
}

func (s *CategoryStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[category.Category], error) {
	return categoryTable.delete(ctx, s.db, id, force)
}

var _ ports.CategoryStore = (*CategoryStore)(nil)
