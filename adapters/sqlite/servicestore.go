package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/ports"
)

// ServiceStore implements ports.ServiceStore using SQLite.
type ServiceStore struct {
	db *DB
}

// NewServiceStore creates a new SQLite service store.
func NewServiceStore(db *DB) *ServiceStore {
	return &ServiceStore{db: db}
}

var serviceTable = table[service.Service]{
	name:    "services",
	columns: []string{"id", "name", "description", "price", "category_id", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (service.Service, error) {
		var sv service.Service
		var description, categoryID sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&sv.ID, &sv.Name, &description, &sv.Price, &categoryID,
			&sv.CreatedAt, &sv.UpdatedAt, &deleted); err != nil {
			return sv, err
		}
		sv.Description = strValue(description)
		sv.CategoryID = strValue(categoryID)
		sv.DeletedAt = timePtr(deleted)
		return sv, nil
	},
	args: func(sv service.Service, now time.Time) []any {
		if sv.CreatedAt.IsZero() {
			sv.CreatedAt = now
		}
		return []any{sv.ID, sv.Name, nullString(sv.Description), sv.Price,
			nullString(sv.CategoryID), sv.CreatedAt, now, nullTime(sv.DeletedAt)}
	},
	filters:  map[string]string{"name": "name", "price": "price", "category_id": "category_id"},
	sortable: map[string]bool{"name": true, "price": true, "created_at": true},
}

func (s *ServiceStore) Find(ctx context.Context, id string) (assoc.Lookup[service.Service], error) {
	return serviceTable.find(ctx, s.db, id)
}

func (s *ServiceStore) List(ctx context.Context, q ports.ListQuery) ([]service.Service, error) {
	return serviceTable.list(ctx, s.db, q)
}

func (s *ServiceStore) Create(ctx context.Context, sv service.Service) error {
	return serviceTable.create(ctx, s.db, sv)
}

func (s *ServiceStore) Update(ctx context.Context, sv service.Service) error {
	return serviceTable.update(ctx, s.db, sv)
}

func (s *ServiceStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[service.Service], error) {
	return serviceTable.delete(ctx, s.db, id, force)
}

var _ ports.ServiceStore = (*ServiceStore)(nil)
