package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/ports"
)

// CustomerStore implements ports.CustomerStore using SQLite.
type CustomerStore struct {
	db *DB
}

// NewCustomerStore creates a new SQLite customer store.
func NewCustomerStore(db *DB) *CustomerStore {
	return &CustomerStore{db: db}
}

var customerTable = table[customer.Customer]{
	name:    "customers",
	columns: []string{"id", "name", "email", "phone", "address", "notes", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (customer.Customer, error) {
		var c customer.Customer
		var email, phone, address, notes sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&c.ID, &c.Name, &email, &phone, &address, &notes,
			&c.CreatedAt, &c.UpdatedAt, &deleted); err != nil {
			return c, err
		}
		c.Email = strValue(email)
		c.Phone = strValue(phone)
		c.Address = strValue(address)
		c.Notes = strValue(notes)
		c.DeletedAt = timePtr(deleted)
		return c, nil
	},
	args: func(c customer.Customer, now time.Time) []any {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		return []any{c.ID, c.Name, nullString(c.Email), nullString(c.Phone),
			nullString(c.Address), nullString(c.Notes), c.CreatedAt, now, nullTime(c.DeletedAt)}
	},
	filters:  map[string]string{"name": "name", "email": "email", "created_at": "created_at"},
	sortable: map[string]bool{"name": true, "created_at": true, "updated_at": true},
}

func (s *CustomerStore) Find(ctx context.Context, id string) (assoc.Lookup[customer.Customer], error) {
	return customerTable.find(ctx, s.db, id)
}

func (s *CustomerStore) List(ctx context.Context, q ports.ListQuery) ([]customer.Customer, error) {
	return customerTable.list(ctx, s.db, q)
}

func (s *CustomerStore) Create(ctx context.Context, c customer.Customer) error {
	return customerTable.create(ctx, s.db, c)
}

func (s *CustomerStore) Update(ctx context.Context, c customer.Customer) error {
	return customerTable.update(ctx, s.db, c)
}

func (s *CustomerStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[customer.Customer], error) {
	return customerTable.delete(ctx, s.db, id, force)
}

var _ ports.CustomerStore = (*CustomerStore)(nil)
