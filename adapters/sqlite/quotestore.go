package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/ports"
)

// QuoteStore implements ports.QuoteStore using SQLite.
type QuoteStore struct {
	db *DB
}

// NewQuoteStore creates a new SQLite quote store.
func NewQuoteStore(db *DB) *QuoteStore {
	return &QuoteStore{db: db}
}

var quoteTable = table[quote.Quote]{
	name:    "quotes",
	columns: []string{"id", "code", "customer_id", "salesman_id", "status", "notes", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (quote.Quote, error) {
		var q quote.Quote
		var code, notes sql.NullString
		var status string
		var deleted sql.NullTime
		if err := s.Scan(&q.ID, &code, &q.CustomerID, &q.SalesmanID, &status, &notes,
			&q.CreatedAt, &q.UpdatedAt, &deleted); err != nil {
			return q, err
		}
		q.Code = strValue(code)
		q.Status = quote.Status(status)
		q.Notes = strValue(notes)
		q.DeletedAt = timePtr(deleted)
		return q, nil
	},
	args: func(q quote.Quote, now time.Time) []any {
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		return []any{q.ID, nullString(q.Code), q.CustomerID, q.SalesmanID,
			string(q.Status), nullString(q.Notes), q.CreatedAt, now, nullTime(q.DeletedAt)}
	},
	filters: map[string]string{
		"code": "code", "customer_id": "customer_id", "salesman_id": "salesman_id",
		"status": "status", "created_at": "created_at",
	},
	sortable: map[string]bool{"code": true, "status": true, "created_at": true, "updated_at": true},
}

func (s *QuoteStore) Find(ctx context.Context, id string) (assoc.Lookup[quote.Quote], error) {
	return quoteTable.find(ctx, s.db, id)
}

func (s *QuoteStore) List(ctx context.Context, q ports.ListQuery) ([]quote.Quote, error) {
	return quoteTable.list(ctx, s.db, q)
}

func (s *QuoteStore) Create(ctx context.Context, q quote.Quote) error {
	return quoteTable.create(ctx, s.db, q)
}

func (s *QuoteStore) Update(ctx context.Context, q quote.Quote) error {
	return quoteTable.update(ctx, s.db, q)
}

func (s *QuoteStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[quote.Quote], error) {
	return quoteTable.delete(ctx, s.db, id, force)
}

var _ ports.QuoteStore = (*QuoteStore)(nil)
