package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/ports"
)

// QuoteServiceStore implements ports.QuoteServiceStore using SQLite.
type QuoteServiceStore struct {
	db *DB
}

// NewQuoteServiceStore creates a new SQLite quote-service join store.
func NewQuoteServiceStore(db *DB) *QuoteServiceStore {
	return &QuoteServiceStore{db: db}
}

var quoteServiceJoin = joinTable[quote.ServiceLine]{
	name:      "quote_services",
	parentCol: "quote_id",
	childCol:  "service_id",
	columns:   []string{"quote_id", "service_id", "quantity", "price", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (quote.ServiceLine, error) {
		var l quote.ServiceLine
		var deleted sql.NullTime
		if err := s.Scan(&l.QuoteID, &l.ServiceID, &l.Quantity, &l.Price,
			&l.CreatedAt, &l.UpdatedAt, &deleted); err != nil {
			return l, err
		}
		l.DeletedAt = timePtr(deleted)
		return l, nil
	},
}

func (s *QuoteServiceStore) List(ctx context.Context, quoteID string, page assoc.Page) ([]quote.ServiceLine, error) {
	return quoteServiceJoin.list(ctx, s.db, quoteID, page)
}

// Add creates one line per service id, priced from the service's current
// base price. Re-adding a soft-deleted line revives it; its override
// price and quantity survive.
func (s *QuoteServiceStore) Add(ctx context.Context, quoteID string, serviceIDs []string) ([]quote.ServiceLine, error) {
	now := time.Now().UTC()
	out := make([]quote.ServiceLine, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO quote_services (quote_id, service_id, quantity, price, created_at, updated_at)
			 VALUES (?, ?, 1, COALESCE((SELECT price FROM services WHERE id = ?), 0), ?, ?)
			 ON CONFLICT(quote_id, service_id)
			 DO UPDATE SET deleted_at = NULL, updated_at = excluded.updated_at`,
			quoteID, serviceID, serviceID, now, now)
		if err != nil {
			return nil, err
		}
		line, err := quoteServiceJoin.get(ctx, s.db, quoteID, serviceID)
		if err != nil {
			return nil, err
		}
		if v, ok := line.Get(); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *QuoteServiceStore) Get(ctx context.Context, quoteID, serviceID string) (assoc.Lookup[quote.ServiceLine], error) {
	return quoteServiceJoin.get(ctx, s.db, quoteID, serviceID)
}

// Update mutates the line's own attributes only; the service record is
// never touched.
func (s *QuoteServiceStore) Update(ctx context.Context, quoteID, serviceID string, patch quote.LinePatch) (quote.ServiceLine, error) {
	var zero quote.ServiceLine
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if patch.Quantity != nil {
		set = append(set, "quantity = ?")
		args = append(args, *patch.Quantity)
	}
	if patch.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *patch.Price)
	}
	args = append(args, quoteID, serviceID)

	result, err := s.db.ExecContext(ctx,
		"UPDATE quote_services SET "+strings.Join(set, ", ")+
			" WHERE quote_id = ? AND service_id = ? AND deleted_at IS NULL", args...)
	if err != nil {
		return zero, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return zero, err
	}
	if rows == 0 {
		return zero, ErrNotFound
	}

	line, err := quoteServiceJoin.get(ctx, s.db, quoteID, serviceID)
	if err != nil {
		return zero, err
	}
	v, _ := line.Get()
	return v, nil
}

func (s *QuoteServiceStore) SoftDelete(ctx context.Context, quoteID, serviceID string) (quote.ServiceLine, error) {
	return quoteServiceJoin.softDelete(ctx, s.db, quoteID, serviceID)
}

func (s *QuoteServiceStore) HardDelete(ctx context.Context, quoteID, serviceID string) error {
	return quoteServiceJoin.hardDelete(ctx, s.db, quoteID, serviceID)
}

var _ ports.QuoteServiceStore = (*QuoteServiceStore)(nil)
