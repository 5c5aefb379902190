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

// QuoteMaterialStore implements ports.QuoteMaterialStore using SQLite.
type QuoteMaterialStore struct {
	db *DB
}

// NewQuoteMaterialStore creates a new SQLite quote-material join store.
func NewQuoteMaterialStore(db *DB) *QuoteMaterialStore {
	return &QuoteMaterialStore{db: db}
}

var quoteMaterialJoin = joinTable[quote.MaterialLine]{
	name:      "quote_materials",
	parentCol: "quote_id",
	childCol:  "material_id",
	columns:   []string{"quote_id", "material_id", "quantity", "price", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (quote.MaterialLine, error) {
		var l quote.MaterialLine
		var deleted sql.NullTime
		if err := s.Scan(&l.QuoteID, &l.MaterialID, &l.Quantity, &l.Price,
			&l.CreatedAt, &l.UpdatedAt, &deleted); err != nil {
			return l, err
		}
		l.DeletedAt = timePtr(deleted)
		return l, nil
	},
}

func (s *QuoteMaterialStore) List(ctx context.Context, quoteID string, page assoc.Page) ([]quote.MaterialLine, error) {
	return quoteMaterialJoin.list(ctx, s.db, quoteID, page)
}

// Add creates one line per material id, priced from the material's current
// base price. Re-adding a soft-deleted line revives it.
func (s *QuoteMaterialStore) Add(ctx context.Context, quoteID string, materialIDs []string) ([]quote.MaterialLine, error) {
	now := time.Now().UTC()
	out := make([]quote.MaterialLine, 0, len(materialIDs))
	for _, materialID := range materialIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO quote_materials (quote_id, material_id, quantity, price, created_at, updated_at)
			 VALUES (?, ?, 1, COALESCE((SELECT price FROM materials WHERE id = ?), 0), ?, ?)
			 ON CONFLICT(quote_id, material_id)
			 DO UPDATE SET deleted_at = NULL, updated_at = excluded.updated_at`,
			quoteID, materialID, materialID, now, now)
		if err != nil {
			return nil, err
		}
		line, err := quoteMaterialJoin.get(ctx, s.db, quoteID, materialID)
		if err != nil {
			return nil, err
		}
		if v, ok := line.Get(); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *QuoteMaterialStore) Get(ctx context.Context, quoteID, materialID string) (assoc.Lookup[quote.MaterialLine], error) {
	return quoteMaterialJoin.get(ctx, s.db, quoteID, materialID)
}

func (s *QuoteMaterialStore) Update(ctx context.Context, quoteID, materialID string, patch quote.LinePatch) (quote.MaterialLine, error) {
	var zero quote.MaterialLine
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
	args = append(args, quoteID, materialID)

	result, err := s.db.ExecContext(ctx,
		"UPDATE quote_materials SET "+strings.Join(set, ", ")+
			" WHERE quote_id = ? AND material_id = ? AND deleted_at IS NULL", args...)
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

	line, err := quoteMaterialJoin.get(ctx, s.db, quoteID, materialID)
	if err != nil {
		return zero, err
	}
	v, _ := line.Get()
	return v, nil
}

func (s *QuoteMaterialStore) SoftDelete(ctx context.Context, quoteID, materialID string) (quote.MaterialLine, error) {
	return quoteMaterialJoin.softDelete(ctx, s.db, quoteID, materialID)
}

func (s *QuoteMaterialStore) HardDelete(ctx context.Context, quoteID, materialID string) error {
	return quoteMaterialJoin.hardDelete(ctx, s.db, quoteID, materialID)
}

var _ ports.QuoteMaterialStore = (*QuoteMaterialStore)(nil)
