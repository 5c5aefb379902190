package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/warehouse"
	"github.com/quoteflow/quoteflow/ports"
)

// WarehouseStockStore implements ports.WarehouseStockStore using SQLite.
type WarehouseStockStore struct {
	db *DB
}

// NewWarehouseStockStore creates a new SQLite warehouse-material join store.
func NewWarehouseStockStore(db *DB) *WarehouseStockStore {
	return &WarehouseStockStore{db: db}
}

var warehouseStockJoin = joinTable[warehouse.StockLine]{
	name:      "warehouse_materials",
	parentCol: "warehouse_id",
	childCol:  "material_id",
	columns:   []string{"warehouse_id", "material_id", "stock", "price", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (warehouse.StockLine, error) {
		var l warehouse.StockLine
		var deleted sql.NullTime
		if err := s.Scan(&l.WarehouseID, &l.MaterialID, &l.Stock, &l.Price,
			&l.CreatedAt, &l.UpdatedAt, &deleted); err != nil {
			return l, err
		}
		l.DeletedAt = timePtr(deleted)
		return l, nil
	},
}

func (s *WarehouseStockStore) List(ctx context.Context, warehouseID string, page assoc.Page) ([]warehouse.StockLine, error) {
	return warehouseStockJoin.list(ctx, s.db, warehouseID, page)
}

// Add registers materials in a warehouse with zero stock, priced from the
// material's base price. Re-adding a soft-deleted line revives it.
func (s *WarehouseStockStore) Add(ctx context.Context, warehouseID string, materialIDs []string) ([]warehouse.StockLine, error) {
	now := time.Now().UTC()
	out := make([]warehouse.StockLine, 0, len(materialIDs))
	for _, materialID := range materialIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO warehouse_materials (warehouse_id, material_id, stock, price, created_at, updated_at)
			 VALUES (?, ?, 0, COALESCE((SELECT price FROM materials WHERE id = ?), 0), ?, ?)
			 ON CONFLICT(warehouse_id, material_id)
			 DO UPDATE SET deleted_at = NULL, updated_at = excluded.updated_at`,
			warehouseID, materialID, materialID, now, now)
		if err != nil {
			return nil, err
		}
		line, err := warehouseStockJoin.get(ctx, s.db, warehouseID, materialID)
		if err != nil {
			return nil, err
		}
		if v, ok := line.Get(); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *WarehouseStockStore) Get(ctx context.Context, warehouseID, materialID string) (assoc.Lookup[warehouse.StockLine], error) {
	return warehouseStockJoin.get(ctx, s.db, warehouseID, materialID)
}

// Update mutates the stock line's own attributes only; the material record
// is never touched.
func (s *WarehouseStockStore) Update(ctx context.Context, warehouseID, materialID string, patch warehouse.StockPatch) (warehouse.StockLine, error) {
	var zero warehouse.StockLine
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if patch.Stock != nil {
		set = append(set, "stock = ?")
		args = append(args, *patch.Stock)
	}
	if patch.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *patch.Price)
	}
	args = append(args, warehouseID, materialID)

	result, err := s.db.ExecContext(ctx,
		"UPDATE warehouse_materials SET "+strings.Join(set, ", ")+
			" WHERE warehouse_id = ? AND material_id = ? AND deleted_at IS NULL", args...)
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

	line, err := warehouseStockJoin.get(ctx, s.db, warehouseID, materialID)
	if err != nil {
		return zero, err
	}
	v, _ := line.Get()
	return v, nil
}

func (s *WarehouseStockStore) SoftDelete(ctx context.Context, warehouseID, materialID string) (warehouse.StockLine, error) {
	return warehouseStockJoin.softDelete(ctx, s.db, warehouseID, materialID)
}

func (s *WarehouseStockStore) HardDelete(ctx context.Context, warehouseID, materialID string) error {
	return warehouseStockJoin.hardDelete(ctx, s.db, warehouseID, materialID)
}

var _ ports.WarehouseStockStore = (*WarehouseStockStore)(nil)
