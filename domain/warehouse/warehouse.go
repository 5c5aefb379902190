// Package warehouse provides warehouse value types.
package warehouse

import "time"

// Warehouse represents a storage location (value type).
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// StockLine is the warehouse↔material join row: stock level and price are
// per-warehouse attributes, distinct from the material's base price.
type StockLine struct {
	WarehouseID string
	MaterialID  string
	Stock       int
	Price       int64 // cents
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// StockPatch carries the join-row attributes an update may change.
// Nil fields are left untouched.
type StockPatch struct {
	Stock *int
	Price *int64
}
