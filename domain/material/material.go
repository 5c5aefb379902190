// Package material provides the material value type.
package material

import "time"

// Material represents a purchasable good (value type). Price is the base
// price; per-warehouse stock and price live on the warehouse join row.
type Material struct {
	ID         string
	Name       string
	Code       string
	Price      int64 // cents
	SupplierID string
	CategoryID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
