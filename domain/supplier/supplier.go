// Package supplier provides the supplier value type.
package supplier

import "time"

// Supplier represents a material vendor (value type).
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
