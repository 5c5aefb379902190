// Package customer provides the customer value type.
package customer

import "time"

// Customer represents a client of the business (value type).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
