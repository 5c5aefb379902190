// Package category provides the category value type.
package category

import "time"

// Category groups services and materials (value type).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
