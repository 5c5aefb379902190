// Package service provides the service value type.
package service

import "time"

// Service represents a billable unit of work (value type). Price is the
// base price; per-quote overrides live on the quote's join row.
type Service struct {
	ID          string
	Name        string
	Description string
	Price       int64 // cents
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
