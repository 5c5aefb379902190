// Package worker provides the worker value type.
package worker

import "time"

// Worker represents a field-service employee (value type).
type Worker struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Position  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
