// Package user provides user and role value types and pure functions.
package user

import (
	"sort"
	"time"
)

// User represents an account (value type). PasswordHash is internal and
// must never be serialized outward.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Name         string
	Email        string
	Status       string // "active", "suspended"
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Role groups permission strings under a name.
type Role struct {
	ID          string
	Name        string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Membership is the user↔role join row.
type Membership struct {
	UserID    string
	RoleID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Permissions flattens role permissions into a sorted, deduplicated list.
// This is a PURE function.
func Permissions(roles []Role) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range roles {
		for _, p := range r.Permissions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out
}

// RoleNames lists the role names in declaration order.
func RoleNames(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.Name)
	}
	return out
}
