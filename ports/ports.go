// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/category"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/domain/material"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/domain/supplier"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/domain/warehouse"
	"github.com/quoteflow/quoteflow/domain/worker"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	// Hash generates a hash from plaintext.
	Hash(plaintext string) ([]byte, error)
	// Compare checks if plaintext matches hash.
	Compare(hash []byte, plaintext string) bool
}

// TokenClaims carries the identity embedded in an issued token.
type TokenClaims struct {
	Subject     string
	Roles       []string
	Permissions []string
}

// TokenService issues and verifies signed tokens.
type TokenService interface {
	Issue(userID string, roles, permissions []string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*TokenClaims, error)
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// Sentinel errors every store implementation returns, so callers can
// branch without knowing the backing engine.
var (
	// ErrNotFound reports that a mutation targeted a missing record.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate reports a uniqueness violation.
	ErrDuplicate = errors.New("already exists")
)

// ListQuery bounds and filters a resource listing. Filters hold sanitized
// values keyed by field name: either a literal or an operator map produced
// by the schema engine ({"gte": ...}, {"like": ...}).
type ListQuery struct {
	Limit   int
	Offset  int
	Sort    []string
	Filters map[string]any
}

// Store is the shape every flat resource store implements.
type Store[T any] interface {
	// Find retrieves a record by primary key. Absence is a Lookup miss,
	// not an error; callers decide whether a miss should fail.
	Find(ctx context.Context, id string) (assoc.Lookup[T], error)

	// List returns records matching the query, excluding soft-deleted rows.
	List(ctx context.Context, q ListQuery) ([]T, error)

	// Create stores a new record.
	Create(ctx context.Context, v T) error

	// Update replaces an existing record's attributes.
	Update(ctx context.Context, v T) error

	// Delete soft-deletes by default and returns the stamped record;
	// force=true removes the row and returns the empty variant.
	Delete(ctx context.Context, id string, force bool) (assoc.Lookup[T], error)
}

// JoinStore is the shape every parent↔child join store implements. J is the
// join row, U the typed patch for the join row's own attributes.
type JoinStore[J, U any] interface {
	List(ctx context.Context, parentID string, page assoc.Page) ([]J, error)
	Add(ctx context.Context, parentID string, childIDs []string) ([]J, error)
	Get(ctx context.Context, parentID, childID string) (assoc.Lookup[J], error)
	Update(ctx context.Context, parentID, childID string, patch U) (J, error)
	SoftDelete(ctx context.Context, parentID, childID string) (J, error)
	HardDelete(ctx context.Context, parentID, childID string) error
}

// NoPatch is the update type for join rows with no mutable attributes.
type NoPatch struct{}

// Per-resource store names, for readable constructor signatures.
type (
	CustomerStore  = Store[customer.Customer]
	WorkerStore    = Store[worker.Worker]
	SupplierStore  = Store[supplier.Supplier]
	CategoryStore  = Store[category.Category]
	ServiceStore   = Store[service.Service]
	MaterialStore  = Store[material.Material]
	WarehouseStore = Store[warehouse.Warehouse]
	QuoteStore     = Store[quote.Quote]
	RoleStore      = Store[user.Role]
)

// UserStore adds username lookup on top of the generic store shape.
type UserStore interface {
	Store[user.User]

	// GetByUsername retrieves a user by unique username.
	GetByUsername(ctx context.Context, username string) (assoc.Lookup[user.User], error)
}

// RoleReader loads the roles attached to a user, for claims building.
type RoleReader interface {
	ForUser(ctx context.Context, userID string) ([]user.Role, error)
}

// Join store names per relationship.
type (
	QuoteServiceStore   = JoinStore[quote.ServiceLine, quote.LinePatch]
	QuoteMaterialStore  = JoinStore[quote.MaterialLine, quote.LinePatch]
	WarehouseStockStore = JoinStore[warehouse.StockLine, warehouse.StockPatch]
	UserRoleStore       = JoinStore[user.Membership, NoPatch]
)
