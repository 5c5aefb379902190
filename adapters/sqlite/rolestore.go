package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/ports"
)

// RoleStore implements ports.RoleStore and ports.RoleReader using SQLite.
// Permissions are stored as a JSON array in a TEXT column.
type RoleStore struct {
	db *DB
}

// NewRoleStore creates a new SQLite role store.
func NewRoleStore(db *DB) *RoleStore {
	return &RoleStore{db: db}
}

var roleTable = table[user.Role]{
	name:    "roles",
	columns: []string{"id", "name", "permissions", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (user.Role, error) {
		var r user.Role
		var permissions string
		var deleted sql.NullTime
		if err := s.Scan(&r.ID, &r.Name, &permissions,
			&r.CreatedAt, &r.UpdatedAt, &deleted); err != nil {
			return r, err
		}
		if err := json.Unmarshal([]byte(permissions), &r.Permissions); err != nil {
			return r, err
		}
		r.DeletedAt = timePtr(deleted)
		return r, nil
	},
	args: func(r user.Role, now time.Time) []any {
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		permissions, _ := json.Marshal(r.Permissions)
		if r.Permissions == nil {
			permissions = []byte("[]")
		}
		return []any{r.ID, r.Name, string(permissions), r.CreatedAt, now, nullTime(r.DeletedAt)}
	},
	filters:  map[string]string{"name": "name"},
	sortable: map[string]bool{"name": true, "created_at": true},
}

func (s *RoleStore) Find(ctx context.Context, id string) (assoc.Lookup[user.Role], error) {
	return roleTable.find(ctx, s.db, id)
}

func (s *RoleStore) List(ctx context.Context, q ports.ListQuery) ([]user.Role, error) {
	return roleTable.list(ctx, s.db, q)
}

func (s *RoleStore) Create(ctx context.Context, r user.Role) error {
	return roleTable.create(ctx, s.db, r)
}

func (s *RoleStore) Update(ctx context.Context, r user.Role) error {
	return roleTable.update(ctx, s.db, r)
}

func (s *RoleStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[user.Role], error) {
	return roleTable.delete(ctx, s.db, id, force)
}

// ForUser loads the live roles attached to a user, for claims building.
func (s *RoleStore) ForUser(ctx context.Context, userID string) ([]user.Role, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.permissions, r.created_at, r.updated_at, r.deleted_at
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = ? AND ur.deleted_at IS NULL AND r.deleted_at IS NULL
		 ORDER BY ur.created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []user.Role
	for rows.Next() {
		r, err := roleTable.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var (
	_ ports.RoleStore  = (*RoleStore)(nil)
	_ ports.RoleReader = (*RoleStore)(nil)
)
