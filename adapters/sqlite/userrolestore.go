package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/ports"
)

// UserRoleStore implements ports.UserRoleStore using SQLite. Memberships
// carry no attributes of their own, so Update is a lookup.
type UserRoleStore struct {
	db *DB
}

// NewUserRoleStore creates a new SQLite user-role join store.
func NewUserRoleStore(db *DB) *UserRoleStore {
	return &UserRoleStore{db: db}
}

var userRoleJoin = joinTable[user.Membership]{
	name:      "user_roles",
	parentCol: "user_id",
	childCol:  "role_id",
	columns:   []string{"user_id", "role_id", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (user.Membership, error) {
		var m user.Membership
		var deleted sql.NullTime
		if err := s.Scan(&m.UserID, &m.RoleID,
			&m.CreatedAt, &m.UpdatedAt, &deleted); err != nil {
			return m, err
		}
		m.DeletedAt = timePtr(deleted)
		return m, nil
	},
}

func (s *UserRoleStore) List(ctx context.Context, userID string, page assoc.Page) ([]user.Membership, error) {
	return userRoleJoin.list(ctx, s.db, userID, page)
}

// Add attaches roles to a user. Re-adding a soft-deleted membership
// revives it.
func (s *UserRoleStore) Add(ctx context.Context, userID string, roleIDs []string) ([]user.Membership, error) {
	now := time.Now().UTC()
	out := make([]user.Membership, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(user_id, role_id)
			 DO UPDATE SET deleted_at = NULL, updated_at = excluded.updated_at`,
			userID, roleID, now, now)
		if err != nil {
			return nil, err
		}
		m, err := userRoleJoin.get(ctx, s.db, userID, roleID)
		if err != nil {
			return nil, err
		}
		if v, ok := m.Get(); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *UserRoleStore) Get(ctx context.Context, userID, roleID string) (assoc.Lookup[user.Membership], error) {
	return userRoleJoin.get(ctx, s.db, userID, roleID)
}

func (s *UserRoleStore) Update(ctx context.Context, userID, roleID string, _ ports.NoPatch) (user.Membership, error) {
	m, err := userRoleJoin.get(ctx, s.db, userID, roleID)
	if err != nil {
		return user.Membership{}, err
	}
	v, ok := m.Get()
	if !ok {
		return user.Membership{}, ErrNotFound
	}
	return v, nil
}

func (s *UserRoleStore) SoftDelete(ctx context.Context, userID, roleID string) (user.Membership, error) {
	return userRoleJoin.softDelete(ctx, s.db, userID, roleID)
}

func (s *UserRoleStore) HardDelete(ctx context.Context, userID, roleID string) error {
	return userRoleJoin.hardDelete(ctx, s.db, userID, roleID)
}

var _ ports.UserRoleStore = (*UserRoleStore)(nil)
