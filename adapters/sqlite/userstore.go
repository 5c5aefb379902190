package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/ports"
)

// UserStore implements ports.UserStore using SQLite.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new SQLite user store.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

var userTable = table[user.User]{
	name:    "users",
	columns: []string{"id", "username", "password_hash", "name", "email", "status", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (user.User, error) {
		var u user.User
		var name, email sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &name, &email, &u.Status,
			&u.CreatedAt, &u.UpdatedAt, &deleted); err != nil {
			return u, err
		}
		u.Name = strValue(name)
		u.Email = strValue(email)
		u.DeletedAt = timePtr(deleted)
		return u, nil
	},
	args: func(u user.User, now time.Time) []any {
		if u.CreatedAt.IsZero() {
			u.CreatedAt = now
		}
		return []any{u.ID, u.Username, u.PasswordHash, nullString(u.Name),
			nullString(u.Email), u.Status, u.CreatedAt, now, nullTime(u.DeletedAt)}
	},
	filters:  map[string]string{"username": "username", "status": "status", "email": "email"},
	sortable: map[string]bool{"username": true, "created_at": true},
}

func (s *UserStore) Find(ctx context.Context, id string) (assoc.Lookup[user.User], error) {
	return userTable.find(ctx, s.db, id)
}

// GetByUsername retrieves a user by unique username. Soft-deleted accounts
// do not match, so a released username can be registered again.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (assoc.Lookup[user.User], error) {
	row := s.db.QueryRowContext(ctx,
		userTable.selectClause()+" WHERE username = ? AND deleted_at IS NULL", username)
	u, err := userTable.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return assoc.None[user.User](), nil
	}
	if err != nil {
		return assoc.None[user.User](), err
	}
	return assoc.Found(u), nil
}

func (s *UserStore) List(ctx context.Context, q ports.ListQuery) ([]user.User, error) {
	return userTable.list(ctx, s.db, q)
}

func (s *UserStore) Create(ctx context.Context, u user.User) error {
	return userTable.create(ctx, s.db, u)
}

func (s *UserStore) Update(ctx context.Context, u user.User) error {
	return userTable.update(ctx, s.db, u)
}

func (s *UserStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[user.User], error) {
	return userTable.delete(ctx, s.db, id, force)
}

var _ ports.UserStore = (*UserStore)(nil)
