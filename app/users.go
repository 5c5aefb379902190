package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/pkg/apperr"
	"github.com/quoteflow/quoteflow/ports"
)

// UserService manages accounts and their role memberships. Creation checks
// username uniqueness before any hashing work; the bcrypt cost makes the
// ordering observable, so it is part of the contract.
type UserService struct {
	*Resource[user.User]

	users       ports.UserStore
	hasher      ports.Hasher
	memberships *assoc.Flow[user.User, user.Membership, ports.NoPatch]
}

// NewUserService creates a new user service.
func NewUserService(
	users ports.UserStore,
	roles ports.UserRoleStore,
	hasher ports.Hasher,
	idGen ports.IDGenerator,
	logger zerolog.Logger,
) *UserService {
	s := &UserService{
		Resource: NewResource("user", users, idGen,
			func(u user.User) string { return u.ID },
			func(u user.User, id string) user.User { u.ID = id; return u },
			logger),
		users:  users,
		hasher: hasher,
	}
	s.memberships = &assoc.Flow[user.User, user.Membership, ports.NoPatch]{
		ParentLabel: "user",
		ChildLabel:  "role",
		FindParent:  users.Find,
		ListJoins:   roles.List,
		AddJoins:    roles.Add,
		GetJoin:     roles.Get,
		UpdateJoin:  roles.Update,
		SoftDelete:  roles.SoftDelete,
		HardDelete:  roles.HardDelete,
	}
	return s
}

// Create registers an account. A taken username fails Forbidden before the
// password is hashed.
func (s *UserService) Create(ctx context.Context, u user.User, password string) (user.User, error) {
	var zero user.User

	existing, err := s.users.GetByUsername(ctx, u.Username)
	if err != nil {
		return zero, err
	}
	if existing.Ok() {
		return zero, apperr.Forbidden("username already taken")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return zero, err
	}
	u.PasswordHash = hash
	if u.Status == "" {
		u.Status = "active"
	}
	// The uniqueness pre-check races with concurrent creates; the unique
	// index is the backstop and maps to the same Forbidden answer.
	return s.Resource.Create(ctx, u)
}

// Update merges changed attributes; a non-nil password is re-hashed.
func (s *UserService) Update(ctx context.Context, id string, password *string, merge func(user.User) user.User) (user.User, error) {
	var hash []byte
	if password != nil {
		var err error
		if hash, err = s.hasher.Hash(*password); err != nil {
			return user.User{}, err
		}
	}
	return s.Resource.Update(ctx, id, func(u user.User) user.User {
		u = merge(u)
		if hash != nil {
			u.PasswordHash = hash
		}
		return u
	})
}

// Memberships exposes the user→role association flow.
func (s *UserService) Memberships() *assoc.Flow[user.User, user.Membership, ports.NoPatch] {
	return s.memberships
}
