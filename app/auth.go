package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/pkg/apperr"
	"github.com/quoteflow/quoteflow/ports"
)

// AuthService verifies credentials and issues tokens whose claims carry the
// user's role names and flattened permissions.
type AuthService struct {
	users  ports.UserStore
	roles  ports.RoleReader
	hasher ports.Hasher
	tokens ports.TokenService
	logger zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	users ports.UserStore,
	roles ports.RoleReader,
	hasher ports.Hasher,
	tokens ports.TokenService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token       string
	ExpiresAt   time.Time
	User        user.User
	Roles       []string
	Permissions []string
}

// Login checks the credentials and issues a token. An unknown username and
// a wrong password fail identically, so the response does not reveal which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var zero LoginResult

	found, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return zero, err
	}
	u, ok := found.Get()
	if !ok {
		s.logger.Debug().Str("username", username).Msg("login: unknown username")
		return zero, apperr.Forbidden("invalid credentials")
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		s.logger.Debug().Str("username", username).Msg("login: bad password")
		return zero, apperr.Forbidden("invalid credentials")
	}
	if u.Status != "active" {
		return zero, apperr.Forbidden("account is not active")
	}

	roles, err := s.roles.ForUser(ctx, u.ID)
	if err != nil {
		return zero, err
	}
	names := user.RoleNames(roles)
	permissions := user.Permissions(roles)

	token, expiresAt, err := s.tokens.Issue(u.ID, names, permissions)
	if err != nil {
		return zero, err
	}

	s.logger.Info().Str("user_id", u.ID).Strs("roles", names).Msg("login succeeded")
	return LoginResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		User:        u,
		Roles:       names,
		Permissions: permissions,
	}, nil
}
