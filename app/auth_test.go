package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quoteflow/quoteflow/adapters/auth"
	"github.com/quoteflow/quoteflow/adapters/clock"
	"github.com/quoteflow/quoteflow/adapters/hasher"
	"github.com/quoteflow/quoteflow/adapters/memory"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

func newAuthFixture(t *testing.T) (*AuthService, *memory.UserStore, *memory.RoleReader) {
	t.Helper()
	users := memory.NewUserStore()
	roles := memory.NewRoleReader()
	tokens := auth.NewTokenService("test-secret", time.Hour, clock.Real{})
	svc := NewAuthService(users, roles, &hasher.Fake{}, tokens, zerolog.Nop())
	return svc, users, roles
}

func TestLoginIssuesTokenWithRolesAndPermissions(t *testing.T) {
	svc, users, roles := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, user.User{
		ID: "u1", Username: "alice", PasswordHash: []byte("pw"), Status: "active",
	}))
	roles.Grant("u1",
		user.Role{ID: "r1", Name: "sales", Permissions: []string{"quotes.write", "quotes.read"}},
		user.Role{ID: "r2", Name: "viewer", Permissions: []string{"quotes.read"}},
	)

	result, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, []string{"sales", "viewer"}, result.Roles)
	assert.Equal(t, []string{"quotes.read", "quotes.write"}, result.Permissions,
		"permissions are deduplicated and sorted")
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLoginUnknownUserAndBadPasswordFailIdentically(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, user.User{
		ID: "u1", Username: "alice", PasswordHash: []byte("pw"), Status: "active",
	}))

	_, unknownErr := svc.Login(ctx, "nobody", "pw")
	_, badPwErr := svc.Login(ctx, "alice", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, badPwErr)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(unknownErr))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(badPwErr))
	assert.Equal(t, unknownErr.Error(), badPwErr.Error())
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, user.User{
		ID: "u1", Username: "alice", PasswordHash: []byte("pw"), Status: "suspended",
	}))

	_, err := svc.Login(ctx, "alice", "pw")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}
