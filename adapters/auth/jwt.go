// Package auth provides stateless token issuance and verification using JWT.
// Tokens carry the user id as subject plus role and permission claims so the
// rights middleware never needs a store round trip.
package auth

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quoteflow/quoteflow/ports"
)

// Claims represents the JWT claims issued on login.
type Claims struct {
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenService provides stateless JWT token operations.
// Thread-safe and suitable for concurrent use.
type TokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	clock      ports.Clock
}

// NewTokenService creates a new JWT token service. If secret is empty, a
// random 32-byte secret is generated; tokens then survive only one process.
func NewTokenService(secret string, expiration time.Duration, clock ports.Clock) *TokenService {
	secretBytes := []byte(secret)
	if secret == "" {
		secretBytes = make([]byte, 32)
		rand.Read(secretBytes)
	}
	if expiration == 0 {
		expiration = 24 * time.Hour
	}
	return &TokenService{
		secret:     secretBytes,
		issuer:     "quoteflow",
		expiration: expiration,
		clock:      clock,
	}
}

// Issue creates a signed token embedding the user id as sub plus role and
// permission claims.
func (s *TokenService) Issue(userID string, roles, permissions []string) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.expiration)

	claims := Claims{
		Roles:       roles,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify validates a token and returns the embedded claims.
func (s *TokenService) Verify(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.clock.Now() }))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &ports.TokenClaims{
		Subject:     claims.Subject,
		Roles:       claims.Roles,
		Permissions: claims.Permissions,
	}, nil
}

var _ ports.TokenService = (*TokenService)(nil)
