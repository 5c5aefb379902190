// Package hasher provides password hashing implementations.
package hasher

import (
	"github.com/quoteflow/quoteflow/ports"
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt uses bcrypt for hashing.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher with the given cost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash generates a bcrypt hash from plaintext.
func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
}

// Compare checks if plaintext matches hash.
func (h *Bcrypt) Compare(hash []byte, plaintext string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}

var _ ports.Hasher = (*Bcrypt)(nil)

// Fake provides a no-op hasher for testing (NOT FOR PRODUCTION).
type Fake struct {
	// HashCalls counts Hash invocations so tests can assert the hasher
	// is never reached when a business rule fails first.
	HashCalls int
}

// Hash returns the plaintext as bytes (no actual hashing).
func (f *Fake) Hash(plaintext string) ([]byte, error) {
	f.HashCalls++
	return []byte(plaintext), nil
}

// Compare does simple equality check.
func (f *Fake) Compare(hash []byte, plaintext string) bool {
	return string(hash) == plaintext
}

var _ ports.Hasher = (*Fake)(nil)
