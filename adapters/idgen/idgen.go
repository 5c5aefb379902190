// Package idgen provides ID generation implementations.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/quoteflow/quoteflow/ports"
)

// UUID generates UUID v4 identifiers.
type UUID struct{}

// New generates a new UUID v4.
func (UUID) New() string {
	return uuid.New().String()
}

var _ ports.IDGenerator = UUID{}

// Sequential generates deterministic ids for testing, formatted as valid
// UUIDs so schema-validated round trips keep working.
type Sequential struct {
	counter uint64
}

// New generates the next sequential id.
func (s *Sequential) New() string {
	n := atomic.AddUint64(&s.counter, 1)
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

var _ ports.IDGenerator = (*Sequential)(nil)
