// Package memory provides in-memory store implementations, used by tests
// and by the throwaway demo mode. Filters are not interpreted; listings
// honor limit and offset over insertion order.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/ports"
)

// Store is a mutex-guarded ports.Store backed by a slice. Key extracts the
// primary key; Touch writes the deletion stamp onto a value, keeping the
// generic code free of per-type field access.
type Store[T any] struct {
	mu    sync.Mutex
	rows  []T
	gone  map[string]bool
	key   func(T) string
	touch func(v T, deletedAt *time.Time) T
}

// NewStore creates an empty in-memory store.
func NewStore[T any](key func(T) string, touch func(v T, deletedAt *time.Time) T) *Store[T] {
	return &Store[T]{
		gone:  make(map[string]bool),
		key:   key,
		touch: touch,
	}
}

func (s *Store[T]) Find(_ context.Context, id string) (assoc.Lookup[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.rows {
		if s.key(v) == id && !s.gone[id] {
			return assoc.Found(v), nil
		}
	}
	return assoc.None[T](), nil
}

func (s *Store[T]) List(_ context.Context, q ports.ListQuery) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []T
	for _, v := range s.rows {
		if !s.gone[s.key(v)] {
			live = append(live, v)
		}
	}
	if q.Offset >= len(live) {
		return nil, nil
	}
	live = live[q.Offset:]
	if q.Limit > 0 && q.Limit < len(live) {
		live = live[:q.Limit]
	}
	return live, nil
}

func (s *Store[T]) Create(_ context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.key(v)
	for _, existing := range s.rows {
		if s.key(existing) == id {
			return ports.ErrDuplicate
		}
	}
	s.rows = append(s.rows, v)
	return nil
}

func (s *Store[T]) Update(_ context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.key(v)
	for i, existing := range s.rows {
		if s.key(existing) == id && !s.gone[id] {
			s.rows[i] = v
			return nil
		}
	}
	return ports.ErrNotFound
}

func (s *Store[T]) Delete(_ context.Context, id string, force bool) (assoc.Lookup[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.rows {
		if s.key(existing) != id {
			continue
		}
		if force {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			delete(s.gone, id)
			return assoc.None[T](), nil
		}
		if s.gone[id] {
			break
		}
		now := time.Now().UTC()
		s.rows[i] = s.touch(existing, &now)
		s.gone[id] = true
		return assoc.Found(s.rows[i]), nil
	}
	return assoc.None[T](), ports.ErrNotFound
}
