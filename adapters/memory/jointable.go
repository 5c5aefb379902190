package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/ports"
)

// JoinStore is a mutex-guarded ports.JoinStore backed by a slice. The
// callbacks isolate per-type field access: key extracts the pair, build
// makes a fresh join row, touch writes the deletion stamp and apply
// merges a patch into a row.
type JoinStore[J, U any] struct {
	mu    sync.Mutex
	rows  []J
	key   func(J) (parentID, childID string)
	build func(parentID, childID string, now time.Time) J
	touch func(j J, deletedAt *time.Time) J
	apply func(j J, patch U, now time.Time) J
}

// NewJoinStore creates an empty in-memory join store.
func NewJoinStore[J, U any](
	key func(J) (string, string),
	build func(parentID, childID string, now time.Time) J,
	touch func(j J, deletedAt *time.Time) J,
	apply func(j J, patch U, now time.Time) J,
) *JoinStore[J, U] {
	return &JoinStore[J, U]{key: key, build: build, touch: touch, apply: apply}
}

func (s *JoinStore[J, U]) index(parentID, childID string) int {
	for i, j := range s.rows {
		p, c := s.key(j)
		if p == parentID && c == childID {
			return i
		}
	}
	return -1
}

func (s *JoinStore[J, U]) List(_ context.Context, parentID string, page assoc.Page) ([]J, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []J
	for _, j := range s.rows {
		p, _ := s.key(j)
		if p == parentID {
			live = append(live, j)
		}
	}
	if page.Offset >= len(live) {
		return nil, nil
	}
	live = live[page.Offset:]
	if page.Limit > 0 && page.Limit < len(live) {
		live = live[:page.Limit]
	}
	return live, nil
}

func (s *JoinStore[J, U]) Add(_ context.Context, parentID string, childIDs []string) ([]J, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	out := make([]J, 0, len(childIDs))
	for _, childID := range childIDs {
		if i := s.index(parentID, childID); i >= 0 {
			s.rows[i] = s.touch(s.rows[i], nil)
			out = append(out, s.rows[i])
			continue
		}
		j := s.build(parentID, childID, now)
		s.rows = append(s.rows, j)
		out = append(out, j)
	}
	return out, nil
}

func (s *JoinStore[J, U]) Get(_ context.Context, parentID, childID string) (assoc.Lookup[J], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(parentID, childID); i >= 0 {
		return assoc.Found(s.rows[i]), nil
	}
	return assoc.None[J](), nil
}

func (s *JoinStore[J, U]) Update(_ context.Context, parentID, childID string, patch U) (J, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(parentID, childID)
	if i < 0 {
		var zero J
		return zero, ports.ErrNotFound
	}
	s.rows[i] = s.apply(s.rows[i], patch, time.Now().UTC())
	return s.rows[i], nil
}

func (s *JoinStore[J, U]) SoftDelete(_ context.Context, parentID, childID string) (J, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(parentID, childID)
	if i < 0 {
		var zero J
		return zero, ports.ErrNotFound
	}
	now := time.Now().UTC()
	stamped := s.touch(s.rows[i], &now)
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return stamped, nil
}

func (s *JoinStore[J, U]) HardDelete(_ context.Context, parentID, childID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(parentID, childID)
	if i < 0 {
		return ports.ErrNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}
