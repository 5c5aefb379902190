// Package app contains the application services. All business logic lives
// here, behind injected ports; I/O happens at the edges via the stores.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/pkg/apperr"
	"github.com/quoteflow/quoteflow/ports"
)

// storeErr classifies store sentinels at the service boundary. Anything
// else is wrapped as upstream, keeping the cause reachable via errors.Is.
func storeErr(err error, label string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ports.ErrNotFound):
		return apperr.NotFound(label)
	case errors.Is(err, ports.ErrDuplicate):
		return apperr.Forbidden(label + " already exists")
	default:
		return apperr.Upstream(err)
	}
}

// Resource is the pass-through service shared by the flat resources whose
// endpoints add no business rules beyond the schema gate: find-or-fail,
// list, create with a generated id, merge-update, soft/hard delete.
type Resource[T any] struct {
	label  string
	store  ports.Store[T]
	idGen  ports.IDGenerator
	idOf   func(T) string
	withID func(T, string) T
	logger zerolog.Logger
}

// NewResource creates a pass-through service for one flat resource. idOf
// and withID isolate the only per-type field access the service needs.
func NewResource[T any](
	label string,
	store ports.Store[T],
	idGen ports.IDGenerator,
	idOf func(T) string,
	withID func(T, string) T,
	logger zerolog.Logger,
) *Resource[T] {
	return &Resource[T]{
		label:  label,
		store:  store,
		idGen:  idGen,
		idOf:   idOf,
		withID: withID,
		logger: logger,
	}
}

// Get retrieves one record, failing NotFound when it is absent.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	found, err := r.store.Find(ctx, id)
	if err != nil {
		return zero, err
	}
	return found.OrFail(r.label)
}

// List returns records matching the sanitized query.
func (r *Resource[T]) List(ctx context.Context, q ports.ListQuery) ([]T, error) {
	return r.store.List(ctx, q)
}

// Create stores a new record under a generated id and returns it as stored.
func (r *Resource[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if r.idOf(v) == "" {
		v = r.withID(v, r.idGen.New())
	}
	if err := r.store.Create(ctx, v); err != nil {
		return zero, storeErr(err, r.label)
	}
	r.logger.Debug().Str("resource", r.label).Str("id", r.idOf(v)).Msg("created")
	return r.Get(ctx, r.idOf(v))
}

// Update applies merge to the current record and stores the result. The
// record must exist; the id never changes.
func (r *Resource[T]) Update(ctx context.Context, id string, merge func(T) T) (T, error) {
	var zero T
	current, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	next := r.withID(merge(current), id)
	if err := r.store.Update(ctx, next); err != nil {
		return zero, storeErr(err, r.label)
	}
	return r.Get(ctx, id)
}

// Delete soft-deletes by default, returning the stamped record; force=true
// removes the row and returns the empty variant.
func (r *Resource[T]) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[T], error) {
	deleted, err := r.store.Delete(ctx, id, force)
	if err != nil {
		return assoc.None[T](), storeErr(err, r.label)
	}
	r.logger.Debug().Str("resource", r.label).Str("id", id).Bool("force", force).Msg("deleted")
	return deleted, nil
}
