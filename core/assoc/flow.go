package assoc

import (
	"context"
)

// Page bounds a child listing.
type Page struct {
	Limit  int
	Offset int
}

// Flow wires one parent/child relationship into the shared four-step
// protocol. P is the parent entity, J the join row carrying the pair's own
// attributes, U the typed patch applied to the join row on update.
//
// Every operation checks parent existence first; a missing parent is always
// reported before any child-level check runs. Persistence errors propagate
// to the caller unchanged.
type Flow[P, J, U any] struct {
	// ParentLabel and ChildLabel name the entities in NotFound errors.
	ParentLabel string
	ChildLabel  string

	FindParent func(ctx context.Context, id string) (Lookup[P], error)
	ListJoins  func(ctx context.Context, parentID string, page Page) ([]J, error)
	AddJoins   func(ctx context.Context, parentID string, childIDs []string) ([]J, error)
	GetJoin    func(ctx context.Context, parentID, childID string) (Lookup[J], error)
	UpdateJoin func(ctx context.Context, parentID, childID string, patch U) (J, error)
	SoftDelete func(ctx context.Context, parentID, childID string) (J, error)
	HardDelete func(ctx context.Context, parentID, childID string) error
}

func (f *Flow[P, J, U]) requireParent(ctx context.Context, parentID string) error {
	parent, err := f.FindParent(ctx, parentID)
	if err != nil {
		return err
	}
	_, err = parent.OrFail(f.ParentLabel)
	return err
}

// List returns the parent's children.
func (f *Flow[P, J, U]) List(ctx context.Context, parentID string, page Page) ([]J, error) {
	if err := f.requireParent(ctx, parentID); err != nil {
		return nil, err
	}
	return f.ListJoins(ctx, parentID, page)
}

// Add bulk-creates join rows for the given child ids.
func (f *Flow[P, J, U]) Add(ctx context.Context, parentID string, childIDs []string) ([]J, error) {
	if err := f.requireParent(ctx, parentID); err != nil {
		return nil, err
	}
	return f.AddJoins(ctx, parentID, childIDs)
}

// Get fetches one child's join row. The result is a Lookup so internal
// callers can treat absence as a plain miss; public endpoints call OrFail.
func (f *Flow[P, J, U]) Get(ctx context.Context, parentID, childID string) (Lookup[J], error) {
	if err := f.requireParent(ctx, parentID); err != nil {
		return None[J](), err
	}
	return f.GetJoin(ctx, parentID, childID)
}

// GetOrFail fetches one child's join row, failing NotFound when absent.
func (f *Flow[P, J, U]) GetOrFail(ctx context.Context, parentID, childID string) (J, error) {
	found, err := f.Get(ctx, parentID, childID)
	if err != nil {
		var zero J
		return zero, err
	}
	return found.OrFail(f.ChildLabel)
}

// Update mutates the JOIN row's own attributes, never the child entity's
// base attributes. The child must exist under this parent.
func (f *Flow[P, J, U]) Update(ctx context.Context, parentID, childID string, patch U) (J, error) {
	if _, err := f.GetOrFail(ctx, parentID, childID); err != nil {
		var zero J
		return zero, err
	}
	return f.UpdateJoin(ctx, parentID, childID, patch)
}

// Delete removes the join row. With force=false the row is soft-deleted
// (deleted_at stamped) and returned; with force=true it is physically
// removed and the empty variant is returned.
func (f *Flow[P, J, U]) Delete(ctx context.Context, parentID, childID string, force bool) (Lookup[J], error) {
	if _, err := f.GetOrFail(ctx, parentID, childID); err != nil {
		return None[J](), err
	}
	if force {
		if err := f.HardDelete(ctx, parentID, childID); err != nil {
			return None[J](), err
		}
		return None[J](), nil
	}
	row, err := f.SoftDelete(ctx, parentID, childID)
	if err != nil {
		return None[J](), err
	}
	return Found(row), nil
}
