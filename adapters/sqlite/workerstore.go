package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/worker"
	"github.com/quoteflow/quoteflow/ports"
)

// WorkerStore implements ports.WorkerStore using SQLite.
type WorkerStore struct {
	db *DB
}

// NewWorkerStore creates a new SQLite worker store.
func NewWorkerStore(db *DB) *WorkerStore {
	return &WorkerStore{db: db}
}

var workerTable = table[worker.Worker]{
	name:    "workers",
	columns: []string{"id", "name", "email", "phone", "position", "created_at", "updated_at", "deleted_at"},
	scan: func(s scanner) (worker.Worker, error) {
		var w worker.Worker
		var email, phone, position sql.NullString
		var deleted sql.NullTime
		if err := s.Scan(&w.ID, &w.Name, &email, &phone, &position,
			&w.CreatedAt, &w.UpdatedAt, &deleted); err != nil {
			return w, err
		}
		w.Email = strValue(email)
		w.Phone = strValue(phone)
		w.Position = strValue(position)
		w.DeletedAt = timePtr(deleted)
		return w, nil
	},
	args: func(w worker.Worker, now time.Time) []any {
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now
		}
		return []any{w.ID, w.Name, nullString(w.Email), nullString(w.Phone),
			nullString(w.Position), w.CreatedAt, now, nullTime(w.DeletedAt)}
	},
	filters:  map[string]string{"name": "name", "position": "position", "created_at": "created_at"},
	sortable: map[string]bool{"name": true, "position": true, "created_at": true},
}

func (s *WorkerStore) Find(ctx context.Context, id string) (assoc.Lookup[worker.Worker], error) {
	return workerTable.find(ctx, s.db, id)
}

func (s *WorkerStore) List(ctx context.Context, q ports.ListQuery) ([]worker.Worker, error) {
	return workerTable.list(ctx, s.db, q)
}

func (s *WorkerStore) Create(ctx context.Context, w worker.Worker) error {
	return workerTable.create(ctx, s.db, w)
}

func (s *WorkerStore) Update(ctx context.Context, w worker.Worker) error {
	return workerTable.update(ctx, s.db, w)
}

func (s *WorkerStore) Delete(ctx context.Context, id string, force bool) (assoc.Lookup[worker.Worker], error) {
	return workerTable.delete(ctx, s.db, id, force)
}

var _ ports.WorkerStore = (*WorkerStore)(nil)
