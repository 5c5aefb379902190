package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
)

// joinTable drives the shared SQL for one parent↔child join table. The
// per-relationship stores add their own Add and Update statements since
// join-row attributes and their defaults differ per relationship.
type joinTable[J any] struct {
	name      string
	parentCol string
	childCol  string
	columns   []string
	scan      func(s scanner) (J, error)
}

func (t *joinTable[J]) selectClause() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t *joinTable[J]) list(ctx context.Context, db *DB, parentID string, page assoc.Page) ([]J, error) {
	query := t.selectClause() + " WHERE " + t.parentCol + " = ? AND deleted_at IS NULL ORDER BY created_at ASC"
	if page.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", page.Limit, page.Offset)
	}
	rows, err := db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []J
	for rows.Next() {
		j, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (t *joinTable[J]) get(ctx context.Context, db *DB, parentID, childID string) (assoc.Lookup[J], error) {
	row := db.QueryRowContext(ctx,
		t.selectClause()+" WHERE "+t.parentCol+" = ? AND "+t.childCol+" = ? AND deleted_at IS NULL",
		parentID, childID)
	j, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return assoc.None[J](), nil
	}
	if err != nil {
		return assoc.None[J](), err
	}
	return assoc.Found(j), nil
}

func (t *joinTable[J]) softDelete(ctx context.Context, db *DB, parentID, childID string) (J, error) {
	var zero J
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		"UPDATE "+t.name+" SET deleted_at = ?, updated_at = ? WHERE "+
			t.parentCol+" = ? AND "+t.childCol+" = ? AND deleted_at IS NULL",
		now, now, parentID, childID)
	if err != nil {
		return zero, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return zero, err
	}
	if rows == 0 {
		return zero, ErrNotFound
	}

	row := db.QueryRowContext(ctx,
		t.selectClause()+" WHERE "+t.parentCol+" = ? AND "+t.childCol+" = ?",
		parentID, childID)
	return t.scan(row)
}

func (t *joinTable[J]) hardDelete(ctx context.Context, db *DB, parentID, childID string) error {
	result, err := db.ExecContext(ctx,
		"DELETE FROM "+t.name+" WHERE "+t.parentCol+" = ? AND "+t.childCol+" = ?",
		parentID, childID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
