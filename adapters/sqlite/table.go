package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/ports"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// table drives the shared CRUD SQL for one flat resource. Each store
// supplies its column list, scan and args functions; the query shapes,
// soft-delete handling and filter translation are identical per resource.
//
// Conventions: columns[0] is the primary key; every table carries
// created_at, updated_at and a nullable deleted_at as its last three
// columns, stamped here rather than in the stores.
type table[T any] struct {
	name     string
	columns  []string
	scan     func(s scanner) (T, error)
	args     func(v T, now time.Time) []any
	filters  map[string]string // query field -> column
	sortable map[string]bool
}

func (t *table[T]) selectClause() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t *table[T]) find(ctx context.Context, db *DB, id string) (assoc.Lookup[T], error) {
	row := db.QueryRowContext(ctx,
		t.selectClause()+" WHERE "+t.columns[0]+" = ? AND deleted_at IS NULL", id)
	v, err := t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return assoc.None[T](), nil
	}
	if err != nil {
		return assoc.None[T](), err
	}
	return assoc.Found(v), nil
}

func (t *table[T]) list(ctx context.Context, db *DB, q ports.ListQuery) ([]T, error) {
	where := []string{"deleted_at IS NULL"}
	var args []any
	for field, value := range q.Filters {
		column, ok := t.filters[field]
		if !ok {
			continue
		}
		clause, clauseArgs := filterClause(column, value)
		where = append(where, clause)
		args = append(args, clauseArgs...)
	}

	query := t.selectClause() + " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY " + t.orderBy(q.Sort)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (t *table[T]) create(ctx context.Context, db *DB, v T) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	_, err := db.ExecContext(ctx,
		"INSERT INTO "+t.name+" ("+strings.Join(t.columns, ", ")+") VALUES ("+placeholders+")",
		t.args(v, time.Now().UTC())...)
	if isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

func (t *table[T]) update(ctx context.Context, db *DB, v T) error {
	now := time.Now().UTC()
	args := t.args(v, now)

	// SET every column except the primary key and created_at, keyed by id.
	var set []string
	var setArgs []any
	for i, col := range t.columns {
		if i == 0 || col == "created_at" {
			continue
		}
		set = append(set, col+" = ?")
		setArgs = append(setArgs, args[i])
	}
	setArgs = append(setArgs, args[0])

	result, err := db.ExecContext(ctx,
		"UPDATE "+t.name+" SET "+strings.Join(set, ", ")+
			" WHERE "+t.columns[0]+" = ? AND deleted_at IS NULL",
		setArgs...)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
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

func (t *table[T]) delete(ctx context.Context, db *DB, id string, force bool) (assoc.Lookup[T], error) {
	if force {
		result, err := db.ExecContext(ctx,
			"DELETE FROM "+t.name+" WHERE "+t.columns[0]+" = ?", id)
		if err != nil {
			return assoc.None[T](), err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return assoc.None[T](), err
		}
		if rows == 0 {
			return assoc.None[T](), ErrNotFound
		}
		return assoc.None[T](), nil
	}

	now := time.Now().UTC()
	result, err := db.ExecContext(ctx,
		"UPDATE "+t.name+" SET deleted_at = ?, updated_at = ? WHERE "+
			t.columns[0]+" = ? AND deleted_at IS NULL",
		now, now, id)
	if err != nil {
		return assoc.None[T](), err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return assoc.None[T](), err
	}
	if rows == 0 {
		return assoc.None[T](), ErrNotFound
	}

	// Return the stamped record; the soft-deleted row is excluded from
	// find, so select it directly.
	row := db.QueryRowContext(ctx, t.selectClause()+" WHERE "+t.columns[0]+" = ?", id)
	v, err := t.scan(row)
	if err != nil {
		return assoc.None[T](), err
	}
	return assoc.Found(v), nil
}

func (t *table[T]) orderBy(sort []string) string {
	var parts []string
	for _, directive := range sort {
		column := strings.TrimPrefix(directive, "-")
		if !t.sortable[column] {
			continue
		}
		if strings.HasPrefix(directive, "-") {
			parts = append(parts, column+" DESC")
		} else {
			parts = append(parts, column+" ASC")
		}
	}
	if len(parts) == 0 {
		return "created_at DESC"
	}
	return strings.Join(parts, ", ")
}

// filterOps maps schema filter operators to SQL comparison operators.
var filterOps = map[string]string{
	"eq":   "=",
	"gt":   ">",
	"gte":  ">=",
	"lt":   "<",
	"lte":  "<=",
	"like": "LIKE",
}

// filterClause translates one sanitized filter value (a literal or an
// operator map) into a WHERE fragment.
func filterClause(column string, value any) (string, []any) {
	m, ok := value.(map[string]any)
	if !ok {
		return column + " = ?", []any{value}
	}
	var clauses []string
	var args []any
	for op, operand := range m {
		sqlOp, known := filterOps[op]
		if !known {
			continue
		}
		clauses = append(clauses, column+" "+sqlOp+" ?")
		args = append(args, operand)
	}
	if len(clauses) == 0 {
		return "1 = 1", nil
	}
	return strings.Join(clauses, " AND "), args
}
