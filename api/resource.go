package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/ports"
)

// listQueryFrom translates a sanitized list query into the store shape.
// Everything that is not a pagination, sort or projection control is a
// filter the store may interpret.
func listQueryFrom(query map[string]any) ports.ListQuery {
	q := ports.ListQuery{
		Limit:  intVal(query, "limit"),
		Offset: intVal(query, "offset"),
		Sort:   strSlice(query, "sort"),
	}
	for key, value := range query {
		switch key {
		case "limit", "offset", "sort", "attributes", "include", "force":
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[string]any)
		}
		q.Filters[key] = value
	}
	return q
}

// project drops rendered keys outside the requested attribute set.
func project(row map[string]any, attrs []string) map[string]any {
	if len(attrs) == 0 {
		return row
	}
	out := make(map[string]any, len(attrs))
	for _, key := range attrs {
		if v, ok := row[key]; ok {
			out[key] = v
		}
	}
	return out
}

// crud wires one flat resource's five endpoints: the route shapes, schema
// gates, permission strings and envelope handling are identical across
// resources, so each resource file only supplies schemas and codecs.
type crud[T any] struct {
	rp   responder
	m    *metrics.Collector
	perm string

	listSchema   schema.Request
	createSchema schema.Request
	updateSchema schema.Request

	list   func(ctx context.Context, q ports.ListQuery) ([]T, error)
	get    func(ctx context.Context, id string) (T, error)
	create func(ctx context.Context, body map[string]any) (T, error)
	update func(ctx context.Context, id string, body map[string]any) (T, error)
	del    func(ctx context.Context, id string, force bool) (assoc.Lookup[T], error)
	render func(T) map[string]any
}

func (c crud[T]) mount(r chi.Router) {
	read := RequireRights(c.perm+".read", c.rp, c.m)
	write := RequireRights(c.perm+".write", c.rp, c.m)

	r.With(read, Validated(c.listSchema, c.rp, c.m)).Get("/", c.handleList)
	r.With(write, Validated(c.createSchema, c.rp, c.m)).Post("/", c.handleCreate)
	r.With(read, Validated(getRequest(), c.rp, c.m)).Get("/{id}", c.handleGet)
	r.With(write, Validated(c.updateSchema, c.rp, c.m)).Put("/{id}", c.handleUpdate)
	r.With(write, Validated(deleteRequest(), c.rp, c.m)).Delete("/{id}", c.handleDelete)
}

func (c crud[T]) handleList(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	items, err := c.list(r.Context(), listQueryFrom(parts.Query))
	if err != nil {
		c.rp.err(w, r, err)
		return
	}
	attrs := strSlice(parts.Query, "attributes")
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, project(c.render(item), attrs))
	}
	c.rp.data(w, http.StatusOK, out)
}

func (c crud[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	item, err := c.get(r.Context(), str(parts.Params, "id"))
	if err != nil {
		c.rp.err(w, r, err)
		return
	}
	c.rp.data(w, http.StatusOK, c.render(item))
}

func (c crud[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	item, err := c.create(r.Context(), parts.Body)
	if err != nil {
		c.rp.err(w, r, err)
		return
	}
	c.rp.data(w, http.StatusCreated, c.render(item))
}

func (c crud[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	item, err := c.update(r.Context(), str(parts.Params, "id"), parts.Body)
	if err != nil {
		c.rp.err(w, r, err)
		return
	}
	c.rp.data(w, http.StatusOK, c.render(item))
}

func (c crud[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	deleted, err := c.del(r.Context(), str(parts.Params, "id"), boolVal(parts.Query, "force"))
	if err != nil {
		c.rp.err(w, r, err)
		return
	}
	if row, ok := deleted.Get(); ok {
		c.rp.data(w, http.StatusOK, c.render(row))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
