package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/pkg/apperr"
)

// nested wires one parent→child association's five endpoints onto a flow.
// Mounted under the parent's /{id}; the child id travels as {childID}.
type nested[P, J, U any] struct {
	rp   responder
	m    *metrics.Collector
	perm string

	flow *assoc.Flow[P, J, U]

	addSchema    schema.Request
	updateSchema schema.Request

	patch  func(body map[string]any) U
	render func(J) map[string]any

	// include names the child relation embeddable on the list endpoint;
	// enrich renders a join row folded into its child entity. Get-one is
	// always enriched, list rows only when ?include= asks for it.
	include string
	enrich  func(ctx context.Context, row J) (map[string]any, error)
}

// enrichWith folds a join row into its child entity: the entity's own
// attributes at the top level, the join record nested under joinKey. A
// join row can outlive its child (soft delete); it then renders alone.
func enrichWith[J, C any](
	entities *app.Resource[C],
	childID func(J) string,
	renderEntity func(C) map[string]any,
	joinKey string,
	renderJoin func(J) map[string]any,
) func(ctx context.Context, row J) (map[string]any, error) {
	return func(ctx context.Context, row J) (map[string]any, error) {
		entity, err := entities.Get(ctx, childID(row))
		if err != nil {
			if apperr.IsNotFound(err) {
				return renderJoin(row), nil
			}
			return nil, err
		}
		out := renderEntity(entity)
		out[joinKey] = renderJoin(row)
		return out, nil
	}
}

func (n nested[P, J, U]) mount(r chi.Router) {
	read := RequireRights(n.perm+".read", n.rp, n.m)
	write := RequireRights(n.perm+".write", n.rp, n.m)

	listQuery := map[string]schema.FieldRule{
		"limit":  schema.Limit(),
		"offset": schema.Offset(),
	}
	if n.include != "" {
		listQuery["include"] = schema.Include([]string{n.include}, schema.Optional())
	}
	listSchema := schema.Request{Params: idParams(), Query: schema.Object(listQuery)}
	getSchema := schema.Request{Params: pairParams()}
	deleteSchema := schema.Request{Params: pairParams(), Query: forceQuery()}

	r.With(read, Validated(listSchema, n.rp, n.m)).Get("/", n.handleList)
	r.With(write, Validated(n.addSchema, n.rp, n.m)).Post("/", n.handleAdd)
	r.With(read, Validated(getSchema, n.rp, n.m)).Get("/{childID}", n.handleGet)
	r.With(write, Validated(n.updateSchema, n.rp, n.m)).Put("/{childID}", n.handleUpdate)
	r.With(write, Validated(deleteSchema, n.rp, n.m)).Delete("/{childID}", n.handleDelete)
}

func (n nested[P, J, U]) handleList(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	page := assoc.Page{Limit: intVal(parts.Query, "limit"), Offset: intVal(parts.Query, "offset")}
	rows, err := n.flow.List(r.Context(), str(parts.Params, "id"), page)
	if err != nil {
		n.rp.err(w, r, err)
		return
	}
	embed := n.enrich != nil && includes(strSlice(parts.Query, "include"), n.include)
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if embed {
			enriched, err := n.enrich(r.Context(), row)
			if err != nil {
				n.rp.err(w, r, err)
				return
			}
			out = append(out, enriched)
			continue
		}
		out = append(out, n.render(row))
	}
	n.rp.data(w, http.StatusOK, out)
}

func includes(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (n nested[P, J, U]) handleAdd(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	rows, err := n.flow.Add(r.Context(), str(parts.Params, "id"), strSlice(parts.Body, "ids"))
	if err != nil {
		n.rp.err(w, r, err)
		return
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.render(row))
	}
	n.rp.data(w, http.StatusCreated, out)
}

func (n nested[P, J, U]) handleGet(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	row, err := n.flow.GetOrFail(r.Context(), str(parts.Params, "id"), str(parts.Params, "childID"))
	if err != nil {
		n.rp.err(w, r, err)
		return
	}
	if n.enrich != nil {
		out, err := n.enrich(r.Context(), row)
		if err != nil {
			n.rp.err(w, r, err)
			return
		}
		n.rp.data(w, http.StatusOK, out)
		return
	}
	n.rp.data(w, http.StatusOK, n.render(row))
}

func (n nested[P, J, U]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	row, err := n.flow.Update(r.Context(),
		str(parts.Params, "id"), str(parts.Params, "childID"), n.patch(parts.Body))
	if err != nil {
		n.rp.err(w, r, err)
		return
	}
	n.rp.data(w, http.StatusOK, n.render(row))
}

func (n nested[P, J, U]) handleDelete(w http.ResponseWriter, r *http.Request) {
	parts := PartsFrom(r.Context())
	deleted, err := n.flow.Delete(r.Context(),
		str(parts.Params, "id"), str(parts.Params, "childID"), boolVal(parts.Query, "force"))
	if err != nil {
		n.rp.err(w, r, err)
		return
	}
	if row, ok := deleted.Get(); ok {
		n.rp.data(w, http.StatusOK, n.render(row))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
