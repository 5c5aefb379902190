package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/quote"
)

var quoteAttrs = []string{"id", "code", "customer_id", "salesman_id", "status", "notes", "created_at", "updated_at"}

func quoteRoutes(svc *app.QuoteService, rp responder, d Deps) crud[quote.Quote] {
	return crud[quote.Quote]{
		rp:   rp,
		m:    d.Metrics,
		perm: "quotes",
		listSchema: listRequest(map[string]schema.FieldRule{
			"code":        schema.TextFilter(schema.Optional()),
			"customer_id": schema.UUID(schema.Optional()),
			"salesman_id": schema.UUID(schema.Optional()),
			"status":      schema.Enum(quote.Statuses(), schema.Optional()),
			"created_at":  schema.DateFilter(schema.Optional()),
		}, []string{"code", "status", "created_at", "updated_at"}, quoteAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"customer_id": schema.UUID(),
			"salesman_id": schema.UUID(),
			"status":      schema.Enum(quote.Statuses(), schema.Default(string(quote.DefaultStatus))),
			"code":        schema.Code(schema.Optional()),
			"notes":       schema.Text(schema.Optional(), schema.MaxLen(2000)),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"status": schema.Enum(quote.Statuses(), schema.Optional()),
			"notes":  schema.Text(schema.Optional(), schema.MaxLen(2000)),
			// Reassignment and code edits are deliberately rejected.
			"customer_id": schema.UUID(schema.Deny()),
			"salesman_id": schema.UUID(schema.Deny()),
			"code":        schema.Code(schema.Deny()),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (quote.Quote, error) {
			return svc.Create(ctx, quote.Quote{
				CustomerID: str(body, "customer_id"),
				SalesmanID: str(body, "salesman_id"),
				Status:     quote.Status(str(body, "status")),
				Code:       str(body, "code"),
				Notes:      str(body, "notes"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (quote.Quote, error) {
			return svc.Update(ctx, id, func(q quote.Quote) quote.Quote {
				q.Status = quote.Status(strOr(body, "status", string(q.Status)))
				q.Notes = strOr(body, "notes", q.Notes)
				return q
			})
		},
		del:    svc.Delete,
		render: renderQuote,
	}
}

func quoteLinePatch(body map[string]any) quote.LinePatch {
	return quote.LinePatch{
		Quantity: intPtr(body, "quantity"),
		Price:    int64Ptr(body, "price"),
	}
}

func lineSchemas() (add, update schema.Request) {
	add = schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
		"ids": schema.UUIDArray(),
	})}
	update = schema.Request{Params: pairParams(), Body: schema.Object(map[string]schema.FieldRule{
		"quantity": schema.Number(schema.Optional(), schema.Min(1), schema.Integer()),
		"price":    schema.Number(schema.Optional(), schema.Min(0), schema.Integer()),
	}, schema.RequireNonEmpty())}
	return add, update
}

func quoteServiceLineRoutes(svc *app.QuoteService, rp responder, d Deps) nested[quote.Quote, quote.ServiceLine, quote.LinePatch] {
	add, update := lineSchemas()
	return nested[quote.Quote, quote.ServiceLine, quote.LinePatch]{
		rp:           rp,
		m:            d.Metrics,
		perm:         "quotes",
		flow:         svc.ServiceLines(),
		addSchema:    add,
		updateSchema: update,
		patch:        quoteLinePatch,
		render:       renderServiceLine,
		include:      "service",
		enrich: enrichWith(d.Services,
			func(l quote.ServiceLine) string { return l.ServiceID },
			renderService, "quote_service", renderServiceLine),
	}
}

func quoteMaterialLineRoutes(svc *app.QuoteService, rp responder, d Deps) nested[quote.Quote, quote.MaterialLine, quote.LinePatch] {
	add, update := lineSchemas()
	return nested[quote.Quote, quote.MaterialLine, quote.LinePatch]{
		rp:           rp,
		m:            d.Metrics,
		perm:         "quotes",
		flow:         svc.MaterialLines(),
		addSchema:    add,
		updateSchema: update,
		patch:        quoteLinePatch,
		render:       renderMaterialLine,
		include:      "material",
		enrich: enrichWith(d.Materials,
			func(l quote.MaterialLine) string { return l.MaterialID },
			renderMaterial, "quote_material", renderMaterialLine),
	}
}

// quoteTotalHandler serves GET /quotes/{id}/total.
func quoteTotalHandler(svc *app.QuoteService, rp responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := PartsFrom(r.Context())
		total, err := svc.Total(r.Context(), str(parts.Params, "id"))
		if err != nil {
			rp.err(w, r, err)
			return
		}
		rp.data(w, http.StatusOK, map[string]any{"total": total})
	}
}

func mountQuoteRoutes(r chi.Router, svc *app.QuoteService, rp responder, d Deps) {
	quoteRoutes(svc, rp, d).mount(r)
	read := RequireRights("quotes.read", rp, d.Metrics)
	r.With(read, Validated(getRequest(), rp, d.Metrics)).Get("/{id}/total", quoteTotalHandler(svc, rp))
	r.Route("/{id}/services", func(r chi.Router) {
		quoteServiceLineRoutes(svc, rp, d).mount(r)
	})
	r.Route("/{id}/materials", func(r chi.Router) {
		quoteMaterialLineRoutes(svc, rp, d).mount(r)
	})
}

func renderQuote(q quote.Quote) map[string]any {
	return map[string]any{
		"id":          q.ID,
		"code":        q.Code,
		"customer_id": q.CustomerID,
		"salesman_id": q.SalesmanID,
		"status":      string(q.Status),
		"notes":       q.Notes,
		"created_at":  stamp(q.CreatedAt),
		"updated_at":  stamp(q.UpdatedAt),
		"deleted_at":  stampPtr(q.DeletedAt),
	}
}

func renderServiceLine(l quote.ServiceLine) map[string]any {
	return map[string]any{
		"quote_id":   l.QuoteID,
		"service_id": l.ServiceID,
		"quantity":   l.Quantity,
		"price":      l.Price,
		"created_at": stamp(l.CreatedAt),
		"updated_at": stamp(l.UpdatedAt),
		"deleted_at": stampPtr(l.DeletedAt),
	}
}

func renderMaterialLine(l quote.MaterialLine) map[string]any {
	return map[string]any{
		"quote_id":    l.QuoteID,
		"material_id": l.MaterialID,
		"quantity":    l.Quantity,
		"price":       l.Price,
		"created_at":  stamp(l.CreatedAt),
		"updated_at":  stamp(l.UpdatedAt),
		"deleted_at":  stampPtr(l.DeletedAt),
	}
}
