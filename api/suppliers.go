package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/supplier"
)

var supplierAttrs = []string{"id", "name", "email", "phone", "address", "created_at", "updated_at"}

func supplierRoutes(svc *app.Resource[supplier.Supplier], rp responder, d Deps) crud[supplier.Supplier] {
	return crud[supplier.Supplier]{
		rp:   rp,
		m:    d.Metrics,
		perm: "suppliers",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name": schema.TextFilter(schema.Optional()),
		}, []string{"name", "created_at"}, supplierAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":    schema.Text(schema.Trim()),
			"email":   schema.Text(schema.Optional()),
			"phone":   schema.Text(schema.Optional(), schema.MaxLen(32)),
			"address": schema.Text(schema.Optional(), schema.MaxLen(512)),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":    schema.Text(schema.Optional(), schema.Trim()),
			"email":   schema.Text(schema.Optional()),
			"phone":   schema.Text(schema.Optional(), schema.MaxLen(32)),
			"address": schema.Text(schema.Optional(), schema.MaxLen(512)),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (supplier.Supplier, error) {
			return svc.Create(ctx, supplier.Supplier{
				Name:    str(body, "name"),
				Email:   str(body, "email"),
				Phone:   str(body, "phone"),
				Address: str(body, "address"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (supplier.Supplier, error) {
			return svc.Update(ctx, id, func(s supplier.Supplier) supplier.Supplier {
				s.Name = strOr(body, "name", s.Name)
				s.Email = strOr(body, "email", s.Email)
				s.Phone = strOr(body, "phone", s.Phone)
				s.Address = strOr(body, "address", s.Address)
				return s
			})
		},
		del:    svc.Delete,
		render: renderSupplier,
	}
}

func renderSupplier(s supplier.Supplier) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"name":       s.Name,
		"email":      s.Email,
		"phone":      s.Phone,
		"address":    s.Address,
		"created_at": stamp(s.CreatedAt),
		"updated_at": stamp(s.UpdatedAt),
		"deleted_at": stampPtr(s.DeletedAt),
	}
}
