package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/material"
)

var materialAttrs = []string{"id", "name", "code", "price", "supplier_id", "category_id", "created_at", "updated_at"}

func materialRoutes(svc *app.Resource[material.Material], rp responder, d Deps) crud[material.Material] {
	return crud[material.Material]{
		rp:   rp,
		m:    d.Metrics,
		perm: "materials",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name":        schema.TextFilter(schema.Optional()),
			"code":        schema.TextFilter(schema.Optional()),
			"price":       schema.PriceFilter(schema.Optional()),
			"supplier_id": schema.UUID(schema.Optional()),
			"category_id": schema.UUID(schema.Optional()),
		}, []string{"name", "code", "price", "created_at"}, materialAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Text(schema.Trim()),
			"code":        schema.Code(schema.Optional()),
			"price":       schema.Number(schema.Min(0)),
			"supplier_id": schema.UUID(schema.Optional(), schema.Nullable()),
			"category_id": schema.UUID(schema.Optional(), schema.Nullable()),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Text(schema.Optional(), schema.Trim()),
			"code":        schema.Code(schema.Optional()),
			"price":       schema.Number(schema.Optional(), schema.Min(0)),
			"supplier_id": schema.UUID(schema.Optional(), schema.Nullable()),
			"category_id": schema.UUID(schema.Optional(), schema.Nullable()),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (material.Material, error) {
			return svc.Create(ctx, material.Material{
				Name:       str(body, "name"),
				Code:       str(body, "code"),
				Price:      int64Val(body, "price"),
				SupplierID: str(body, "supplier_id"),
				CategoryID: str(body, "category_id"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (material.Material, error) {
			return svc.Update(ctx, id, func(m material.Material) material.Material {
				m.Name = strOr(body, "name", m.Name)
				m.Code = strOr(body, "code", m.Code)
				if p := int64Ptr(body, "price"); p != nil {
					m.Price = *p
				}
				if has(body, "supplier_id") {
					m.SupplierID = str(body, "supplier_id")
				}
				if has(body, "category_id") {
					m.CategoryID = str(body, "category_id")
				}
				return m
			})
		},
		del:    svc.Delete,
		render: renderMaterial,
	}
}

func renderMaterial(m material.Material) map[string]any {
	return map[string]any{
		"id":          m.ID,
		"name":        m.Name,
		"code":        m.Code,
		"price":       m.Price,
		"supplier_id": m.SupplierID,
		"category_id": m.CategoryID,
		"created_at":  stamp(m.CreatedAt),
		"updated_at":  stamp(m.UpdatedAt),
		"deleted_at":  stampPtr(m.DeletedAt),
	}
}
