package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/category"
)

var categoryAttrs = []string{"id", "name", "description", "created_at", "updated_at"}

func categoryRoutes(svc *app.Resource[category.Category], rp responder, d Deps) crud[category.Category] {
	return crud[category.Category]{
		rp:   rp,
		m:    d.Metrics,
		perm: "categories",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name": schema.TextFilter(schema.Optional()),
		}, []string{"name", "created_at"}, categoryAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Text(schema.Trim()),
			"description": schema.Text(schema.Optional(), schema.MaxLen(1000)),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Text(schema.Optional(), schema.Trim()),
			"description": schema.Text(schema.Optional(), schema.MaxLen(1000)),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (category.Category, error) {
			return svc.Create(ctx, category.Category{
				Name:        str(body, "name"),
				Description: str(body, "description"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (category.Category, error) {
			return svc.Update(ctx, id, func(c category.Category) category.Category {
				c.Name = strOr(body, "name", c.Name)
				c.Description = strOr(body, "description", c.Description)
				return c
			})
		},
		del:    svc.Delete,
		render: renderCategory,
	}
}

func renderCategory(c category.Category) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"created_at":  stamp(c.CreatedAt),
		"updated_at":  stamp(c.UpdatedAt),
		"deleted_at":  stampPtr(c.DeletedAt),
	}
}
