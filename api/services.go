package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/service"
)

var serviceAttrs = []string{"id", "name", "description", "price", "category_id", "created_at", "updated_at"}

func serviceRoutes(svc *app.Resource[service.Service], rp responder, d Deps) crud[service.Service] {
	return crud[service.Service]{
		rp:   rp,
		m:    d.Metrics,
		perm: "services",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name":        schema.TextFilter(schema.Optional()),
			"price":       schema.PriceFilter(schema.Optional()),
			"category_id": schema.UUID(schema.Optional()),
		}, []string{"name", "price", "created_at"}, serviceAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Text(schema.Trim()),
			"description": schema.Text(schema.Optional(), schema.MaxLen(1000)),
			"price":       schema.Number(schema.Min(0)),
			"category_id": schema.UUID(schema.Optional(), schema.Nullable()),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Text(schema.Optional(), schema.Trim()),
			"description": schema.Text(schema.Optional(), schema.MaxLen(1000)),
			"price":       schema.Number(schema.Optional(), schema.Min(0)),
			"category_id": schema.UUID(schema.Optional(), schema.Nullable()),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (service.Service, error) {
			return svc.Create(ctx, service.Service{
				Name:        str(body, "name"),
				Description: str(body, "description"),
				Price:       int64Val(body, "price"),
				CategoryID:  str(body, "category_id"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (service.Service, error) {
			return svc.Update(ctx, id, func(s service.Service) service.Service {
				s.Name = strOr(body, "name", s.Name)
				s.Description = strOr(body, "description", s.Description)
				if p := int64Ptr(body, "price"); p != nil {
					s.Price = *p
				}
				if has(body, "category_id") {
					s.CategoryID = str(body, "category_id")
				}
				return s
			})
		},
		del:    svc.Delete,
		render: renderService,
	}
}

func renderService(s service.Service) map[string]any {
	return map[string]any{
		"id":          s.ID,
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
		"category_id": s.CategoryID,
		"created_at":  stamp(s.CreatedAt),
		"updated_at":  stamp(s.UpdatedAt),
		"deleted_at":  stampPtr(s.DeletedAt),
	}
}
