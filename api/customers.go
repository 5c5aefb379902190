package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/customer"
)

var customerAttrs = []string{"id", "name", "email", "phone", "address", "notes", "created_at", "updated_at"}

func customerRoutes(svc *app.Resource[customer.Customer], rp responder, d Deps) crud[customer.Customer] {
	return crud[customer.Customer]{
		rp:   rp,
		m:    d.Metrics,
		perm: "customers",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name":       schema.TextFilter(schema.Optional()),
			"email":      schema.TextFilter(schema.Optional()),
			"created_at": schema.DateFilter(schema.Optional()),
		}, []string{"name", "created_at", "updated_at"}, customerAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":    schema.Text(schema.Trim()),
			"email":   schema.Text(schema.Optional()),
			"phone":   schema.Text(schema.Optional(), schema.MaxLen(32)),
			"address": schema.Text(schema.Optional(), schema.MaxLen(512)),
			"notes":   schema.Text(schema.Optional(), schema.MaxLen(2000)),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":    schema.Text(schema.Optional(), schema.Trim()),
			"email":   schema.Text(schema.Optional()),
			"phone":   schema.Text(schema.Optional(), schema.MaxLen(32)),
			"address": schema.Text(schema.Optional(), schema.MaxLen(512)),
			"notes":   schema.Text(schema.Optional(), schema.MaxLen(2000)),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (customer.Customer, error) {
			return svc.Create(ctx, customer.Customer{
				Name:    str(body, "name"),
				Email:   str(body, "email"),
				Phone:   str(body, "phone"),
				Address: str(body, "address"),
				Notes:   str(body, "notes"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (customer.Customer, error) {
			return svc.Update(ctx, id, func(c customer.Customer) customer.Customer {
				c.Name = strOr(body, "name", c.Name)
				c.Email = strOr(body, "email", c.Email)
				c.Phone = strOr(body, "phone", c.Phone)
				c.Address = strOr(body, "address", c.Address)
				c.Notes = strOr(body, "notes", c.Notes)
				return c
			})
		},
		del:    svc.Delete,
		render: renderCustomer,
	}
}

func renderCustomer(c customer.Customer) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"email":      c.Email,
		"phone":      c.Phone,
		"address":    c.Address,
		"notes":      c.Notes,
		"created_at": stamp(c.CreatedAt),
		"updated_at": stamp(c.UpdatedAt),
		"deleted_at": stampPtr(c.DeletedAt),
	}
}
