package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/user"
)

var roleAttrs = []string{"id", "name", "permissions", "created_at", "updated_at"}

func roleRoutes(svc *app.Resource[user.Role], rp responder, d Deps) crud[user.Role] {
	return crud[user.Role]{
		rp:   rp,
		m:    d.Metrics,
		perm: "roles",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name": schema.TextFilter(schema.Optional()),
		}, []string{"name", "created_at"}, roleAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Code(),
			"permissions": schema.TextArray(schema.Optional()),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":        schema.Code(schema.Optional()),
			"permissions": schema.TextArray(schema.Optional()),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (user.Role, error) {
			return svc.Create(ctx, user.Role{
				Name:        str(body, "name"),
				Permissions: permissionsFrom(body),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (user.Role, error) {
			return svc.Update(ctx, id, func(r user.Role) user.Role {
				r.Name = strOr(body, "name", r.Name)
				if has(body, "permissions") {
					r.Permissions = permissionsFrom(body)
				}
				return r
			})
		},
		del:    svc.Delete,
		render: renderRole,
	}
}

func permissionsFrom(body map[string]any) []string {
	return strSlice(body, "permissions")
}

func renderRole(r user.Role) map[string]any {
	return map[string]any{
		"id":          r.ID,
		"name":        r.Name,
		"permissions": r.Permissions,
		"created_at":  stamp(r.CreatedAt),
		"updated_at":  stamp(r.UpdatedAt),
		"deleted_at":  stampPtr(r.DeletedAt),
	}
}
