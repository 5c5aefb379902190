package api

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/ports"
)

// userAttrs is the outward projection allow-list. password_hash is not in
// it and can never be requested.
var userAttrs = []string{"id", "username", "name", "email", "status", "created_at", "updated_at"}

var userStatuses = []string{"active", "suspended"}

func userRoutes(svc *app.UserService, rp responder, d Deps) crud[user.User] {
	return crud[user.User]{
		rp:   rp,
		m:    d.Metrics,
		perm: "users",
		listSchema: listRequest(map[string]schema.FieldRule{
			"username": schema.TextFilter(schema.Optional()),
			"email":    schema.TextFilter(schema.Optional()),
			"status":   schema.Enum(userStatuses, schema.Optional()),
		}, []string{"username", "created_at"}, userAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"username": schema.Code(schema.MinLen(3)),
			"password": schema.Text(schema.MinLen(8)),
			"name":     schema.Text(schema.Optional()),
			"email":    schema.Text(schema.Optional()),
			"status":   schema.Enum(userStatuses, schema.Default("active")),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"password": schema.Text(schema.Optional(), schema.MinLen(8)),
			"name":     schema.Text(schema.Optional()),
			"email":    schema.Text(schema.Optional()),
			"status":   schema.Enum(userStatuses, schema.Optional()),
			// Usernames are immutable once registered.
			"username": schema.Code(schema.Deny()),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (user.User, error) {
			return svc.Create(ctx, user.User{
				Username: str(body, "username"),
				Name:     str(body, "name"),
				Email:    str(body, "email"),
				Status:   str(body, "status"),
			}, str(body, "password"))
		},
		update: func(ctx context.Context, id string, body map[string]any) (user.User, error) {
			var password *string
			if has(body, "password") {
				p := str(body, "password")
				password = &p
			}
			return svc.Update(ctx, id, password, func(u user.User) user.User {
				u.Name = strOr(body, "name", u.Name)
				u.Email = strOr(body, "email", u.Email)
				u.Status = strOr(body, "status", u.Status)
				return u
			})
		},
		del:    svc.Delete,
		render: renderUser,
	}
}

func userRoleRoutes(svc *app.UserService, rp responder, d Deps) nested[user.User, user.Membership, ports.NoPatch] {
	return nested[user.User, user.Membership, ports.NoPatch]{
		rp:   rp,
		m:    d.Metrics,
		perm: "users",
		flow: svc.Memberships(),
		addSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"ids": schema.UUIDArray(),
		})},
		updateSchema: schema.Request{Params: pairParams(), Body: schema.Object(map[string]schema.FieldRule{},
			schema.AllowUnknown())},
		patch:   func(map[string]any) ports.NoPatch { return ports.NoPatch{} },
		render:  renderMembership,
		include: "role",
		enrich: enrichWith(d.Roles,
			func(m user.Membership) string { return m.RoleID },
			renderRole, "user_role", renderMembership),
	}
}

func mountUserRoutes(r chi.Router, svc *app.UserService, rp responder, d Deps) {
	userRoutes(svc, rp, d).mount(r)
	r.Route("/{id}/roles", func(r chi.Router) {
		userRoleRoutes(svc, rp, d).mount(r)
	})
}

// renderUser never exposes the password hash.
func renderUser(u user.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"name":       u.Name,
		"email":      u.Email,
		"status":     u.Status,
		"created_at": stamp(u.CreatedAt),
		"updated_at": stamp(u.UpdatedAt),
		"deleted_at": stampPtr(u.DeletedAt),
	}
}

func renderMembership(m user.Membership) map[string]any {
	return map[string]any{
		"user_id":    m.UserID,
		"role_id":    m.RoleID,
		"created_at": stamp(m.CreatedAt),
		"updated_at": stamp(m.UpdatedAt),
		"deleted_at": stampPtr(m.DeletedAt),
	}
}
