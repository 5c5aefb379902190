package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/worker"
)

var workerAttrs = []string{"id", "name", "email", "phone", "position", "created_at", "updated_at"}

func workerRoutes(svc *app.Resource[worker.Worker], rp responder, d Deps) crud[worker.Worker] {
	return crud[worker.Worker]{
		rp:   rp,
		m:    d.Metrics,
		perm: "workers",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name":     schema.TextFilter(schema.Optional()),
			"position": schema.TextFilter(schema.Optional()),
		}, []string{"name", "position", "created_at"}, workerAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":     schema.Text(schema.Trim()),
			"email":    schema.Text(schema.Optional()),
			"phone":    schema.Text(schema.Optional(), schema.MaxLen(32)),
			"position": schema.Text(schema.Optional()),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":     schema.Text(schema.Optional(), schema.Trim()),
			"email":    schema.Text(schema.Optional()),
			"phone":    schema.Text(schema.Optional(), schema.MaxLen(32)),
			"position": schema.Text(schema.Optional()),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (worker.Worker, error) {
			return svc.Create(ctx, worker.Worker{
				Name:     str(body, "name"),
				Email:    str(body, "email"),
				Phone:    str(body, "phone"),
				Position: str(body, "position"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (worker.Worker, error) {
			return svc.Update(ctx, id, func(w worker.Worker) worker.Worker {
				w.Name = strOr(body, "name", w.Name)
				w.Email = strOr(body, "email", w.Email)
				w.Phone = strOr(body, "phone", w.Phone)
				w.Position = strOr(body, "position", w.Position)
				return w
			})
		},
		del:    svc.Delete,
		render: renderWorker,
	}
}

func renderWorker(w worker.Worker) map[string]any {
	return map[string]any{
		"id":         w.ID,
		"name":       w.Name,
		"email":      w.Email,
		"phone":      w.Phone,
		"position":   w.Position,
		"created_at": stamp(w.CreatedAt),
		"updated_at": stamp(w.UpdatedAt),
		"deleted_at": stampPtr(w.DeletedAt),
	}
}
