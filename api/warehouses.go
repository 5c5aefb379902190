package api

import (
	"context"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
	"github.com/quoteflow/quoteflow/domain/warehouse"
)

var warehouseAttrs = []string{"id", "name", "address", "created_at", "updated_at"}

func warehouseRoutes(svc *app.WarehouseService, rp responder, d Deps) crud[warehouse.Warehouse] {
	return crud[warehouse.Warehouse]{
		rp:   rp,
		m:    d.Metrics,
		perm: "warehouses",
		listSchema: listRequest(map[string]schema.FieldRule{
			"name": schema.TextFilter(schema.Optional()),
		}, []string{"name", "created_at"}, warehouseAttrs),
		createSchema: schema.Request{Body: schema.Object(map[string]schema.FieldRule{
			"name":    schema.Text(schema.Trim()),
			"address": schema.Text(schema.Optional(), schema.MaxLen(512)),
		})},
		updateSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"name":    schema.Text(schema.Optional(), schema.Trim()),
			"address": schema.Text(schema.Optional(), schema.MaxLen(512)),
		}, schema.RequireNonEmpty())},
		list: svc.List,
		get:  svc.Get,
		create: func(ctx context.Context, body map[string]any) (warehouse.Warehouse, error) {
			return svc.Create(ctx, warehouse.Warehouse{
				Name:    str(body, "name"),
				Address: str(body, "address"),
			})
		},
		update: func(ctx context.Context, id string, body map[string]any) (warehouse.Warehouse, error) {
			return svc.Update(ctx, id, func(w warehouse.Warehouse) warehouse.Warehouse {
				w.Name = strOr(body, "name", w.Name)
				w.Address = strOr(body, "address", w.Address)
				return w
			})
		},
		del:    svc.Delete,
		render: renderWarehouse,
	}
}

func warehouseStockRoutes(svc *app.WarehouseService, rp responder, d Deps) nested[warehouse.Warehouse, warehouse.StockLine, warehouse.StockPatch] {
	return nested[warehouse.Warehouse, warehouse.StockLine, warehouse.StockPatch]{
		rp:   rp,
		m:    d.Metrics,
		perm: "warehouses",
		flow: svc.Stock(),
		addSchema: schema.Request{Params: idParams(), Body: schema.Object(map[string]schema.FieldRule{
			"ids": schema.UUIDArray(),
		})},
		updateSchema: schema.Request{Params: pairParams(), Body: schema.Object(map[string]schema.FieldRule{
			"stock": schema.Number(schema.Optional(), schema.Min(0), schema.Integer()),
			"price": schema.Number(schema.Optional(), schema.Min(0), schema.Integer()),
		}, schema.RequireNonEmpty())},
		patch: func(body map[string]any) warehouse.StockPatch {
			return warehouse.StockPatch{
				Stock: intPtr(body, "stock"),
				Price: int64Ptr(body, "price"),
			}
		},
		render:  renderStockLine,
		include: "material",
		enrich: enrichWith(d.Materials,
			func(l warehouse.StockLine) string { return l.MaterialID },
			renderMaterial, "warehouse_material", renderStockLine),
	}
}

func renderWarehouse(w warehouse.Warehouse) map[string]any {
	return map[string]any{
		"id":         w.ID,
		"name":       w.Name,
		"address":    w.Address,
		"created_at": stamp(w.CreatedAt),
		"updated_at": stamp(w.UpdatedAt),
		"deleted_at": stampPtr(w.DeletedAt),
	}
}

func renderStockLine(l warehouse.StockLine) map[string]any {
	return map[string]any{
		"warehouse_id": l.WarehouseID,
		"material_id":  l.MaterialID,
		"stock":        l.Stock,
		"price":        l.Price,
		"created_at":   stamp(l.CreatedAt),
		"updated_at":   stamp(l.UpdatedAt),
		"deleted_at":   stampPtr(l.DeletedAt),
	}
}
