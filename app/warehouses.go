package app

import (
	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/warehouse"
	"github.com/quoteflow/quoteflow/ports"
)

// WarehouseService manages warehouses and their per-warehouse stock lines.
type WarehouseService struct {
	*Resource[warehouse.Warehouse]

	stock *assoc.Flow[warehouse.Warehouse, warehouse.StockLine, warehouse.StockPatch]
}

// NewWarehouseService creates a new warehouse service.
func NewWarehouseService(
	warehouses ports.WarehouseStore,
	stock ports.WarehouseStockStore,
	idGen ports.IDGenerator,
	logger zerolog.Logger,
) *WarehouseService {
	s := &WarehouseService{
		Resource: NewResource("warehouse", warehouses, idGen,
			func(w warehouse.Warehouse) string { return w.ID },
			func(w warehouse.Warehouse, id string) warehouse.Warehouse { w.ID = id; return w },
			logger),
	}
	s.stock = &assoc.Flow[warehouse.Warehouse, warehouse.StockLine, warehouse.StockPatch]{
		ParentLabel: "warehouse",
		ChildLabel:  "material",
		FindParent:  warehouses.Find,
		ListJoins:   stock.List,
		AddJoins:    stock.Add,
		GetJoin:     stock.Get,
		UpdateJoin:  stock.Update,
		SoftDelete:  stock.SoftDelete,
		HardDelete:  stock.HardDelete,
	}
	return s
}

// Stock exposes the warehouse→material association flow.
func (s *WarehouseService) Stock() *assoc.Flow[warehouse.Warehouse, warehouse.StockLine, warehouse.StockPatch] {
	return s.stock
}
