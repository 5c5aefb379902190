package memory

import (
	"context"
	"sync"
	"time"

	"github.com/quoteflow/quoteflow/core/assoc"
	"github.com/quoteflow/quoteflow/domain/category"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/domain/material"
	"github.com/quoteflow/quoteflow/domain/quote"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/domain/supplier"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/domain/warehouse"
	"github.com/quoteflow/quoteflow/domain/worker"
	"github.com/quoteflow/quoteflow/ports"
)

// Typed constructors, one per resource, so tests read like the sqlite side.

func NewCustomerStore() *Store[customer.Customer] {
	return NewStore(
		func(c customer.Customer) string { return c.ID },
		func(c customer.Customer, deletedAt *time.Time) customer.Customer {
			c.DeletedAt = deletedAt
			return c
		})
}

func NewWorkerStore() *Store[worker.Worker] {
	return NewStore(
		func(w worker.Worker) string { return w.ID },
		func(w worker.Worker, deletedAt *time.Time) worker.Worker {
			w.DeletedAt = deletedAt
			return w
		})
}

func NewSupplierStore() *Store[supplier.Supplier] {
	return NewStore(
		func(s supplier.Supplier) string { return s.ID },
		func(s supplier.Supplier, deletedAt *time.Time) supplier.Supplier {
			s.DeletedAt = deletedAt
			return s
		})
}

func NewCategoryStore() *Store[category.Category] {
	return NewStore(
		func(c category.Category) string { return c.ID },
		func(c category.Category, deletedAt *time.Time) category.Category {
			c.DeletedAt = deletedAt
			return c
		})
}

func NewServiceStore() *Store[service.Service] {
	return NewStore(
		func(s service.Service) string { return s.ID },
		func(s service.Service, deletedAt *time.Time) service.Service {
			s.DeletedAt = deletedAt
			return s
		})
}

func NewMaterialStore() *Store[material.Material] {
	return NewStore(
		func(m material.Material) string { return m.ID },
		func(m material.Material, deletedAt *time.Time) material.Material {
			m.DeletedAt = deletedAt
			return m
		})
}

func NewWarehouseStore() *Store[warehouse.Warehouse] {
	return NewStore(
		func(w warehouse.Warehouse) string { return w.ID },
		func(w warehouse.Warehouse, deletedAt *time.Time) warehouse.Warehouse {
			w.DeletedAt = deletedAt
			return w
		})
}

func NewQuoteStore() *Store[quote.Quote] {
	return NewStore(
		func(q quote.Quote) string { return q.ID },
		func(q quote.Quote, deletedAt *time.Time) quote.Quote {
			q.DeletedAt = deletedAt
			return q
		})
}

func NewRoleStore() *Store[user.Role] {
	return NewStore(
		func(r user.Role) string { return r.ID },
		func(r user.Role, deletedAt *time.Time) user.Role {
			r.DeletedAt = deletedAt
			return r
		})
}

// basePrice reads the referenced record's price for a fresh join row,
// 0 when the record is unknown. New lines start at the child's base price,
// matching the sql store's COALESCE default.
func basePrice[T any](s *Store[T], id string, price func(T) int64) int64 {
	found, _ := s.Find(context.Background(), id)
	if v, ok := found.Get(); ok {
		return price(v)
	}
	return 0
}

func NewQuoteServiceStore(services *Store[service.Service]) *JoinStore[quote.ServiceLine, quote.LinePatch] {
	return NewJoinStore(
		func(l quote.ServiceLine) (string, string) { return l.QuoteID, l.ServiceID },
		func(quoteID, serviceID string, now time.Time) quote.ServiceLine {
			return quote.ServiceLine{
				QuoteID:   quoteID,
				ServiceID: serviceID,
				Quantity:  1,
				Price:     basePrice(services, serviceID, func(s service.Service) int64 { return s.Price }),
				CreatedAt: now,
				UpdatedAt: now,
			}
		},
		func(l quote.ServiceLine, deletedAt *time.Time) quote.ServiceLine {
			l.DeletedAt = deletedAt
			return l
		},
		func(l quote.ServiceLine, patch quote.LinePatch, now time.Time) quote.ServiceLine {
			if patch.Quantity != nil {
				l.Quantity = *patch.Quantity
			}
			if patch.Price != nil {
				l.Price = *patch.Price
			}
			l.UpdatedAt = now
			return l
		})
}

func NewQuoteMaterialStore(materials *Store[material.Material]) *JoinStore[quote.MaterialLine, quote.LinePatch] {
	return NewJoinStore(
		func(l quote.MaterialLine) (string, string) { return l.QuoteID, l.MaterialID },
		func(quoteID, materialID string, now time.Time) quote.MaterialLine {
			return quote.MaterialLine{
				QuoteID:    quoteID,
				MaterialID: materialID,
				Quantity:   1,
				Price:      basePrice(materials, materialID, func(m material.Material) int64 { return m.Price }),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		},
		func(l quote.MaterialLine, deletedAt *time.Time) quote.MaterialLine {
			l.DeletedAt = deletedAt
			return l
		},
		func(l quote.MaterialLine, patch quote.LinePatch, now time.Time) quote.MaterialLine {
			if patch.Quantity != nil {
				l.Quantity = *patch.Quantity
			}
			if patch.Price != nil {
				l.Price = *patch.Price
			}
			l.UpdatedAt = now
			return l
		})
}

func NewWarehouseStockStore() *JoinStore[warehouse.StockLine, warehouse.StockPatch] {
	return NewJoinStore(
		func(l warehouse.StockLine) (string, string) { return l.WarehouseID, l.MaterialID },
		func(warehouseID, materialID string, now time.Time) warehouse.StockLine {
			return warehouse.StockLine{WarehouseID: warehouseID, MaterialID: materialID, CreatedAt: now, UpdatedAt: now}
		},
		func(l warehouse.StockLine, deletedAt *time.Time) warehouse.StockLine {
			l.DeletedAt = deletedAt
			return l
		},
		func(l warehouse.StockLine, patch warehouse.StockPatch, now time.Time) warehouse.StockLine {
			if patch.Stock != nil {
				l.Stock = *patch.Stock
			}
			if patch.Price != nil {
				l.Price = *patch.Price
			}
			l.UpdatedAt = now
			return l
		})
}

func NewUserRoleStore() *JoinStore[user.Membership, ports.NoPatch] {
	return NewJoinStore(
		func(m user.Membership) (string, string) { return m.UserID, m.RoleID },
		func(userID, roleID string, now time.Time) user.Membership {
			return user.Membership{UserID: userID, RoleID: roleID, CreatedAt: now, UpdatedAt: now}
		},
		func(m user.Membership, deletedAt *time.Time) user.Membership {
			m.DeletedAt = deletedAt
			return m
		},
		func(m user.Membership, _ ports.NoPatch, now time.Time) user.Membership {
			m.UpdatedAt = now
			return m
		})
}

// UserStore adds username lookup on top of the generic in-memory store.
type UserStore struct {
	*Store[user.User]
}

func NewUserStore() *UserStore {
	return &UserStore{Store: NewStore(
		func(u user.User) string { return u.ID },
		func(u user.User, deletedAt *time.Time) user.User {
			u.DeletedAt = deletedAt
			return u
		})}
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (assoc.Lookup[user.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if u.Username == username && !s.gone[u.ID] {
			return assoc.Found(u), nil
		}
	}
	return assoc.None[user.User](), nil
}

// RoleReader serves pre-granted roles per user.
type RoleReader struct {
	mu     sync.Mutex
	byUser map[string][]user.Role
}

func NewRoleReader() *RoleReader {
	return &RoleReader{byUser: make(map[string][]user.Role)}
}

// Grant attaches roles to a user for subsequent ForUser calls.
func (r *RoleReader) Grant(userID string, roles ...user.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = append(r.byUser[userID], roles...)
}

func (r *RoleReader) ForUser(_ context.Context, userID string) ([]user.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byUser[userID], nil
}

// Interface compliance, spot-checked on representative instantiations.
var (
	_ ports.CustomerStore     = (*Store[customer.Customer])(nil)
	_ ports.QuoteServiceStore = (*JoinStore[quote.ServiceLine, quote.LinePatch])(nil)
	_ ports.UserStore         = (*UserStore)(nil)
	_ ports.RoleReader        = (*RoleReader)(nil)
)
