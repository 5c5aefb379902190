package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/domain/category"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/domain/material"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/domain/supplier"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/domain/worker"
	"github.com/quoteflow/quoteflow/ports"
)

// Deps carries everything the HTTP layer needs. Handlers receive their
// dependencies explicitly; there is no package-level state.
type Deps struct {
	Logger  zerolog.Logger
	Metrics *metrics.Collector
	Tokens  ports.TokenService

	Auth       *app.AuthService
	Users      *app.UserService
	Quotes     *app.QuoteService
	Warehouses *app.WarehouseService
	Customers  *app.Resource[customer.Customer]
	Workers    *app.Resource[worker.Worker]
	Suppliers  *app.Resource[supplier.Supplier]
	Categories *app.Resource[category.Category]
	Services   *app.Resource[service.Service]
	Materials  *app.Resource[material.Material]
	Roles      *app.Resource[user.Role]
}

// New builds the router: open health/metrics/login endpoints, then every
// resource behind token auth, each route gated by its schema and exactly
// one permission string.
func New(d Deps) chi.Router {
	rp := responder{logger: d.Logger, metrics: d.Metrics}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(d.Logger))
	r.Use(Instrument(d.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(Validated(loginSchema(), rp, d.Metrics)).Post("/auth/login", loginHandler(d.Auth, rp))

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(d.Tokens, rp, d.Metrics))

		r.Route("/customers", func(r chi.Router) { customerRoutes(d.Customers, rp, d).mount(r) })
		r.Route("/workers", func(r chi.Router) { workerRoutes(d.Workers, rp, d).mount(r) })
		r.Route("/suppliers", func(r chi.Router) { supplierRoutes(d.Suppliers, rp, d).mount(r) })
		r.Route("/categories", func(r chi.Router) { categoryRoutes(d.Categories, rp, d).mount(r) })
		r.Route("/services", func(r chi.Router) { serviceRoutes(d.Services, rp, d).mount(r) })
		r.Route("/materials", func(r chi.Router) { materialRoutes(d.Materials, rp, d).mount(r) })
		r.Route("/roles", func(r chi.Router) { roleRoutes(d.Roles, rp, d).mount(r) })

		r.Route("/quotes", func(r chi.Router) { mountQuoteRoutes(r, d.Quotes, rp, d) })
		r.Route("/users", func(r chi.Router) { mountUserRoutes(r, d.Users, rp, d) })
		r.Route("/warehouses", func(r chi.Router) {
			warehouseRoutes(d.Warehouses, rp, d).mount(r)
			r.Route("/{id}/materials", func(r chi.Router) {
				warehouseStockRoutes(d.Warehouses, rp, d).mount(r)
			})
		})
	})

	return r
}
