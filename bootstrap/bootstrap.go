// Package bootstrap wires configuration, storage, services and the HTTP
// layer into a runnable application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/adapters/auth"
	"github.com/quoteflow/quoteflow/adapters/clock"
	"github.com/quoteflow/quoteflow/adapters/hasher"
	"github.com/quoteflow/quoteflow/adapters/idgen"
	"github.com/quoteflow/quoteflow/adapters/metrics"
	"github.com/quoteflow/quoteflow/adapters/sqlite"
	"github.com/quoteflow/quoteflow/api"
	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/config"
	"github.com/quoteflow/quoteflow/domain/category"
	"github.com/quoteflow/quoteflow/domain/customer"
	"github.com/quoteflow/quoteflow/domain/material"
	"github.com/quoteflow/quoteflow/domain/service"
	"github.com/quoteflow/quoteflow/domain/supplier"
	"github.com/quoteflow/quoteflow/domain/user"
	"github.com/quoteflow/quoteflow/domain/worker"
	"github.com/quoteflow/quoteflow/ports"
)

// App holds the wired application.
type App struct {
	holder *config.Holder
	logger zerolog.Logger
	db     *sqlite.DB
	server *http.Server
}

// New opens the database, runs migrations, constructs every store and
// service, seeds the first admin account when configured, and builds the
// HTTP server. The returned App is ready to Run.
func New(holder *config.Holder, logger zerolog.Logger) (*App, error) {
	cfg := holder.Get()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info().Str("path", cfg.Database.Path).Msg("database ready")

	collector := metrics.New()
	holder.OnReload(func(err error) {
		if err != nil {
			collector.ConfigReloadErrors.Inc()
			return
		}
		collector.ConfigReloads.Inc()
	})

	idGen := idgen.UUID{}
	clk := clock.Real{}
	hash := hasher.NewBcrypt(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clk)

	customerStore := sqlite.NewCustomerStore(db)
	workerStore := sqlite.NewWorkerStore(db)
	supplierStore := sqlite.NewSupplierStore(db)
	categoryStore := sqlite.NewCategoryStore(db)
	serviceStore := sqlite.NewServiceStore(db)
	materialStore := sqlite.NewMaterialStore(db)
	warehouseStore := sqlite.NewWarehouseStore(db)
	quoteStore := sqlite.NewQuoteStore(db)
	userStore := sqlite.NewUserStore(db)
	roleStore := sqlite.NewRoleStore(db)
	quoteServices := sqlite.NewQuoteServiceStore(db)
	quoteMaterials := sqlite.NewQuoteMaterialStore(db)
	warehouseStock := sqlite.NewWarehouseStockStore(db)
	userRoles := sqlite.NewUserRoleStore(db)

	users := app.NewUserService(userStore, userRoles, hash, idGen, logger)
	quotes := app.NewQuoteService(quoteStore, customerStore, workerStore,
		quoteServices, quoteMaterials, idGen, logger)
	warehouses := app.NewWarehouseService(warehouseStore, warehouseStock, idGen, logger)
	login := app.NewAuthService(userStore, roleStore, hash, tokens, logger)

	deps := api.Deps{
		Logger:     logger,
		Metrics:    collector,
		Tokens:     tokens,
		Auth:       login,
		Users:      users,
		Quotes:     quotes,
		Warehouses: warehouses,
		Customers: app.NewResource("customer", customerStore, idGen,
			func(c customer.Customer) string { return c.ID },
			func(c customer.Customer, id string) customer.Customer { c.ID = id; return c },
			logger),
		Workers: app.NewResource("worker", workerStore, idGen,
			func(w worker.Worker) string { return w.ID },
			func(w worker.Worker, id string) worker.Worker { w.ID = id; return w },
			logger),
		Suppliers: app.NewResource("supplier", supplierStore, idGen,
			func(s supplier.Supplier) string { return s.ID },
			func(s supplier.Supplier, id string) supplier.Supplier { s.ID = id; return s },
			logger),
		Categories: app.NewResource("category", categoryStore, idGen,
			func(c category.Category) string { return c.ID },
			func(c category.Category, id string) category.Category { c.ID = id; return c },
			logger),
		Services: app.NewResource("service", serviceStore, idGen,
			func(s service.Service) string { return s.ID },
			func(s service.Service, id string) service.Service { s.ID = id; return s },
			logger),
		Materials: app.NewResource("material", materialStore, idGen,
			func(m material.Material) string { return m.ID },
			func(m material.Material, id string) material.Material { m.ID = id; return m },
			logger),
		Roles: app.NewResource("role", roleStore, idGen,
			func(r user.Role) string { return r.ID },
			func(r user.Role, id string) user.Role { r.ID = id; return r },
			logger),
	}

	if cfg.Bootstrap.AdminUsername != "" {
		if err := seedAdmin(context.Background(), cfg.Bootstrap,
			userStore, roleStore, userRoles, users, idGen, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.New(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		holder: holder,
		logger: logger,
		db:     db,
		server: server,
	}, nil
}

// seedAdmin creates the configured admin account and an "admin" role
// carrying the wildcard permission. It is a no-op when the username is
// already registered, so restarts are safe.
func seedAdmin(
	ctx context.Context,
	cfg config.BootstrapConfig,
	userStore ports.UserStore,
	roleStore ports.RoleStore,
	memberships ports.UserRoleStore,
	users *app.UserService,
	idGen ports.IDGenerator,
	logger zerolog.Logger,
) error {
	existing, err := userStore.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return err
	}
	if existing.Ok() {
		return nil
	}

	role := user.Role{
		ID:          idGen.New(),
		Name:        "admin",
		Permissions: []string{"*"},
	}
	if err := roleStore.Create(ctx, role); err != nil {
		return err
	}

	admin, err := users.Create(ctx, user.User{
		Username: cfg.AdminUsername,
		Name:     "Administrator",
		Status:   "active",
	}, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if _, err := memberships.Add(ctx, admin.ID, []string{role.ID}); err != nil {
		return err
	}

	logger.Info().Str("username", cfg.AdminUsername).Msg("seeded admin account")
	return nil
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", a.server.Addr).Msg("server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Close()
		return err
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	return a.Close()
}

// Close releases the application's resources.
func (a *App) Close() error {
	a.holder.Stop()
	return a.db.Close()
}
