// Package bootstrap arma el grafo de dependencias (almacén, lock, métricas y
// casos de uso) a partir de la configuración. Lo comparten la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Reposicion-api/internal/application/auth"
	"github.com/jhoicas/Reposicion-api/internal/application/delivery"
	"github.com/jhoicas/Reposicion-api/internal/application/ordering"
	"github.com/jhoicas/Reposicion-api/internal/application/ports"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
	"github.com/jhoicas/Reposicion-api/internal/application/valuation"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/lock"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

const lockTTL = 30 * time.Second

// Stores repositorios concretos según STORE_DRIVER.
type Stores struct {
	Tx         repository.TxRunner
	Items      repository.ItemRepository
	Orders     repository.OrderRepository
	Deliveries repository.DeliveryRepository
	Sales      repository.SaleRepository
	Users      repository.UserRepository
}

// App casos de uso listos para montar en HTTP o CLI.
type App struct {
	Stores     Stores
	Metrics    *metrics.Prometheus
	AuthUC     *auth.AuthUseCase
	ItemUC     *usecase.ItemUseCase
	Ledger     *ordering.Ledger
	Planner    *ordering.PlannerUseCase
	Reconciler *delivery.Reconciler
	Valuation  *valuation.UseCase

	closers []func()
}

// Close libera pool y cliente Redis en orden inverso.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// OpenStores abre el almacén configurado. Con postgres aplica el esquema.
func OpenStores(ctx context.Context, cfg *config.Config) (Stores, func(), error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		s := memory.NewStore()
		return Stores{
			Tx: s, Items: s.Items(), Orders: s.Orders(), Deliveries: s.Deliveries(),
			Sales: s.Sales(), Users: s.Users(),
		}, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return Stores{}, nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return Stores{}, nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return Stores{
		Tx:         postgres.NewTxRunner(pool),
		Items:      postgres.NewItemRepository(pool),
		Orders:     postgres.NewOrderRepository(pool),
		Deliveries: postgres.NewDeliveryRepository(pool),
		Sales:      postgres.NewSaleRepository(pool),
		Users:      postgres.NewUserRepository(pool),
	}, pool.Close, nil
}

// newLocker devuelve el lock Redis si REDIS_ADDR está definido; si no, uno en proceso.
func newLocker(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (ports.OrderLocker, func(), error) {
	if !cfg.Enabled() {
		return lock.NewLocal(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("conexión a Redis %s: %w", cfg.Addr, err)
	}
	log.Info().Str("addr", cfg.Addr).Msg("lock de órdenes en Redis")
	return lock.NewRedis(client, lockTTL), func() { _ = client.Close() }, nil
}

// Build construye la aplicación completa.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	app := &App{}

	stores, closeStores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Stores = stores
	app.closers = append(app.closers, closeStores)

	locker, closeLocker, err := newLocker(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, closeLocker)

	app.Metrics = metrics.NewPrometheus()
	tol := inventory.Tolerance{Quantity: cfg.Reconcile.QuantityTolerance, Price: cfg.Reconcile.PriceTolerance}

	app.AuthUC = auth.NewAuthUseCase(stores.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	app.ItemUC = usecase.NewItemUseCase(stores.Items)
	app.Ledger = ordering.NewLedger(stores.Tx, stores.Orders, app.Metrics, log)
	app.Planner = ordering.NewPlannerUseCase(stores.Items, app.Ledger, log)
	app.Reconciler = delivery.NewReconciler(stores.Tx, stores.Deliveries,
		delivery.WithTolerance(tol),
		delivery.WithLocker(locker),
		delivery.WithMetrics(app.Metrics),
		delivery.WithLogger(log),
	)
	app.Valuation = valuation.NewUseCase(stores.Tx, stores.Items, stores.Sales, log)

	log.Info().
		Str("store", cfg.App.StoreDriver).
		Int("qty_tolerance", tol.Quantity).
		Str("price_tolerance", tol.Price.String()).
		Msg("dependencias inicializadas")
	return app, nil
}
