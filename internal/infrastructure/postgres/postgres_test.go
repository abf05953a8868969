package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reposicion-api/pkg/config"
)

// testPool abre una conexión a TEST_DATABASE_URL; sin ella los tests se omiten.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func TestItemRepo_IncrementQuantity(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := postgres.NewItemRepository(pool)

	it := &entity.Item{Name: "Harina", Vendor: "Sysco-" + uuid.NewString()[:8], Type: "seco",
		QuantityOnHand: 3, Par: 10, UnitValue: decimal.RequireFromString("2.50")}
	require.NoError(t, repo.Create(ctx, it))

	got, err := repo.IncrementQuantity(ctx, it.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 7, got.QuantityOnHand)

	_, err = repo.IncrementQuantity(ctx, it.ID, -100)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_RollbackYCAS(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)
	items := postgres.NewItemRepository(pool)
	orders := postgres.NewOrderRepository(pool)

	vendor := "USFoods-" + uuid.NewString()[:8]
	it := &entity.Item{Name: "Leche", Vendor: vendor, QuantityOnHand: 1, Par: 5, UnitValue: decimal.NewFromInt(3)}
	require.NoError(t, items.Create(ctx, it))

	order := &entity.Order{Vendor: vendor, Status: entity.OrderStatusOpen, ExpectedDeliveryDate: time.Now(),
		Lines: []entity.OrderLine{{ItemID: it.ID, ItemName: it.Name, Vendor: vendor, ExpectedQuantity: 4, ExpectedUnitPrice: it.UnitValue}}}
	require.NoError(t, runner.Run(ctx, func(r repository.Repos) error { return r.Orders.Create(ctx, order) }))

	boom := errors.New("boom")
	err := runner.Run(ctx, func(r repository.Repos) error {
		if _, err := r.Orders.GetForUpdate(ctx, order.ID); err != nil {
			return err
		}
		if _, err := r.Items.IncrementQuantity(ctx, it.ID, 4); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.QuantityOnHand)

	ok, err := orders.SetStatus(ctx, order.ID, entity.OrderStatusClosed, entity.OrderStatusOpen)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = orders.SetStatus(ctx, order.ID, entity.OrderStatusClosed, entity.OrderStatusOpen)
	require.NoError(t, err)
	assert.False(t, ok)

	loaded, err := orders.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 4, loaded.Lines[0].ExpectedQuantity)
	assert.Equal(t, entity.OrderStatusClosed, loaded.Status)
}
