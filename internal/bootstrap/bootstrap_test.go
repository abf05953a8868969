package bootstrap_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/bootstrap"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/pkg/config"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

func TestBuild_Memoria(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		App:       config.AppConfig{StoreDriver: config.StoreDriverMemory},
		JWT:       config.JWTConfig{Secret: "s", Expiration: 5, Issuer: "test"},
		Reconcile: config.ReconcileConfig{QuantityTolerance: 5, PriceTolerance: decimal.RequireFromString("0.5")},
	}
	app, err := bootstrap.Build(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	item, err := app.ItemUC.Create(ctx, dto.CreateItemRequest{Name: "Harina", Vendor: "Sysco", Par: 4, UnitValue: decimal.NewFromInt(2)})
	require.NoError(t, err)

	orders, err := app.Planner.PlaceOrders(ctx, inventory.Filter{Vendor: "Sysco"}, map[string]bool{item.ID: true}, "2099-01-01")
	require.NoError(t, err)
	require.Len(t, orders, 1)

	// El planificador y el libro comparten el mismo almacén
	got, err := app.Ledger.Get(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Lines[0].ExpectedQuantity)
}
