package valuation_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/valuation"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
)

func newUseCase(t *testing.T) (*valuation.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: "a", Name: "A", Vendor: "Sysco", Type: "seco", QuantityOnHand: 10, UnitValue: decimal.RequireFromString("2.50")}))
	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: "b", Name: "B", Vendor: "USFoods", Type: "lacteo", QuantityOnHand: 4, UnitValue: decimal.RequireFromString("1.25")}))
	return valuation.NewUseCase(s, s.Items(), s.Sales(), nil), s
}

func TestInventoryValue(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	all, err := uc.InventoryValue(ctx, inventory.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Items)
	assert.True(t, decimal.RequireFromString("30").Equal(all.Total))

	sysco, err := uc.InventoryValue(ctx, inventory.Filter{Vendor: "Sysco"})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25").Equal(sysco.Total))

	none, err := uc.InventoryValue(ctx, inventory.Filter{Type: "congelado"})
	require.NoError(t, err)
	assert.True(t, none.Total.IsZero())
}

func TestDiscrepancy_NoModificaStock(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	d, err := uc.Discrepancy(ctx, "a", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Discrepancy)
	assert.False(t, d.Applied)

	it, err := s.Items().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 10, it.QuantityOnHand)

	_, err = uc.Discrepancy(ctx, "zz", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Discrepancy(ctx, "a", -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyHardCount(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	d, err := uc.ApplyHardCount(ctx, "b", 6)
	require.NoError(t, err)
	assert.Equal(t, -2, d.Discrepancy)
	assert.True(t, d.Applied)

	it, err := s.Items().GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 6, it.QuantityOnHand)
}

func TestApplyCounts_LoteAtomico(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	_, err := uc.ApplyCounts(ctx, []dto.ItemCountDTO{{ItemID: "a", Counted: 1}, {ItemID: "zz", Counted: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	it, err := s.Items().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 10, it.QuantityOnHand, "el lote fallido no aplica nada")

	_, err = uc.ApplyCounts(ctx, []dto.ItemCountDTO{{ItemID: "a", Counted: 1}, {ItemID: "a", Counted: 2}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := uc.ApplyCounts(ctx, []dto.ItemCountDTO{{ItemID: "a", Counted: 8}, {ItemID: "b", Counted: 4}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Discrepancy)
	assert.Equal(t, 0, out[1].Discrepancy)
}

func TestSalesMixFromAmounts(t *testing.T) {
	uc, _ := newUseCase(t)

	mix, err := uc.SalesMixFromAmounts(map[string]decimal.Decimal{
		"bebidas": decimal.NewFromInt(25),
		"comida":  decimal.NewFromInt(75),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(mix.Total))
	assert.True(t, decimal.NewFromInt(25).Equal(mix.Percentages["bebidas"]))
	assert.True(t, decimal.NewFromInt(75).Equal(mix.Percentages["comida"]))

	_, err = uc.SalesMixFromAmounts(map[string]decimal.Decimal{"bebidas": decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrDivisionUndefined)
	_, err = uc.SalesMixFromAmounts(nil)
	assert.ErrorIs(t, err, domain.ErrDivisionUndefined)
}

func TestSalesMix_DesdeVentasRegistradas(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()
	day := time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)

	for _, in := range []dto.RecordSaleRequest{
		{ItemName: "Café", Category: "bebidas", Amount: decimal.NewFromInt(30), SoldAt: &day},
		{ItemName: "Sandwich", Category: "comida", Amount: decimal.NewFromInt(90), SoldAt: &day},
	} {
		_, err := uc.RecordSale(ctx, in)
		require.NoError(t, err)
	}

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mix, err := uc.SalesMix(ctx, from, to)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(mix.Percentages["bebidas"]))

	_, err = uc.SalesMix(ctx, to, to.AddDate(0, 1, 0))
	assert.ErrorIs(t, err, domain.ErrDivisionUndefined, "sin ventas en el rango")

	_, err = uc.SalesMix(ctx, to, from)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ItemName: "x", Category: "y", Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.RecordSale(ctx, dto.RecordSaleRequest{ItemName: "x", Category: "y", Amount: decimal.RequireFromString("1.00001")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
