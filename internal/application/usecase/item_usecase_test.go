package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/infrastructure/memory"
)

func TestItemUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewItemUseCase(memory.NewStore().Items())

	created, err := uc.Create(ctx, dto.CreateItemRequest{
		Name: " Harina ", Vendor: "Sysco", Type: "seco", QuantityOnHand: 4, Par: 10,
		UnitValue: decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Harina", created.Name)
	assert.True(t, decimal.NewFromInt(10).Equal(created.Value))

	par := 12
	updated, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{Par: &par})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Par)
	assert.Equal(t, 4, updated.QuantityOnHand)

	list, err := uc.List(ctx, "Sysco", "")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	list, err = uc.List(ctx, "", "lacteo")
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewItemUseCase(memory.NewStore().Items())

	for name, in := range map[string]dto.CreateItemRequest{
		"sin nombre":      {Vendor: "Sysco"},
		"sin proveedor":   {Name: "Sal"},
		"stock negativo":  {Name: "Sal", Vendor: "Sysco", QuantityOnHand: -1},
		"par negativo":    {Name: "Sal", Vendor: "Sysco", Par: -1},
		"valor negativo":  {Name: "Sal", Vendor: "Sysco", UnitValue: decimal.NewFromInt(-1)},
		"cinco decimales": {Name: "Sal", Vendor: "Sysco", UnitValue: decimal.RequireFromString("2.00001")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err := uc.Update(ctx, "nope", dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := uc.Create(ctx, dto.CreateItemRequest{Name: "Sal", Vendor: "Sysco", UnitValue: decimal.RequireFromString("2.0001")})
	require.NoError(t, err)
	tooFine := decimal.RequireFromString("2.00015")
	_, err = uc.Update(ctx, created.ID, dto.UpdateItemRequest{UnitValue: &tooFine})
	assert.ErrorIs(t, err, domain.ErrValidation)
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.0001").Equal(got.UnitValue))
}
