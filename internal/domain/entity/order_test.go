package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

func TestOrderStatus_Transiciones(t *testing.T) {
	assert.True(t, entity.OrderStatusOpen.CanTransitionTo(entity.OrderStatusClosed))
	assert.False(t, entity.OrderStatusClosed.CanTransitionTo(entity.OrderStatusClosed))
	assert.False(t, entity.OrderStatusClosed.CanTransitionTo(entity.OrderStatusOpen))
	assert.False(t, entity.OrderStatusOpen.CanTransitionTo(entity.OrderStatusOpen))
	assert.False(t, entity.OrderStatus("cancelled").Valid())
}

func TestOrder_CloseDosVeces(t *testing.T) {
	o := &entity.Order{ID: "o1", Status: entity.OrderStatusOpen}

	require.NoError(t, o.Close())
	assert.Equal(t, entity.OrderStatusClosed, o.Status)
	assert.ErrorIs(t, o.Close(), domain.ErrInvalidStateTransition)
}

func TestOrder_CloneNoComparteLineas(t *testing.T) {
	o := &entity.Order{ID: "o1", Lines: []entity.OrderLine{{ItemID: "a", ExpectedQuantity: 1}}}
	c := o.Clone()
	c.Lines[0].ExpectedQuantity = 99

	assert.Equal(t, 1, o.Lines[0].ExpectedQuantity)
}

func TestOrder_ExpectedTotalYLine(t *testing.T) {
	o := &entity.Order{Lines: []entity.OrderLine{
		{ItemID: "a", ExpectedQuantity: 10, ExpectedUnitPrice: decimal.NewFromInt(5)},
		{ItemID: "b", ExpectedQuantity: 20, ExpectedUnitPrice: decimal.NewFromInt(3)},
	}}
	assert.True(t, decimal.NewFromInt(110).Equal(o.ExpectedTotal()))

	l, ok := o.Line("b")
	assert.True(t, ok)
	assert.Equal(t, 20, l.ExpectedQuantity)
	_, ok = o.Line("zz")
	assert.False(t, ok)
}

func TestFitsMoneyScale(t *testing.T) {
	for _, s := range []string{"0", "10", "10.5001", "10.50000", "-3.1234"} {
		assert.True(t, entity.FitsMoneyScale(decimal.RequireFromString(s)), s)
	}
	for _, s := range []string{"10.50001", "0.00001", "1.123456"} {
		assert.False(t, entity.FitsMoneyScale(decimal.RequireFromString(s)), s)
	}
}
