package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

func TestMoney_SeparadoresPorIdioma(t *testing.T) {
	en := NewMarotoPDFGenerator(language.English)
	assert.Equal(t, "$1,234,567.50", en.money(decimal.RequireFromString("1234567.5")))

	es := NewMarotoPDFGenerator(language.Spanish)
	assert.Equal(t, "$1.234.567,50", es.money(decimal.RequireFromString("1234567.5")))
}

func TestGenerateOrderPDF(t *testing.T) {
	g := NewMarotoPDFGenerator(language.Spanish)
	order := &entity.Order{
		ID:                   "0b9c7f55-7a55-4bb0-9a57-5a8a9f4c2d11",
		Vendor:               "Sysco",
		OrderedAt:            time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		ExpectedDeliveryDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:               entity.OrderStatusOpen,
		Lines: []entity.OrderLine{
			{ItemID: "a", ItemName: "Harina 25kg", ExpectedQuantity: 10, ExpectedUnitPrice: decimal.RequireFromString("5.00")},
			{ItemID: "b", ItemName: "Aceite 5L", ExpectedQuantity: 20, ExpectedUnitPrice: decimal.RequireFromString("3.00")},
		},
	}

	b, err := g.GenerateOrderPDF(order)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}
