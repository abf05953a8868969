package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo con su nivel par.
// QuantityOnHand es la verdad actual del almacén y nunca es negativa;
// solo la modifican la conciliación de entregas y el conteo físico.
type Item struct {
	ID             string
	Name           string
	Vendor         string
	Type           string // categoría del artículo
	QuantityOnHand int
	Par            int             // nivel objetivo de stock
	UnitValue      decimal.Decimal // valor unitario (no negativo)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Value devuelve QuantityOnHand × UnitValue.
func (i Item) Value() decimal.Decimal {
	return decimal.NewFromInt(int64(i.QuantityOnHand)).Mul(i.UnitValue)
}

// MoneyScale decimales con que se persisten precios y montos (NUMERIC(14,4)).
const MoneyScale = 4

// FitsMoneyScale indica si d cabe en MoneyScale decimales sin redondear.
// Ceros a la derecha no cuentan: 10.50000 cabe, 10.50001 no.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
