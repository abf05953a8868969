package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale una venta registrada; alimenta la mezcla de ventas por categoría.
type Sale struct {
	ID       string
	ItemName string
	Category string
	Amount   decimal.Decimal
	SoldAt   time.Time
}
