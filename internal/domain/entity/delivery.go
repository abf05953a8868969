package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VarianceFlags advertencias por línea; no bloquean la conciliación.
type VarianceFlags struct {
	QuantityOutOfTolerance bool `json:"quantity_out_of_tolerance"`
	PriceOutOfTolerance    bool `json:"price_out_of_tolerance"`
}

// Any indica si alguna bandera está activa.
func (f VarianceFlags) Any() bool {
	return f.QuantityOutOfTolerance || f.PriceOutOfTolerance
}

// DeliveryLine resultado de conciliar una línea de la orden.
type DeliveryLine struct {
	ItemID            string
	ItemName          string
	ExpectedQuantity  int
	ExpectedUnitPrice decimal.Decimal
	QuantityDelivered int
	PriceDelivered    decimal.Decimal
	QuantityVariance  int             // entregado - esperado
	PriceVariance     decimal.Decimal // precio entregado - precio esperado
	LineTotal         decimal.Decimal // QuantityDelivered × PriceDelivered
	Flags             VarianceFlags
}

// DeliveryRecord registro inmutable de la entrega de una orden (uno por orden).
type DeliveryRecord struct {
	ID         string
	OrderID    string
	Vendor     string
	Lines      []DeliveryLine
	TotalValue decimal.Decimal
	RecordedAt time.Time
}

// FlaggedLines cuenta las líneas con alguna variación fuera de tolerancia.
func (d *DeliveryRecord) FlaggedLines() int {
	n := 0
	for _, l := range d.Lines {
		if l.Flags.Any() {
			n++
		}
	}
	return n
}

// TotalQuantity suma las cantidades entregadas.
func (d *DeliveryRecord) TotalQuantity() int {
	n := 0
	for _, l := range d.Lines {
		n += l.QuantityDelivered
	}
	return n
}
