package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
)

// DateLayout formato de fecha calendario para la entrega esperada.
const DateLayout = "2006-01-02"

// OrderStatus estados de una orden de compra.
type OrderStatus string

// Estados válidos. open es el único estado inicial; closed es terminal.
const (
	OrderStatusOpen   OrderStatus = "open"
	OrderStatusClosed OrderStatus = "closed"
)

// Valid indica si s es un estado conocido.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusOpen || s == OrderStatusClosed
}

// CanTransitionTo indica si la transición s → next está permitida.
// La única transición existente es open → closed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusOpen && next == OrderStatusClosed
}

// OrderLine es la foto de un artículo al momento de crear la orden.
// No es un join vivo: cambios posteriores en el catálogo no la afectan.
type OrderLine struct {
	ItemID            string
	ItemName          string
	Vendor            string
	ExpectedQuantity  int
	ExpectedUnitPrice decimal.Decimal
}

// ExpectedTotal devuelve ExpectedQuantity × ExpectedUnitPrice.
func (l OrderLine) ExpectedTotal() decimal.Decimal {
	return decimal.NewFromInt(int64(l.ExpectedQuantity)).Mul(l.ExpectedUnitPrice)
}

// Order representa una orden de compra a un proveedor.
// Se crea completa (no se agregan líneas después) y en estado open.
type Order struct {
	ID                   string
	Vendor               string
	OrderedAt            time.Time
	ExpectedDeliveryDate time.Time
	Lines                []OrderLine
	Status               OrderStatus
}

// IsOpen indica si la orden espera entrega.
func (o *Order) IsOpen() bool { return o.Status == OrderStatusOpen }

// Close aplica la transición open → closed sobre la entidad.
func (o *Order) Close() error {
	if !o.Status.CanTransitionTo(OrderStatusClosed) {
		return domain.ErrInvalidStateTransition
	}
	o.Status = OrderStatusClosed
	return nil
}

// ExpectedTotal suma el valor esperado de todas las líneas.
func (o *Order) ExpectedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.ExpectedTotal())
	}
	return total
}

// Line devuelve la línea del artículo indicado, si existe.
func (o *Order) Line(itemID string) (OrderLine, bool) {
	for _, l := range o.Lines {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return OrderLine{}, false
}

// Clone devuelve una copia profunda (las líneas no se comparten).
func (o *Order) Clone() *Order {
	c := *o
	c.Lines = append([]OrderLine(nil), o.Lines...)
	return &c
}
