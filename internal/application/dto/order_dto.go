package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReplenishmentLineDTO línea candidata de reposición.
type ReplenishmentLineDTO struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Vendor            string          `json:"vendor"`
	Type              string          `json:"type"`
	QuantityOnHand    int             `json:"quantity_on_hand"`
	Par               int             `json:"par"`
	ProposedQuantity  int             `json:"proposed_quantity"`
	ExpectedUnitPrice decimal.Decimal `json:"expected_unit_price"`
	ExpectedTotal     decimal.Decimal `json:"expected_total"`
}

// ReplenishmentPlanResponse propuesta completa.
type ReplenishmentPlanResponse struct {
	Vendor string                 `json:"vendor,omitempty"`
	Type   string                 `json:"type,omitempty"`
	Lines  []ReplenishmentLineDTO `json:"lines"`
}

// PlaceOrdersRequest decisión del operador sobre la propuesta.
// Decisions: item_id → aceptada. Las líneas sin decisión se descartan.
type PlaceOrdersRequest struct {
	Vendor               string          `json:"vendor"`
	Type                 string          `json:"type"`
	Decisions            map[string]bool `json:"decisions" validate:"required"`
	ExpectedDeliveryDate string          `json:"expected_delivery_date" validate:"required"`
}

// OrderLineDTO foto de una línea de la orden.
type OrderLineDTO struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	ExpectedQuantity  int             `json:"expected_quantity"`
	ExpectedUnitPrice decimal.Decimal `json:"expected_unit_price"`
	ExpectedTotal     decimal.Decimal `json:"expected_total"`
}

// OrderResponse salida de una orden de compra.
type OrderResponse struct {
	ID                   string          `json:"id"`
	Vendor               string          `json:"vendor"`
	Status               string          `json:"status"`
	OrderedAt            time.Time       `json:"ordered_at"`
	ExpectedDeliveryDate string          `json:"expected_delivery_date"`
	ExpectedTotal        decimal.Decimal `json:"expected_total"`
	Lines                []OrderLineDTO  `json:"lines"`
}

// OrderListResponse lista de órdenes.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}
