package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportedLineRequest cantidad y precio recibidos de un artículo.
type ReportedLineRequest struct {
	ItemID            string          `json:"item_id" validate:"required"`
	QuantityDelivered int             `json:"quantity_delivered" validate:"min=0"`
	PriceDelivered    decimal.Decimal `json:"price_delivered"`
}

// ReconcileRequest entrada para registrar la entrega de una orden.
type ReconcileRequest struct {
	Lines []ReportedLineRequest `json:"lines" validate:"required,min=1"`
}

// DeliveryLineDTO resultado de conciliación de una línea.
type DeliveryLineDTO struct {
	ItemID                 string          `json:"item_id"`
	ItemName               string          `json:"item_name"`
	ExpectedQuantity       int             `json:"expected_quantity"`
	QuantityDelivered      int             `json:"quantity_delivered"`
	QuantityVariance       int             `json:"quantity_variance"`
	ExpectedUnitPrice      decimal.Decimal `json:"expected_unit_price"`
	PriceDelivered         decimal.Decimal `json:"price_delivered"`
	PriceVariance          decimal.Decimal `json:"price_variance"`
	LineTotal              decimal.Decimal `json:"line_total"`
	QuantityOutOfTolerance bool            `json:"quantity_out_of_tolerance"`
	PriceOutOfTolerance    bool            `json:"price_out_of_tolerance"`
}

// DeliveryResponse registro de entrega.
type DeliveryResponse struct {
	ID           string            `json:"id"`
	OrderID      string            `json:"order_id"`
	Vendor       string            `json:"vendor"`
	TotalValue   decimal.Decimal   `json:"total_value"`
	FlaggedLines int               `json:"flagged_lines"`
	RecordedAt   time.Time         `json:"recorded_at"`
	Lines        []DeliveryLineDTO `json:"lines"`
}

// DeliveryListResponse entregas de un proveedor.
type DeliveryListResponse struct {
	Vendor     string             `json:"vendor"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

// TotalValueResponse suma monetaria simple.
type TotalValueResponse struct {
	Total decimal.Decimal `json:"total"`
}
