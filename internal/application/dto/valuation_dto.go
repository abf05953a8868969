package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryValueResponse valorización del inventario (Σ cantidad × valor unitario).
type InventoryValueResponse struct {
	Vendor string          `json:"vendor,omitempty"`
	Type   string          `json:"type,omitempty"`
	Items  int             `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// CountRequest conteo físico de un artículo.
type CountRequest struct {
	Counted int `json:"counted" validate:"min=0"`
}

// ItemCountDTO conteo de un artículo dentro de un lote.
type ItemCountDTO struct {
	ItemID  string `json:"item_id" validate:"required"`
	Counted int    `json:"counted" validate:"min=0"`
}

// BatchCountRequest lote de conteos aplicado en una sola transacción.
type BatchCountRequest struct {
	Counts []ItemCountDTO `json:"counts" validate:"required,min=1"`
}

// DiscrepancyResponse diferencia entre sistema y conteo físico.
// Positivo: el sistema registra más de lo contado.
type DiscrepancyResponse struct {
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_name"`
	QuantityOnHand int    `json:"quantity_on_hand"`
	Counted        int    `json:"counted"`
	Discrepancy    int    `json:"discrepancy"`
	Applied        bool   `json:"applied"`
}

// SalesMixRequest montos de venta por categoría.
type SalesMixRequest struct {
	Sales map[string]decimal.Decimal `json:"sales" validate:"required"`
}

// SalesMixResponse porcentaje de cada categoría sobre el total.
type SalesMixResponse struct {
	Start       *time.Time                 `json:"start,omitempty"`
	End         *time.Time                 `json:"end,omitempty"`
	Total       decimal.Decimal            `json:"total"`
	Percentages map[string]decimal.Decimal `json:"percentages"`
}

// RecordSaleRequest entrada para registrar una venta.
type RecordSaleRequest struct {
	ItemName string          `json:"item_name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	SoldAt   *time.Time      `json:"sold_at"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID       string          `json:"id"`
	ItemName string          `json:"item_name"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	SoldAt   time.Time       `json:"sold_at"`
}
