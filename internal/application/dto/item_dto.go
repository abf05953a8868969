package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para dar de alta un artículo.
type CreateItemRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=255"`
	Vendor         string          `json:"vendor" validate:"required,min=1,max=255"`
	Type           string          `json:"type"`
	QuantityOnHand int             `json:"quantity_on_hand" validate:"min=0"`
	Par            int             `json:"par" validate:"min=0"`
	UnitValue      decimal.Decimal `json:"unit_value"`
}

// UpdateItemRequest entrada para actualizar un artículo. La cantidad en mano
// no se edita aquí: cambia por entregas o conteos.
type UpdateItemRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Vendor    *string          `json:"vendor" validate:"omitempty,min=1,max=255"`
	Type      *string          `json:"type"`
	Par       *int             `json:"par" validate:"omitempty,min=0"`
	UnitValue *decimal.Decimal `json:"unit_value"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Vendor         string          `json:"vendor"`
	Type           string          `json:"type"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	Par            int             `json:"par"`
	UnitValue      decimal.Decimal `json:"unit_value"`
	Value          decimal.Decimal `json:"value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ItemListResponse lista de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}
