package dto

import (
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
)

// NewItemResponse mapea un artículo a su salida HTTP.
func NewItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Vendor:         it.Vendor,
		Type:           it.Type,
		QuantityOnHand: it.QuantityOnHand,
		Par:            it.Par,
		UnitValue:      it.UnitValue,
		Value:          it.Value(),
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

// NewReplenishmentLine mapea una candidata del planificador.
func NewReplenishmentLine(c inventory.Candidate) ReplenishmentLineDTO {
	return ReplenishmentLineDTO{
		ItemID:            c.Line.ItemID,
		ItemName:          c.Line.ItemName,
		Vendor:            c.Line.Vendor,
		Type:              c.Item.Type,
		QuantityOnHand:    c.Item.QuantityOnHand,
		Par:               c.Item.Par,
		ProposedQuantity:  c.Line.ExpectedQuantity,
		ExpectedUnitPrice: c.Line.ExpectedUnitPrice,
		ExpectedTotal:     c.Line.ExpectedTotal(),
	}
}

// NewOrderResponse mapea una orden con su foto de líneas.
func NewOrderResponse(o *entity.Order) OrderResponse {
	lines := make([]OrderLineDTO, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineDTO{
			ItemID:            l.ItemID,
			ItemName:          l.ItemName,
			ExpectedQuantity:  l.ExpectedQuantity,
			ExpectedUnitPrice: l.ExpectedUnitPrice,
			ExpectedTotal:     l.ExpectedTotal(),
		})
	}
	return OrderResponse{
		ID:                   o.ID,
		Vendor:               o.Vendor,
		Status:               string(o.Status),
		OrderedAt:            o.OrderedAt,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate.Format(entity.DateLayout),
		ExpectedTotal:        o.ExpectedTotal(),
		Lines:                lines,
	}
}

// NewDeliveryResponse mapea un registro de entrega.
func NewDeliveryResponse(d *entity.DeliveryRecord) DeliveryResponse {
	lines := make([]DeliveryLineDTO, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, DeliveryLineDTO{
			ItemID:                 l.ItemID,
			ItemName:               l.ItemName,
			ExpectedQuantity:       l.ExpectedQuantity,
			QuantityDelivered:      l.QuantityDelivered,
			QuantityVariance:       l.QuantityVariance,
			ExpectedUnitPrice:      l.ExpectedUnitPrice,
			PriceDelivered:         l.PriceDelivered,
			PriceVariance:          l.PriceVariance,
			LineTotal:              l.LineTotal,
			QuantityOutOfTolerance: l.Flags.QuantityOutOfTolerance,
			PriceOutOfTolerance:    l.Flags.PriceOutOfTolerance,
		})
	}
	return DeliveryResponse{
		ID:           d.ID,
		OrderID:      d.OrderID,
		Vendor:       d.Vendor,
		TotalValue:   d.TotalValue,
		FlaggedLines: d.FlaggedLines(),
		RecordedAt:   d.RecordedAt,
		Lines:        lines,
	}
}
