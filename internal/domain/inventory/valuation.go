package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// TotalValue Σ quantity_on_hand × unit_value. Sin artículos devuelve 0.
func TotalValue(items []entity.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Value())
	}
	return total
}

// Discrepancy quantity_on_hand − counted. Positivo: el sistema sobreestima el stock.
func Discrepancy(item entity.Item, counted int) int {
	return item.QuantityOnHand - counted
}

// SalesMixPercentages porcentaje de cada categoría sobre el total:
// 100 × monto / total. Devuelve ErrDivisionUndefined si el total es cero.
func SalesMixPercentages(salesByCategory map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	total := decimal.Zero
	for _, amount := range salesByCategory {
		total = total.Add(amount)
	}
	if total.IsZero() {
		return nil, domain.ErrDivisionUndefined
	}
	out := make(map[string]decimal.Decimal, len(salesByCategory))
	for category, amount := range salesByCategory {
		out[category] = hundred.Mul(amount).Div(total)
	}
	return out, nil
}
