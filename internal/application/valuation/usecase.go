// Package valuation calcula métricas derivadas del inventario: valorización,
// discrepancias contra conteo físico y mezcla de ventas por categoría.
package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// UseCase casos de uso de valorización y conteo físico.
type UseCase struct {
	tx    repository.TxRunner
	items repository.ItemRepository
	sales repository.SaleRepository
	log   *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, items repository.ItemRepository, sales repository.SaleRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, items: items, sales: sales, log: log.Component("valuation")}
}

// InventoryValue Σ cantidad × valor unitario sobre el catálogo filtrado.
func (uc *UseCase) InventoryValue(ctx context.Context, filter inventory.Filter) (*dto.InventoryValueResponse, error) {
	f := filter.Normalize()
	items, err := uc.items.List(ctx, repository.ItemFilter{Vendor: f.Vendor, Type: f.Type})
	if err != nil {
		return nil, err
	}
	return &dto.InventoryValueResponse{
		Vendor: f.Vendor,
		Type:   f.Type,
		Items:  len(items),
		Total:  inventory.TotalValue(items),
	}, nil
}

// Discrepancy compara el stock registrado con un conteo sin modificar nada.
func (uc *UseCase) Discrepancy(ctx context.Context, itemID string, counted int) (*dto.DiscrepancyResponse, error) {
	if counted < 0 {
		return nil, fmt.Errorf("%w: conteo negativo para item %s", domain.ErrValidation, itemID)
	}
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return discrepancyOf(item, counted, false), nil
}

// ApplyHardCount sobrescribe el stock con el conteo físico y devuelve la
// discrepancia que quedó corregida.
func (uc *UseCase) ApplyHardCount(ctx context.Context, itemID string, counted int) (*dto.DiscrepancyResponse, error) {
	out, err := uc.ApplyCounts(ctx, []dto.ItemCountDTO{{ItemID: itemID, Counted: counted}})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ApplyCounts aplica un lote de conteos en una sola transacción: si un
// artículo no existe no se aplica ninguno.
func (uc *UseCase) ApplyCounts(ctx context.Context, counts []dto.ItemCountDTO) ([]dto.DiscrepancyResponse, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: lote de conteos vacío", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(counts))
	for _, c := range counts {
		switch {
		case c.ItemID == "":
			return nil, fmt.Errorf("%w: conteo sin item_id", domain.ErrValidation)
		case c.Counted < 0:
			return nil, fmt.Errorf("%w: conteo negativo para item %s", domain.ErrValidation, c.ItemID)
		case seen[c.ItemID]:
			return nil, fmt.Errorf("%w: item %s repetido en el lote", domain.ErrValidation, c.ItemID)
		}
		seen[c.ItemID] = true
	}

	out := make([]dto.DiscrepancyResponse, 0, len(counts))
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		for _, c := range counts {
			item, err := r.Items.GetByID(ctx, c.ItemID)
			if err != nil {
				return err
			}
			d := discrepancyOf(item, c.Counted, true)
			if _, err := r.Items.SetQuantity(ctx, c.ItemID, c.Counted); err != nil {
				return err
			}
			out = append(out, *d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, d := range out {
		if d.Discrepancy != 0 {
			uc.log.Info().
				Str("item_id", d.ItemID).
				Int("on_hand", d.QuantityOnHand).
				Int("counted", d.Counted).
				Int("discrepancy", d.Discrepancy).
				Msg("conteo físico aplicado")
		}
	}
	return out, nil
}

// SalesMixFromAmounts porcentajes por categoría sobre montos dados.
func (uc *UseCase) SalesMixFromAmounts(sales map[string]decimal.Decimal) (*dto.SalesMixResponse, error) {
	for category, amount := range sales {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: monto negativo en categoría %s", domain.ErrValidation, category)
		}
	}
	pct, err := inventory.SalesMixPercentages(sales)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, amount := range sales {
		total = total.Add(amount)
	}
	return &dto.SalesMixResponse{Total: total, Percentages: pct}, nil
}

// SalesMix calcula la mezcla sobre las ventas registradas en [from, to).
func (uc *UseCase) SalesMix(ctx context.Context, from, to time.Time) (*dto.SalesMixResponse, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: el rango de fechas es vacío", domain.ErrValidation)
	}
	totals, err := uc.sales.TotalsByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp, err := uc.SalesMixFromAmounts(totals)
	if err != nil {
		return nil, err
	}
	resp.Start, resp.End = &from, &to
	return resp, nil
}

// RecordSale registra una venta para la mezcla por categoría.
func (uc *UseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	category := strings.TrimSpace(in.Category)
	switch {
	case strings.TrimSpace(in.ItemName) == "":
		return nil, fmt.Errorf("%w: item_name requerido", domain.ErrValidation)
	case category == "":
		return nil, fmt.Errorf("%w: category requerida", domain.ErrValidation)
	case in.Amount.IsNegative():
		return nil, fmt.Errorf("%w: amount negativo", domain.ErrValidation)
	case !entity.FitsMoneyScale(in.Amount):
		return nil, fmt.Errorf("%w: amount con más de %d decimales", domain.ErrValidation, entity.MoneyScale)
	}
	soldAt := time.Now()
	if in.SoldAt != nil {
		soldAt = *in.SoldAt
	}
	sale := &entity.Sale{
		ID:       uuid.New().String(),
		ItemName: strings.TrimSpace(in.ItemName),
		Category: category,
		Amount:   in.Amount,
		SoldAt:   soldAt,
	}
	if err := uc.sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return &dto.SaleResponse{
		ID:       sale.ID,
		ItemName: sale.ItemName,
		Category: sale.Category,
		Amount:   sale.Amount,
		SoldAt:   sale.SoldAt,
	}, nil
}

func discrepancyOf(item *entity.Item, counted int, applied bool) *dto.DiscrepancyResponse {
	return &dto.DiscrepancyResponse{
		ItemID:         item.ID,
		ItemName:       item.Name,
		QuantityOnHand: item.QuantityOnHand,
		Counted:        counted,
		Discrepancy:    inventory.Discrepancy(*item, counted),
		Applied:        applied,
	}
}
