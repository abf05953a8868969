package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// SaleRepository puerto de ventas registradas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// TotalsByCategory suma montos por categoría en [from, to).
	TotalsByCategory(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error)
}
