package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create registra una venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = time.Now()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, item_name, category, amount, sold_at) VALUES ($1, $2, $3, $4, $5)`,
		sale.ID, sale.ItemName, sale.Category, sale.Amount, sale.SoldAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// TotalsByCategory agrega montos por categoría en [from, to).
func (r *SaleRepo) TotalsByCategory(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT category, SUM(amount) FROM sales
		WHERE sold_at >= $1 AND sold_at < $2
		GROUP BY category`, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			category string
			amount   decimal.Decimal
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scan sales total: %w", err)
		}
		totals[category] = amount
	}
	return totals, rows.Err()
}
