package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas registradas en memoria, en orden de llegada.
type SaleRepo struct {
	s *Store
}

// Create agrega la venta; asigna ID si viene vacío.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	return r.s.view(nil, func(st *state) error {
		st.sales = append(st.sales, *sale)
		return nil
	})
}

// TotalsByCategory suma los montos por categoría con SoldAt en [from, to).
func (r *SaleRepo) TotalsByCategory(_ context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	err := r.s.view(nil, func(st *state) error {
		for _, s := range st.sales {
			if s.SoldAt.Before(from) || !s.SoldAt.Before(to) {
				continue
			}
			out[s.Category] = out[s.Category].Add(s.Amount)
		}
		return nil
	})
	return out, err
}
