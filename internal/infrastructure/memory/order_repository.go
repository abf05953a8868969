package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes en memoria. Devuelve copias: la foto de líneas guardada
// no puede modificarse desde fuera.
type OrderRepo struct {
	s  *Store
	tx *state
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.orders[order.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[order.ID] = order.Clone()
		st.orderSeq = append(st.orderSeq, order.ID)
		return nil
	})
}

func (r *OrderRepo) Get(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.view(r.tx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
		}
		out = o.Clone()
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: Store.Run ya serializa las transacciones.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepo) SetStatus(_ context.Context, id string, status, expectedPrior entity.OrderStatus) (bool, error) {
	swapped := false
	err := r.s.view(r.tx, func(st *state) error {
		o, ok := st.orders[id]
		if !ok || o.Status != expectedPrior {
			return nil
		}
		o.Status = status
		swapped = true
		return nil
	})
	return swapped, err
}

func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	out := []*entity.Order{}
	err := r.s.view(r.tx, func(st *state) error {
		for _, id := range st.orderSeq {
			o := st.orders[id]
			if filter.OrderID != "" && o.ID != filter.OrderID {
				continue
			}
			if filter.Vendor != "" && o.Vendor != filter.Vendor {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			out = append(out, o.Clone())
		}
		return nil
	})
	return out, err
}
