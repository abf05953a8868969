package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo registros de entrega en memoria, uno por orden.
type DeliveryRepo struct {
	s  *Store
	tx *state
}

func (r *DeliveryRepo) Append(_ context.Context, record *entity.DeliveryRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	return r.s.view(r.tx, func(st *state) error {
		if _, ok := st.deliveries[record.OrderID]; ok {
			return fmt.Errorf("%w: entrega de la orden %s", domain.ErrDuplicate, record.OrderID)
		}
		st.deliveries[record.OrderID] = cloneDelivery(record)
		st.delivSeq = append(st.delivSeq, record.OrderID)
		return nil
	})
}

func (r *DeliveryRepo) GetByOrderID(_ context.Context, orderID string) (*entity.DeliveryRecord, error) {
	var out *entity.DeliveryRecord
	err := r.s.view(r.tx, func(st *state) error {
		d, ok := st.deliveries[orderID]
		if !ok {
			return fmt.Errorf("%w: entrega de la orden %s", domain.ErrNotFound, orderID)
		}
		out = cloneDelivery(d)
		return nil
	})
	return out, err
}

func (r *DeliveryRepo) ListByVendor(_ context.Context, vendor string) ([]*entity.DeliveryRecord, error) {
	out := []*entity.DeliveryRecord{}
	err := r.s.view(r.tx, func(st *state) error {
		for _, orderID := range st.delivSeq {
			d := st.deliveries[orderID]
			if vendor == "" || d.Vendor == vendor {
				out = append(out, cloneDelivery(d))
			}
		}
		return nil
	})
	return out, err
}

func (r *DeliveryRepo) TotalValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.s.view(r.tx, func(st *state) error {
		for _, d := range st.deliveries {
			total = total.Add(d.TotalValue)
		}
		return nil
	})
	return total, err
}
