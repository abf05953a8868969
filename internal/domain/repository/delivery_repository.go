package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// DeliveryRepository puerto de registros de entrega (solo append).
type DeliveryRepository interface {
	// Append persiste el registro; domain.ErrDuplicate si la orden ya tiene entrega.
	Append(ctx context.Context, record *entity.DeliveryRecord) error
	// GetByOrderID devuelve domain.ErrNotFound si la orden no tiene entrega.
	GetByOrderID(ctx context.Context, orderID string) (*entity.DeliveryRecord, error)
	ListByVendor(ctx context.Context, vendor string) ([]*entity.DeliveryRecord, error)
	TotalValue(ctx context.Context) (decimal.Decimal, error)
}
