package repository

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// OrderFilter filtro de consulta de órdenes. Vacío = todas.
type OrderFilter struct {
	OrderID string
	Vendor  string
	Status  entity.OrderStatus
}

// OrderRepository puerto de persistencia de órdenes y su foto de líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// Get devuelve domain.ErrNotFound si la orden no existe.
	Get(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate como Get pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// SetStatus actualización condicional (compare-and-swap sobre status):
	// devuelve false si el estado previo no coincide o la orden no existe.
	SetStatus(ctx context.Context, id string, status, expectedPrior entity.OrderStatus) (bool, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}
