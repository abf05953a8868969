package repository

import "context"

// Repos repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Items      ItemRepository
	Orders     OrderRepository
	Deliveries DeliveryRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil,
// Rollback de todas las escrituras en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
