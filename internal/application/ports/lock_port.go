package ports

import "context"

// OrderLocker define el puerto de exclusión por orden para la conciliación.
// Acquire bloquea hasta obtener el lock o hasta que ctx se cancele; la función
// devuelta lo libera. Es un filtro previo: la garantía de una sola conciliación
// por orden la da la transacción (lock de fila + update condicional).
type OrderLocker interface {
	Acquire(ctx context.Context, orderID string) (release func(), err error)
}
