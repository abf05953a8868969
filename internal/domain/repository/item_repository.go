package repository

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// ItemFilter filtro estructurado del catálogo (nunca texto SQL).
// Vendor y Type son excluyentes; Vendor gana si vienen ambos.
type ItemFilter struct {
	Vendor string
	Type   string
}

// ItemRepository puerto del catálogo de artículos (DIP).
// IncrementQuantity es la única vía por la que la conciliación modifica stock.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve domain.ErrNotFound si el artículo no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	// IncrementQuantity suma delta a quantity_on_hand; domain.ErrNotFound si el id no existe.
	IncrementQuantity(ctx context.Context, id string, delta int) (*entity.Item, error)
	// SetQuantity sobrescribe quantity_on_hand (conteo físico).
	SetQuantity(ctx context.Context, id string, quantity int) (*entity.Item, error)
}
