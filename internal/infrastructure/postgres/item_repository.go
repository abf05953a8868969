package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, vendor, type, quantity_on_hand, par, unit_value, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador (pool o tx).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo; genera el ID si viene vacío.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	query := `
		INSERT INTO items (id, name, vendor, type, quantity_on_hand, par, unit_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Vendor, item.Type, item.QuantityOnHand, item.Par, item.UnitValue,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %s", domain.ErrDuplicate, item.ID)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "item", id)
	}
	return it, nil
}

// List devuelve el catálogo en orden de alta, filtrado por proveedor o tipo.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	switch {
	case filter.Vendor != "":
		query += ` WHERE vendor = $1`
		args = append(args, filter.Vendor)
	case filter.Type != "":
		query += ` WHERE type = $1`
		args = append(args, filter.Type)
	}
	query += ` ORDER BY seq`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list := []entity.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, *it)
	}
	return list, rows.Err()
}

// Update actualiza los datos descriptivos; la cantidad solo cambia vía
// IncrementQuantity o SetQuantity.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = time.Now()
	query := `
		UPDATE items SET name = $2, vendor = $3, type = $4, par = $5, unit_value = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Vendor, item.Type, item.Par, item.UnitValue, item.UpdatedAt,
	)
	if err != nil {
		return notFoundOr(err, "item", item.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, item.ID)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return notFoundOr(err, "item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}

// IncrementQuantity suma delta en una sola sentencia (sin read-modify-write).
// El CHECK de la tabla rechaza resultados negativos.
func (r *ItemRepo) IncrementQuantity(ctx context.Context, id string, delta int) (*entity.Item, error) {
	query := `
		UPDATE items SET quantity_on_hand = quantity_on_hand + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("%w: item %s quedaría con stock negativo", domain.ErrValidation, id)
		}
		return nil, notFoundOr(err, "item", id)
	}
	return it, nil
}

// SetQuantity sobrescribe quantity_on_hand con el conteo físico.
func (r *ItemRepo) SetQuantity(ctx context.Context, id string, quantity int) (*entity.Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity_on_hand negativo", domain.ErrValidation)
	}
	query := `
		UPDATE items SET quantity_on_hand = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + itemColumns
	it, err := scanItem(r.q.QueryRow(ctx, query, id, quantity))
	if err != nil {
		return nil, notFoundOr(err, "item", id)
	}
	return it, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*entity.Item, error) {
	var it entity.Item
	if err := row.Scan(&it.ID, &it.Name, &it.Vendor, &it.Type, &it.QuantityOnHand, &it.Par, &it.UnitValue,
		&it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
