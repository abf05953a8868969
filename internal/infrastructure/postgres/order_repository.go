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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las líneas viven en order_lines como foto; nunca se actualizan.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador (pool o tx).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera y todas sus líneas. Debe llamarse dentro de
// una transacción para que la orden quede completa o no quede.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, vendor, ordered_at, expected_delivery_date, status)
		VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.Vendor, order.OrderedAt, order.ExpectedDeliveryDate, string(order.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order %s", domain.ErrDuplicate, order.ID)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, l := range order.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_lines (order_id, line_no, item_id, item_name, vendor, expected_quantity, expected_unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			order.ID, i+1, l.ItemID, l.ItemName, l.Vendor, l.ExpectedQuantity, l.ExpectedUnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order line %d: %w", i+1, err)
		}
	}
	return nil
}

// Get obtiene una orden con sus líneas.
func (r *OrderRepo) Get(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate como Get pero con SELECT ... FOR UPDATE sobre la cabecera.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

func (r *OrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT id, vendor, ordered_at, expected_delivery_date, status FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	if err := r.loadLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SetStatus UPDATE condicional: solo aplica si el estado actual es expectedPrior.
func (r *OrderRepo) SetStatus(ctx context.Context, id string, status, expectedPrior entity.OrderStatus) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1 AND status = $3`,
		id, string(status), string(expectedPrior),
	)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List devuelve las órdenes que cumplen el filtro, en orden de creación.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT id, vendor, ordered_at, expected_delivery_date, status FROM orders WHERE 1=1`
	var args []any
	if filter.OrderID != "" {
		if _, err := uuid.Parse(filter.OrderID); err != nil {
			return []*entity.Order{}, nil
		}
		args = append(args, filter.OrderID)
		query += fmt.Sprintf(` AND id = $%d`, len(args))
	}
	if filter.Vendor != "" {
		args = append(args, filter.Vendor)
		query += fmt.Sprintf(` AND vendor = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY seq`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	// Las líneas se cargan después de cerrar rows: una tx pgx no admite
	// dos consultas abiertas a la vez.
	for _, o := range list {
		if err := r.loadLines(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, o *entity.Order) error {
	rows, err := r.q.Query(ctx, `
		SELECT item_id, item_name, vendor, expected_quantity, expected_unit_price
		FROM order_lines WHERE order_id = $1 ORDER BY line_no`, o.ID)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	o.Lines = []entity.OrderLine{}
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.Vendor, &l.ExpectedQuantity, &l.ExpectedUnitPrice); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var (
		o      entity.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.Vendor, &o.OrderedAt, &o.ExpectedDeliveryDate, &status); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
