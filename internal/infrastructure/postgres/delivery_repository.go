package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
// deliveries.order_id es UNIQUE: una sola entrega por orden.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador (pool o tx).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Append inserta el registro y sus líneas.
func (r *DeliveryRepo) Append(ctx context.Context, record *entity.DeliveryRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, order_id, vendor, total_value, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.OrderID, record.Vendor, record.TotalValue, record.RecordedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la orden %s ya tiene entrega", domain.ErrDuplicate, record.OrderID)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}

	for i, l := range record.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO delivery_lines (delivery_id, line_no, item_id, item_name, expected_quantity, expected_unit_price,
				quantity_delivered, price_delivered, line_total, quantity_out_of_tolerance, price_out_of_tolerance)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			record.ID, i+1, l.ItemID, l.ItemName, l.ExpectedQuantity, l.ExpectedUnitPrice,
			l.QuantityDelivered, l.PriceDelivered, l.LineTotal,
			l.Flags.QuantityOutOfTolerance, l.Flags.PriceOutOfTolerance,
		)
		if err != nil {
			return fmt.Errorf("insert delivery line %d: %w", i+1, err)
		}
	}
	return nil
}

// GetByOrderID obtiene la entrega de una orden.
func (r *DeliveryRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.DeliveryRecord, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, `
		SELECT id, order_id, vendor, total_value, recorded_at FROM deliveries WHERE order_id = $1`, orderID))
	if err != nil {
		return nil, notFoundOr(err, "delivery for order", orderID)
	}
	if err := r.loadLines(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByVendor lista las entregas de un proveedor en orden de registro.
func (r *DeliveryRepo) ListByVendor(ctx context.Context, vendor string) ([]*entity.DeliveryRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, vendor, total_value, recorded_at FROM deliveries
		WHERE vendor = $1 ORDER BY recorded_at, id`, vendor)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	list := []*entity.DeliveryRecord{}
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	for _, d := range list {
		if err := r.loadLines(ctx, d); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// TotalValue suma total_value de todas las entregas.
func (r *DeliveryRepo) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total_value), 0) FROM deliveries`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum deliveries: %w", err)
	}
	return total, nil
}

func (r *DeliveryRepo) loadLines(ctx context.Context, d *entity.DeliveryRecord) error {
	rows, err := r.q.Query(ctx, `
		SELECT item_id, item_name, expected_quantity, expected_unit_price, quantity_delivered, price_delivered,
			line_total, quantity_out_of_tolerance, price_out_of_tolerance
		FROM delivery_lines WHERE delivery_id = $1 ORDER BY line_no`, d.ID)
	if err != nil {
		return fmt.Errorf("list delivery lines: %w", err)
	}
	defer rows.Close()

	d.Lines = []entity.DeliveryLine{}
	for rows.Next() {
		var l entity.DeliveryLine
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.ExpectedQuantity, &l.ExpectedUnitPrice,
			&l.QuantityDelivered, &l.PriceDelivered, &l.LineTotal,
			&l.Flags.QuantityOutOfTolerance, &l.Flags.PriceOutOfTolerance); err != nil {
			return fmt.Errorf("scan delivery line: %w", err)
		}
		l.QuantityVariance = l.QuantityDelivered - l.ExpectedQuantity
		l.PriceVariance = l.PriceDelivered.Sub(l.ExpectedUnitPrice)
		d.Lines = append(d.Lines, l)
	}
	return rows.Err()
}

func scanDelivery(row rowScanner) (*entity.DeliveryRecord, error) {
	var d entity.DeliveryRecord
	if err := row.Scan(&d.ID, &d.OrderID, &d.Vendor, &d.TotalValue, &d.RecordedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
