// Package delivery concilia entregas de proveedores contra las órdenes abiertas.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/ports"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// Reconciler registra la entrega de una orden: evalúa variaciones por línea,
// suma lo entregado al stock y cierra la orden, todo en una transacción.
type Reconciler struct {
	tx         repository.TxRunner
	deliveries repository.DeliveryRepository
	locker     ports.OrderLocker
	tolerance  inventory.Tolerance
	metrics    ports.Metrics
	log        *logger.Logger
	now        func() time.Time
}

// Option configura el Reconciler.
type Option func(*Reconciler)

// WithTolerance reemplaza las bandas por defecto (5 unidades / 0.50).
func WithTolerance(tol inventory.Tolerance) Option {
	return func(r *Reconciler) { r.tolerance = tol }
}

// WithLocker agrega un lock por orden previo a la transacción.
func WithLocker(l ports.OrderLocker) Option {
	return func(r *Reconciler) { r.locker = l }
}

// WithMetrics registra contadores de conciliación.
func WithMetrics(m ports.Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// WithLogger asigna el logger del componente.
func WithLogger(l *logger.Logger) Option {
	return func(r *Reconciler) { r.log = l.Component("reconciler") }
}

// NewReconciler construye el conciliador.
func NewReconciler(tx repository.TxRunner, deliveries repository.DeliveryRepository, opts ...Option) *Reconciler {
	r := &Reconciler{
		tx:         tx,
		deliveries: deliveries,
		tolerance:  inventory.DefaultTolerance(),
		metrics:    ports.NopMetrics{},
		log:        logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile concilia lo reportado contra la orden. Errores:
//   - domain.ErrValidation: líneas vacías, negativas o item repetido.
//   - domain.ErrNotFound: orden o artículo inexistente (nada se escribe).
//   - domain.ErrInvalidStateTransition: la orden no está abierta.
//   - domain.ErrReconciliationMismatch: las líneas no corresponden a la orden.
//
// Las variaciones fuera de tolerancia no son errores: quedan como banderas.
func (r *Reconciler) Reconcile(ctx context.Context, orderID string, reported []inventory.ReportedLine) (*entity.DeliveryRecord, error) {
	rec, err := r.reconcile(ctx, orderID, reported)
	r.metrics.Reconciled(resultOf(err))
	if err != nil {
		r.log.Warn().Err(err).Str("order_id", orderID).Msg("conciliación rechazada")
		return nil, err
	}

	qtyFlags, priceFlags := 0, 0
	for _, l := range rec.Lines {
		if l.Flags.QuantityOutOfTolerance {
			qtyFlags++
		}
		if l.Flags.PriceOutOfTolerance {
			priceFlags++
		}
	}
	r.metrics.OutOfTolerance(ports.VarianceQuantity, qtyFlags)
	r.metrics.OutOfTolerance(ports.VariancePrice, priceFlags)

	ev := r.log.Info()
	if rec.FlaggedLines() > 0 {
		ev = r.log.Warn()
	}
	ev.Str("order_id", orderID).
		Str("vendor", rec.Vendor).
		Int("lines", len(rec.Lines)).
		Int("flags", rec.FlaggedLines()).
		Str("total_value", rec.TotalValue.StringFixed(2)).
		Msg("entrega conciliada")
	return rec, nil
}

func (r *Reconciler) reconcile(ctx context.Context, orderID string, reported []inventory.ReportedLine) (*entity.DeliveryRecord, error) {
	if err := validateReported(orderID, reported); err != nil {
		return nil, err
	}

	if r.locker != nil {
		release, err := r.locker.Acquire(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("lock orden %s: %w", orderID, err)
		}
		defer release()
	}

	var record *entity.DeliveryRecord
	err := r.tx.Run(ctx, func(repos repository.Repos) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.IsOpen() {
			return fmt.Errorf("%w: la orden %s está %s", domain.ErrInvalidStateTransition, orderID, order.Status)
		}
		if err := matchLines(order, reported); err != nil {
			return err
		}

		byItem := make(map[string]inventory.ReportedLine, len(reported))
		for _, rl := range reported {
			byItem[rl.ItemID] = rl
		}
		lines := make([]entity.DeliveryLine, 0, len(order.Lines))
		for _, ol := range order.Lines {
			lines = append(lines, inventory.EvaluateLine(ol, byItem[ol.ItemID], r.tolerance))
		}

		record = &entity.DeliveryRecord{
			OrderID:    order.ID,
			Vendor:     order.Vendor,
			Lines:      lines,
			TotalValue: inventory.SumLineTotals(lines),
			RecordedAt: r.now(),
		}
		if err := repos.Deliveries.Append(ctx, record); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("%w: la orden %s ya fue conciliada", domain.ErrInvalidStateTransition, orderID)
			}
			return err
		}

		for _, l := range lines {
			if _, err := repos.Items.IncrementQuantity(ctx, l.ItemID, l.QuantityDelivered); err != nil {
				return fmt.Errorf("orden %s: %w", orderID, err)
			}
		}

		ok, err := repos.Orders.SetStatus(ctx, orderID, entity.OrderStatusClosed, entity.OrderStatusOpen)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: la orden %s cambió de estado durante la conciliación", domain.ErrInvalidStateTransition, orderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// validateReported revisa la forma de la entrada antes de tomar locks.
func validateReported(orderID string, reported []inventory.ReportedLine) error {
	if len(reported) == 0 {
		return fmt.Errorf("%w: orden %s sin líneas entregadas", domain.ErrValidation, orderID)
	}
	seen := make(map[string]bool, len(reported))
	for _, rl := range reported {
		switch {
		case rl.ItemID == "":
			return fmt.Errorf("%w: línea entregada sin item_id", domain.ErrValidation)
		case seen[rl.ItemID]:
			return fmt.Errorf("%w: item %s repetido", domain.ErrValidation, rl.ItemID)
		case rl.QuantityDelivered < 0:
			return fmt.Errorf("%w: item %s con cantidad negativa", domain.ErrValidation, rl.ItemID)
		case rl.PriceDelivered.IsNegative():
			return fmt.Errorf("%w: item %s con precio negativo", domain.ErrValidation, rl.ItemID)
		case !entity.FitsMoneyScale(rl.PriceDelivered):
			return fmt.Errorf("%w: item %s con precio de más de %d decimales", domain.ErrValidation, rl.ItemID, entity.MoneyScale)
		}
		seen[rl.ItemID] = true
	}
	return nil
}

// matchLines exige el mismo conjunto de artículos que la orden.
func matchLines(order *entity.Order, reported []inventory.ReportedLine) error {
	if len(reported) != len(order.Lines) {
		return fmt.Errorf("%w: orden %s tiene %d líneas, se reportaron %d",
			domain.ErrReconciliationMismatch, order.ID, len(order.Lines), len(reported))
	}
	for _, rl := range reported {
		if _, ok := order.Line(rl.ItemID); !ok {
			return fmt.Errorf("%w: orden %s no contiene el item %s",
				domain.ErrReconciliationMismatch, order.ID, rl.ItemID)
		}
	}
	return nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return ports.ReconcileOK
	case errors.Is(err, domain.ErrValidation):
		return ports.ReconcileValidation
	case errors.Is(err, domain.ErrNotFound):
		return ports.ReconcileNotFound
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return ports.ReconcileClosed
	case errors.Is(err, domain.ErrReconciliationMismatch):
		return ports.ReconcileMismatch
	}
	return ports.ReconcileError
}

// GetByOrder devuelve la entrega registrada para la orden.
func (r *Reconciler) GetByOrder(ctx context.Context, orderID string) (*entity.DeliveryRecord, error) {
	return r.deliveries.GetByOrderID(ctx, orderID)
}

// ListByVendor lista las entregas de un proveedor.
func (r *Reconciler) ListByVendor(ctx context.Context, vendor string) ([]*entity.DeliveryRecord, error) {
	if vendor == "" {
		return nil, fmt.Errorf("%w: vendor requerido", domain.ErrValidation)
	}
	return r.deliveries.ListByVendor(ctx, vendor)
}

// TotalDeliveredValue suma el valor de todas las entregas registradas.
func (r *Reconciler) TotalDeliveredValue(ctx context.Context) (decimal.Decimal, error) {
	return r.deliveries.TotalValue(ctx)
}
