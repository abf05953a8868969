// Package ordering contiene los casos de uso del libro de órdenes de compra
// y de la planificación de reposición.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/application/ports"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// Ledger registra órdenes de compra y su ciclo de vida open → closed.
type Ledger struct {
	tx      repository.TxRunner
	orders  repository.OrderRepository
	metrics ports.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewLedger construye el libro de órdenes. metrics y log pueden ser nil.
func NewLedger(tx repository.TxRunner, orders repository.OrderRepository, metrics ports.Metrics, log *logger.Logger) *Ledger {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{tx: tx, orders: orders, metrics: metrics, log: log.Component("ledger"), now: time.Now}
}

// CreateOrder valida y persiste una orden en estado open.
// expectedDate es una fecha calendario YYYY-MM-DD.
func (l *Ledger) CreateOrder(ctx context.Context, vendor string, lines []entity.OrderLine, expectedDate string) (*entity.Order, error) {
	order, err := l.newOrder(vendor, lines, expectedDate)
	if err != nil {
		return nil, err
	}
	if err := l.persist(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// newOrder construye la orden sin persistirla.
func (l *Ledger) newOrder(vendor string, lines []entity.OrderLine, expectedDate string) (*entity.Order, error) {
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return nil, fmt.Errorf("%w: vendor requerido", domain.ErrValidation)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la orden para %s no tiene líneas", domain.ErrValidation, vendor)
	}
	date, err := time.Parse(entity.DateLayout, strings.TrimSpace(expectedDate))
	if err != nil {
		return nil, fmt.Errorf("%w: expected_delivery_date %q no es YYYY-MM-DD", domain.ErrValidation, expectedDate)
	}

	seen := make(map[string]bool, len(lines))
	snapshot := make([]entity.OrderLine, 0, len(lines))
	for i, ln := range lines {
		switch {
		case ln.ItemID == "":
			return nil, fmt.Errorf("%w: línea %d sin item_id", domain.ErrValidation, i+1)
		case seen[ln.ItemID]:
			return nil, fmt.Errorf("%w: item %s repetido en la orden", domain.ErrValidation, ln.ItemID)
		case ln.ExpectedQuantity <= 0:
			return nil, fmt.Errorf("%w: item %s con cantidad %d", domain.ErrValidation, ln.ItemID, ln.ExpectedQuantity)
		case ln.ExpectedUnitPrice.IsNegative():
			return nil, fmt.Errorf("%w: item %s con precio negativo", domain.ErrValidation, ln.ItemID)
		case !entity.FitsMoneyScale(ln.ExpectedUnitPrice):
			return nil, fmt.Errorf("%w: item %s con precio de más de %d decimales", domain.ErrValidation, ln.ItemID, entity.MoneyScale)
		}
		if ln.Vendor == "" {
			ln.Vendor = vendor
		}
		if ln.Vendor != vendor {
			return nil, fmt.Errorf("%w: item %s es de %s, no de %s", domain.ErrValidation, ln.ItemID, ln.Vendor, vendor)
		}
		seen[ln.ItemID] = true
		snapshot = append(snapshot, ln)
	}

	return &entity.Order{
		ID:                   uuid.New().String(),
		Vendor:               vendor,
		OrderedAt:            l.now(),
		ExpectedDeliveryDate: date,
		Lines:                snapshot,
		Status:               entity.OrderStatusOpen,
	}, nil
}

// persist guarda todas las órdenes en una sola transacción.
func (l *Ledger) persist(ctx context.Context, orders ...*entity.Order) error {
	err := l.tx.Run(ctx, func(r repository.Repos) error {
		for _, o := range orders {
			if err := r.Orders.Create(ctx, o); err != nil {
				return fmt.Errorf("crear orden %s: %w", o.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, o := range orders {
		l.metrics.OrderCreated(o.Vendor)
		l.log.Info().
			Str("order_id", o.ID).
			Str("vendor", o.Vendor).
			Int("lines", len(o.Lines)).
			Str("expected_total", o.ExpectedTotal().StringFixed(2)).
			Msg("orden creada")
	}
	return nil
}

// Close aplica open → closed con un update condicional. No se expone por
// HTTP ni CLI: en operación el cierre ocurre dentro de Reconciler.Reconcile.
func (l *Ledger) Close(ctx context.Context, orderID string) error {
	ok, err := l.orders.SetStatus(ctx, orderID, entity.OrderStatusClosed, entity.OrderStatusOpen)
	if err != nil {
		return err
	}
	if ok {
		l.log.Info().Str("order_id", orderID).Msg("orden cerrada")
		return nil
	}
	// Sin cambio: la orden no existe o ya no estaba abierta.
	if _, err := l.orders.Get(ctx, orderID); err != nil {
		return err
	}
	return fmt.Errorf("%w: la orden %s ya está cerrada", domain.ErrInvalidStateTransition, orderID)
}

// Find lista órdenes por filtro. Un filtro sin coincidencias devuelve una lista vacía.
func (l *Ledger) Find(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", domain.ErrValidation, filter.Status)
	}
	orders, err := l.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	return orders, nil
}

// Get obtiene una orden; domain.ErrNotFound si no existe.
func (l *Ledger) Get(ctx context.Context, orderID string) (*entity.Order, error) {
	o, err := l.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("obtener orden %s: %w", orderID, err)
	}
	return o, nil
}
