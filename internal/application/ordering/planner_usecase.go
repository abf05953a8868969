package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// PlannerUseCase propone líneas de reposición sobre el catálogo y, con la
// decisión del operador, genera una orden por proveedor.
type PlannerUseCase struct {
	items  repository.ItemRepository
	ledger *Ledger
	log    *logger.Logger
}

// NewPlannerUseCase construye el caso de uso de planificación.
func NewPlannerUseCase(items repository.ItemRepository, ledger *Ledger, log *logger.Logger) *PlannerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PlannerUseCase{items: items, ledger: ledger, log: log.Component("planner")}
}

// Propose lee una foto del catálogo filtrada y devuelve las líneas candidatas.
func (uc *PlannerUseCase) Propose(ctx context.Context, filter inventory.Filter) ([]inventory.Candidate, error) {
	f := filter.Normalize()
	items, err := uc.items.List(ctx, repository.ItemFilter{Vendor: f.Vendor, Type: f.Type})
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	return inventory.Plan(items, f), nil
}

// PlaceOrders vuelve a planificar sobre una foto fresca, aplica las decisiones
// y crea una orden por proveedor en una sola transacción.
// Sin líneas aceptadas no crea nada y devuelve domain.ErrValidation.
func (uc *PlannerUseCase) PlaceOrders(ctx context.Context, filter inventory.Filter, decisions map[string]bool, expectedDate string) ([]*entity.Order, error) {
	candidates, err := uc.Propose(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.PlaceCandidates(ctx, candidates, decisions, expectedDate)
}

// PlaceCandidates crea las órdenes con las líneas ya mostradas al operador,
// sin volver a leer el catálogo: las cantidades son las que confirmó.
func (uc *PlannerUseCase) PlaceCandidates(ctx context.Context, candidates []inventory.Candidate, decisions map[string]bool, expectedDate string) ([]*entity.Order, error) {
	accepted := inventory.Accept(candidates, decisions)
	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: ninguna línea aceptada", domain.ErrValidation)
	}

	vendors, byVendor := inventory.GroupByVendor(accepted)
	orders := make([]*entity.Order, 0, len(vendors))
	for _, v := range vendors {
		o, err := uc.ledger.newOrder(v, byVendor[v], expectedDate)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := uc.ledger.persist(ctx, orders...); err != nil {
		return nil, err
	}

	uc.log.Debug().
		Int("candidates", len(candidates)).
		Int("accepted", len(accepted)).
		Int("orders", len(orders)).
		Msg("reposición confirmada")
	return orders, nil
}
