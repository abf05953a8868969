package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/ordering"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
)

// ReplenishmentHandler propuesta de reposición y confirmación de órdenes.
type ReplenishmentHandler struct {
	planner *ordering.PlannerUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(planner *ordering.PlannerUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{planner: planner}
}

// Plan godoc
// @Summary      Proponer reposición bajo nivel par
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        vendor  query  string  false  "Proveedor (tiene precedencia sobre type)"
// @Param        type    query  string  false  "Tipo de artículo"
// @Success      200     {object}  dto.ReplenishmentPlanResponse
// @Router       /api/replenishment/plan [get]
func (h *ReplenishmentHandler) Plan(c *fiber.Ctx) error {
	filter := inventory.Filter{Vendor: c.Query("vendor"), Type: c.Query("type")}.Normalize()
	candidates, err := h.planner.Propose(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	lines := make([]dto.ReplenishmentLineDTO, 0, len(candidates))
	for _, cand := range candidates {
		lines = append(lines, dto.NewReplenishmentLine(cand))
	}
	return c.JSON(dto.ReplenishmentPlanResponse{Vendor: filter.Vendor, Type: filter.Type, Lines: lines})
}

// PlaceOrders godoc
// @Summary      Confirmar líneas y crear una orden por proveedor
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrdersRequest  true  "Decisiones por item_id"
// @Success      201   {object}  dto.OrderListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/orders [post]
func (h *ReplenishmentHandler) PlaceOrders(c *fiber.Ctx) error {
	var in dto.PlaceOrdersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	filter := inventory.Filter{Vendor: in.Vendor, Type: in.Type}
	orders, err := h.planner.PlaceOrders(c.UserContext(), filter, in.Decisions, in.ExpectedDeliveryDate)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, dto.NewOrderResponse(o))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
