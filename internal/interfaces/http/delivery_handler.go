package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/delivery"
	"github.com/jhoicas/Reposicion-api/internal/application/dto"
)

// DeliveryHandler consultas sobre entregas registradas.
type DeliveryHandler struct {
	reconciler *delivery.Reconciler
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(reconciler *delivery.Reconciler) *DeliveryHandler {
	return &DeliveryHandler{reconciler: reconciler}
}

// ListByVendor godoc
// @Summary      Listar las entregas de un proveedor
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        vendor  query     string  true  "Proveedor"
// @Success      200     {object}  dto.DeliveryListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) ListByVendor(c *fiber.Ctx) error {
	vendor := c.Query("vendor")
	list, err := h.reconciler.ListByVendor(c.UserContext(), vendor)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.DeliveryListResponse{Vendor: vendor, Deliveries: make([]dto.DeliveryResponse, 0, len(list))}
	for _, d := range list {
		out.Deliveries = append(out.Deliveries, dto.NewDeliveryResponse(d))
	}
	return c.JSON(out)
}

// TotalValue godoc
// @Summary      Valor total de todas las entregas registradas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalValueResponse
// @Router       /api/deliveries/total-value [get]
func (h *DeliveryHandler) TotalValue(c *fiber.Ctx) error {
	total, err := h.reconciler.TotalDeliveredValue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TotalValueResponse{Total: total})
}
