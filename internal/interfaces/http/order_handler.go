package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/delivery"
	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/ordering"
	"github.com/jhoicas/Reposicion-api/internal/application/ports"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// OrderHandler consulta de órdenes, PDF y recepción de entregas. Una orden
// solo se cierra al conciliar su entrega.
type OrderHandler struct {
	ledger     *ordering.Ledger
	reconciler *delivery.Reconciler
	pdf        ports.OrderPDFGenerator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(ledger *ordering.Ledger, reconciler *delivery.Reconciler, pdf ports.OrderPDFGenerator) *OrderHandler {
	return &OrderHandler{ledger: ledger, reconciler: reconciler, pdf: pdf}
}

// List godoc
// @Summary      Buscar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        vendor  query  string  false  "Proveedor"
// @Param        id      query  string  false  "ID de orden"
// @Param        status  query  string  false  "open | closed"
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		OrderID: c.Query("id"),
		Vendor:  c.Query("vendor"),
		Status:  entity.OrderStatus(c.Query("status")),
	}
	orders, err := h.ledger.Find(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, dto.NewOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una orden con su foto de líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.ledger.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// PDF godoc
// @Summary      Descargar orden de compra en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	o, err := h.ledger.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	b, err := h.pdf.GenerateOrderPDF(o)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="orden-%s.pdf"`, o.ID))
	return c.Send(b)
}

// Reconcile godoc
// @Summary      Registrar la entrega de una orden
// @Description  Las variaciones fuera de tolerancia se devuelven como banderas, no como error.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la orden"
// @Param        body  body  dto.ReconcileRequest  true  "Líneas entregadas"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivery [post]
func (h *OrderHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	reported := make([]inventory.ReportedLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		reported = append(reported, inventory.ReportedLine{
			ItemID:            l.ItemID,
			QuantityDelivered: l.QuantityDelivered,
			PriceDelivered:    l.PriceDelivered,
		})
	}
	rec, err := h.reconciler.Reconcile(c.UserContext(), c.Params("id"), reported)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDeliveryResponse(rec))
}

// Delivery godoc
// @Summary      Consultar la entrega registrada de una orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivery [get]
func (h *OrderHandler) Delivery(c *fiber.Ctx) error {
	rec, err := h.reconciler.GetByOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewDeliveryResponse(rec))
}
