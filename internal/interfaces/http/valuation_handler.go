package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/valuation"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/inventory"
)

// ValuationHandler valorización del inventario y mezcla de ventas.
type ValuationHandler struct {
	uc *valuation.UseCase
}

// NewValuationHandler construye el handler.
func NewValuationHandler(uc *valuation.UseCase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// Total godoc
// @Summary      Valor total del inventario
// @Tags         valuation
// @Security     Bearer
// @Produce      json
// @Param        vendor  query  string  false  "Proveedor"
// @Param        type    query  string  false  "Tipo"
// @Success      200     {object}  dto.InventoryValueResponse
// @Router       /api/valuation/total [get]
func (h *ValuationHandler) Total(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValue(c.UserContext(), inventory.Filter{Vendor: c.Query("vendor"), Type: c.Query("type")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesMixFromAmounts godoc
// @Summary      Mezcla de ventas sobre montos enviados
// @Tags         valuation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesMixRequest  true  "Montos por categoría"
// @Success      200   {object}  dto.SalesMixResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/valuation/sales-mix [post]
func (h *ValuationHandler) SalesMixFromAmounts(c *fiber.Ctx) error {
	var in dto.SalesMixRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SalesMixFromAmounts(in.Sales)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesMix mezcla sobre ventas registradas entre start y end (YYYY-MM-DD,
// ambos inclusive). Por defecto los últimos 30 días.
func (h *ValuationHandler) SalesMix(c *fiber.Ctx) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	start, end := today.AddDate(0, 0, -29), today
	var err error
	if s := c.Query("start"); s != "" {
		if start, err = time.Parse(entity.DateLayout, s); err != nil {
			return badRequest(c, "VALIDATION", "start debe ser YYYY-MM-DD")
		}
	}
	if s := c.Query("end"); s != "" {
		if end, err = time.Parse(entity.DateLayout, s); err != nil {
			return badRequest(c, "VALIDATION", "end debe ser YYYY-MM-DD")
		}
	}
	out, err := h.uc.SalesMix(c.UserContext(), start, end.AddDate(0, 0, 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordSale registra una venta.
func (h *ValuationHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
