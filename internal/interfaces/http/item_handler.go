package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
	"github.com/jhoicas/Reposicion-api/internal/application/valuation"
)

// ItemHandler maneja el catálogo de artículos y sus conteos físicos.
type ItemHandler struct {
	uc        *usecase.ItemUseCase
	valuation *valuation.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, valuationUC *valuation.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc, valuation: valuationUC}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        vendor  query  string  false  "Proveedor (tiene precedencia sobre type)"
// @Param        type    query  string  false  "Tipo"
// @Success      200     {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("vendor"), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza datos descriptivos, par y valor unitario.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un artículo.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Discrepancy godoc
// @Summary      Discrepancia contra conteo físico (sin aplicar)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true  "ID del artículo"
// @Param        counted  query  int     true  "Cantidad contada"
// @Success      200      {object}  dto.DiscrepancyResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/items/{id}/discrepancy [get]
func (h *ItemHandler) Discrepancy(c *fiber.Ctx) error {
	counted, err := strconv.Atoi(c.Query("counted"))
	if err != nil {
		return badRequest(c, "VALIDATION", "counted debe ser un entero")
	}
	out, err := h.valuation.Discrepancy(c.UserContext(), c.Params("id"), counted)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Count aplica el conteo físico de un artículo.
func (h *ItemHandler) Count(c *fiber.Ctx) error {
	var in dto.CountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.valuation.ApplyHardCount(c.UserContext(), c.Params("id"), in.Counted)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Counts aplica un lote de conteos en una transacción.
func (h *ItemHandler) Counts(c *fiber.Ctx) error {
	var in dto.BatchCountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.valuation.ApplyCounts(c.UserContext(), in.Counts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"counts": out})
}
