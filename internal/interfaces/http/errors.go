package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
)

// errorMapping traduce errores de dominio a status y código HTTP.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidStateTransition, fiber.StatusConflict, "INVALID_STATE_TRANSITION"},
	{domain.ErrReconciliationMismatch, fiber.StatusUnprocessableEntity, "RECONCILIATION_MISMATCH"},
	{domain.ErrDivisionUndefined, fiber.StatusUnprocessableEntity, "DIVISION_UNDEFINED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError responde con el ErrorResponse correspondiente al error.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			msg := err.Error()
			if m.status == fiber.StatusUnauthorized {
				msg = "credenciales inválidas"
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// invalidBody responde 400 VALIDATION cuando el JSON no decodifica
// (campo con tipo incorrecto, número no numérico, sintaxis).
func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "VALIDATION", "entrada inválida: cuerpo JSON mal formado")
}
