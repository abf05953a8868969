package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") agregando id de entidad
// y campo ofensor; los handlers comparan con errors.Is.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrValidation             = errors.New("entrada inválida")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrReconciliationMismatch = errors.New("las líneas entregadas no coinciden con la orden")
	ErrDivisionUndefined      = errors.New("división indefinida: el total es cero")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
)
