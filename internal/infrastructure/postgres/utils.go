package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Reposicion-api/internal/domain"
)

// Querier contrato común de *pgxpool.Pool y pgx.Tx: los repositorios
// funcionan igual dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// isInvalidText detecta ids que no son UUID válidos (22P02): para el
// llamador equivalen a un recurso inexistente.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// notFoundOr traduce "sin filas" o id malformado a domain.ErrNotFound.
func notFoundOr(err error, what, id string) error {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	return fmt.Errorf("%s %s: %w", what, id, err)
}

// isCheckViolation detecta violaciones de CHECK constraint (23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
