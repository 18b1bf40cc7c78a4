package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/fifo-ledger/internal/domain"
)

// Códigos SQLSTATE que indican que el esquema de movimientos no está disponible.
const (
	sqlStateUndefinedTable  = "42P01"
	sqlStateUndefinedColumn = "42703"
)

// isSchemaMissing verifica si el error viene de una tabla o columna inexistente.
func isSchemaMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUndefinedTable || pgErr.Code == sqlStateUndefinedColumn
	}
	return false
}

// wrapErr clasifica el error de la base para la capa de aplicación.
func wrapErr(op string, err error) error {
	if isSchemaMissing(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
