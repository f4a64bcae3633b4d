package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/entregas-epp/internal/domain"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx: los repositorios funcionan igual dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const (
	sqlStateUniqueViolation      = "23505"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUniqueViolation
	}
	return strings.Contains(err.Error(), sqlStateUniqueViolation)
}

// isConflict fallo de serialización o deadlock: la transacción puede reintentarse completa.
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}
	return false
}

// isUnavailable la base no responde (conexión rechazada, caída o pool cerrado).
func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}

// wrapErr envuelve err con la operación y lo clasifica en los errores de dominio.
// Cancelaciones de contexto se devuelven tal cual (envueltas) para que errors.Is las reconozca.
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case isConflict(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConflict, err)
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// offsetLimit normaliza paginación: límite por defecto 20, máximo 100.
func offsetLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
