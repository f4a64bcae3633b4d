package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/entregas-epp/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL REPEATABLE READ.
// Dos transacciones que escriben la misma fila de stock o entrega no pueden confirmar
// ambas: la segunda recibe 40001 (o ve version distinta) y Run retorna domain.ErrConflict.
type TxRunner struct {
	pool TxStarter
}

// TxStarter lo implementa *pgxpool.Pool.
type TxStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

var _ TxStarter = (*pgxpool.Pool)(nil)

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool TxStarter) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn inventory.TxFunc) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEquipmentStockRepository(tx), NewDeliveryRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
