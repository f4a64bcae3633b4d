package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// execQuerier responde a Exec con un command tag o error fijo; el resto no se usa en estos casos.
type execQuerier struct {
	tag   pgconn.CommandTag
	err   error
	execs int
}

func (q *execQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execs++
	return q.tag, q.err
}

func (q *execQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("no esperado")
}

func (q *execQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (q *execQuerier) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

// fakeTx solo implementa Commit/Rollback; los repos que recibe fn no se usan.
type fakeTx struct {
	pgx.Tx
	commitErr error
	commits   int
	rollbacks int
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.commits++
	return tx.commitErr
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	tx.rollbacks++
	return nil
}

// fakeStarter entrega las transacciones en orden, una por BeginTx.
type fakeStarter struct {
	txs   []*fakeTx
	opts  []pgx.TxOptions
	begun int
}

func (s *fakeStarter) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	s.opts = append(s.opts, opts)
	tx := s.txs[s.begun]
	s.begun++
	return tx, nil
}

func noopTx(repository.EquipmentStockRepository, repository.DeliveryRepository, repository.StockMovementRepository) error {
	return nil
}

var serializationFailure = &pgconn.PgError{Code: "40001", Message: "could not serialize access due to concurrent update"}

// ──────────────────────────────────────────────────────────────────────────────
// Escrituras con versión
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: 0 filas afectadas en el UPDATE de stock → ErrConflict, versión intacta.
func TestEquipmentStockUpdate_VersionVencida(t *testing.T) {
	q := &execQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	st := &entity.EquipmentStock{ID: "E", QuantityOnHand: 7, Version: 3, UpdatedAt: time.Now()}

	err := NewEquipmentStockRepository(q).Update(context.Background(), st)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(3), st.Version)
	assert.Equal(t, 1, q.execs, "no escribe tallas tras el conflicto")
}

// Caso 2: fila actualizada → la versión en memoria avanza.
func TestEquipmentStockUpdate_Ok(t *testing.T) {
	q := &execQuerier{tag: pgconn.NewCommandTag("UPDATE 1")}
	st := &entity.EquipmentStock{ID: "E", QuantityOnHand: 7, Version: 3}

	require.NoError(t, NewEquipmentStockRepository(q).Update(context.Background(), st))
	assert.Equal(t, int64(4), st.Version)
}

// Caso 3: 40001 devuelto por el UPDATE → ErrConflict (reintentable).
func TestEquipmentStockUpdate_FalloDeSerializacion(t *testing.T) {
	q := &execQuerier{err: serializationFailure}
	err := NewEquipmentStockRepository(q).Update(context.Background(), &entity.EquipmentStock{ID: "E", Version: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 4: Replace y Delete de entrega con versión vencida → ErrConflict.
func TestDeliveryRepo_VersionVencida(t *testing.T) {
	ctx := context.Background()

	q := &execQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	d := &entity.Delivery{ID: "D1", Version: 2}
	err := NewDeliveryRepository(q).Replace(ctx, d)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(2), d.Version)
	assert.Equal(t, 1, q.execs, "no toca las líneas tras el conflicto")

	q = &execQuerier{tag: pgconn.NewCommandTag("DELETE 0")}
	err = NewDeliveryRepository(q).Delete(ctx, "D1", 2)
	assert.ErrorIs(t, err, domain.ErrConflict)

	q = &execQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	assert.NoError(t, NewDeliveryRepository(q).Delete(ctx, "D1", 2))
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: 40001 en Commit → ErrConflict; la transacción usa REPEATABLE READ.
func TestTxRunner_CommitConFalloDeSerializacion(t *testing.T) {
	tx := &fakeTx{commitErr: serializationFailure}
	starter := &fakeStarter{txs: []*fakeTx{tx}}

	err := NewTxRunner(starter).Run(context.Background(), noopTx)
	assert.ErrorIs(t, err, domain.ErrConflict)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, pgx.RepeatableRead, starter.opts[0].IsoLevel)
}

// Caso 6: si fn falla no hay Commit y el error sale tal cual.
func TestTxRunner_ErrorDeFnHaceRollback(t *testing.T) {
	tx := &fakeTx{}
	starter := &fakeStarter{txs: []*fakeTx{tx}}

	err := NewTxRunner(starter).Run(context.Background(), func(repository.EquipmentStockRepository, repository.DeliveryRepository, repository.StockMovementRepository) error {
		return domain.ErrInsufficientStock
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

// Caso 7: con el decorador de reintentos, un 40001 en Commit re-ejecuta la transacción completa.
func TestTxRunner_ReintentoTrasConflicto(t *testing.T) {
	first := &fakeTx{commitErr: serializationFailure}
	second := &fakeTx{}
	starter := &fakeStarter{txs: []*fakeTx{first, second}}
	runner := inventory.NewRetryingTxRunner(NewTxRunner(starter), inventory.RetryPolicy{
		MaxAttempts: 3, BaseDelay: time.Microsecond, MaxDelay: time.Millisecond,
	}, zerolog.Nop())

	calls := 0
	err := runner.Run(context.Background(), func(repository.EquipmentStockRepository, repository.DeliveryRepository, repository.StockMovementRepository) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, starter.begun)
	assert.Equal(t, 1, second.commits)
}

// Caso 8: conflicto persistente → ErrConcurrencyExhausted tras MaxAttempts.
func TestTxRunner_ConflictoPersistente(t *testing.T) {
	starter := &fakeStarter{txs: []*fakeTx{
		{commitErr: serializationFailure}, {commitErr: serializationFailure},
	}}
	runner := inventory.NewRetryingTxRunner(NewTxRunner(starter), inventory.RetryPolicy{
		MaxAttempts: 2, BaseDelay: time.Microsecond, MaxDelay: time.Millisecond,
	}, zerolog.Nop())

	err := runner.Run(context.Background(), noopTx)
	assert.ErrorIs(t, err, domain.ErrConcurrencyExhausted)
	assert.Equal(t, 2, starter.begun)
}
