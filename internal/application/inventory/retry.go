package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/entregas-epp/internal/domain"
)

// RetryPolicy reintentos ante conflicto optimista: backoff exponencial con jitter, acotado.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy 5 intentos, 20ms base, tope 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: 20 * time.Millisecond, MaxDelay: 500 * time.Millisecond}
}

// Backoff espera antes del intento attempt+1: base·2^(attempt−1) con tope, entre 50% y 100%.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	d := p.BaseDelay
	for i := 1; i < attempt && d < p.MaxDelay; i++ {
		d *= 2
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	half := d / 2
	return half + rand.N(half+1)
}

// RetryingTxRunner decora un TxRunner: reintenta la unidad de trabajo completa
// (incluida la lectura) solo ante domain.ErrConflict. Errores de validación,
// de almacenamiento o de contexto se devuelven sin reintentar.
type RetryingTxRunner struct {
	next   TxRunner
	policy RetryPolicy
	log    zerolog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

var _ TxRunner = (*RetryingTxRunner)(nil)

// NewRetryingTxRunner construye el decorador.
func NewRetryingTxRunner(next TxRunner, policy RetryPolicy, log zerolog.Logger) *RetryingTxRunner {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &RetryingTxRunner{next: next, policy: policy, log: log, sleep: sleepCtx}
}

// Run ejecuta fn; agotados los intentos retorna domain.ErrConcurrencyExhausted.
func (r *RetryingTxRunner) Run(ctx context.Context, fn TxFunc) error {
	for attempt := 1; ; attempt++ {
		err := r.next.Run(ctx, fn)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if attempt >= r.policy.MaxAttempts {
			r.log.Warn().Err(err).Int("attempts", attempt).Msg("reintentos por concurrencia agotados")
			return fmt.Errorf("%w (%d intentos)", domain.ErrConcurrencyExhausted, attempt)
		}
		wait := r.policy.Backoff(attempt)
		r.log.Debug().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("conflicto optimista, reintentando")
		if err := r.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
