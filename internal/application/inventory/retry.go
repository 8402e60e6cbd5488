package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
)

// withConflictRetry reintenta fn ante ErrConcurrencyConflict con backoff
// exponencial acotado. Solo es seguro porque un conflicto nunca deja estado
// parcial (la tx completa hizo rollback). Cualquier otro error corta de inmediato.
func withConflictRetry(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff << uint(i)):
		}
	}
	return err
}
