package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func seedReservation(store *memStore, id, holderID string, expiresAt time.Time) {
	store.reservations[id] = &entity.ReservedStock{
		ID:        id,
		BatchID:   "batch-" + id,
		VariantID: "v1",
		HolderID:  holderID,
		Quantity:  1,
		ExpiresAt: expiresAt,
	}
}

// El sweep elimina solo lo vencido; las reservas vigentes siguen reteniendo.
func TestSweep_EliminaSoloExpiradas(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedReservation(store, "res-vencida", "holder-1", now.Add(-time.Minute))
	seedReservation(store, "res-limite", "holder-2", now) // expira exactamente ahora
	seedReservation(store, "res-vigente", "holder-3", now.Add(10*time.Minute))

	sweeper := NewExpirySweeper(&memResRepo{store: store}, time.Minute, testLogger())
	sweeper.now = func() time.Time { return now }

	swept, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), swept, "expirar en el instante exacto también cuenta como vencida")

	_, vigente := store.reservations["res-vigente"]
	assert.True(t, vigente)
	assert.Len(t, store.reservations, 1)
}

// Barrer sin nada vencido es una pasada vacía, no un error.
func TestSweep_SinExpiradas(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedReservation(store, "res-vigente", "holder-1", now.Add(time.Hour))

	sweeper := NewExpirySweeper(&memResRepo{store: store}, time.Minute, testLogger())
	sweeper.now = func() time.Time { return now }

	swept, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, swept)
	assert.Len(t, store.reservations, 1)
}

// El ciclo respeta la cancelación del contexto.
func TestRun_SeDetieneConElContexto(t *testing.T) {
	store := newMemStore()
	sweeper := NewExpirySweeper(&memResRepo{store: store}, time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("el sweeper no se detuvo tras cancelar el contexto")
	}
}
