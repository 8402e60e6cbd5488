package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// captureLotRepo registra el filtro que llega al repo para verificar lo que
// el caso de uso realmente pide.
type captureLotRepo struct {
	memLotRepo
	gotFilter repository.LotFilter
}

func (r *captureLotRepo) List(ctx context.Context, filter repository.LotFilter) ([]*entity.StockLot, error) {
	r.gotFilter = filter
	return r.memLotRepo.List(ctx, filter)
}

type captureTxnRepo struct {
	memTxnRepo
	gotLimit int
}

func (r *captureTxnRepo) ListByVariant(ctx context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	r.gotLimit = limit
	return r.memTxnRepo.ListByVariant(ctx, variantID, from, to, limit, offset)
}

func newQueryFixture() (*StockQueryUseCase, *captureLotRepo, *captureTxnRepo, *memStore) {
	store := newMemStore()
	lotRepo := &captureLotRepo{memLotRepo: memLotRepo{store: store}}
	txnRepo := &captureTxnRepo{memTxnRepo: memTxnRepo{store: store}}
	uc := NewStockQueryUseCase(lotRepo, &memAllocRepo{store: store}, txnRepo, &memVariantRepo{store: store})
	return uc, lotRepo, txnRepo, store
}

func TestListLots_LimiteAcotadoAlTope(t *testing.T) {
	uc, lotRepo, _, _ := newQueryFixture()
	ctx := context.Background()

	// Sin límite se aplica el valor por defecto.
	_, err := uc.ListLots(ctx, repository.LotFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, lotRepo.gotFilter.Limit)

	// Un límite dentro del rango pasa tal cual.
	_, err = uc.ListLots(ctx, repository.LotFilter{Limit: 120})
	require.NoError(t, err)
	assert.Equal(t, 120, lotRepo.gotFilter.Limit)

	// Por encima del tope se acota al tope, no al valor por defecto:
	// pedir 250 filas no puede devolver menos que pedir 200.
	_, err = uc.ListLots(ctx, repository.LotFilter{Limit: 250})
	require.NoError(t, err)
	assert.Equal(t, 200, lotRepo.gotFilter.Limit)
}

func TestListTransactions_LimiteAcotadoAlTope(t *testing.T) {
	uc, _, txnRepo, store := newQueryFixture()
	seedVariant(store, "v1")
	ctx := context.Background()

	_, err := uc.ListTransactions(ctx, "v1", nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, txnRepo.gotLimit)

	_, err = uc.ListTransactions(ctx, "v1", nil, nil, 250, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, txnRepo.gotLimit)
}

func TestGetLotDetail_LoteInexistente(t *testing.T) {
	uc, _, _, _ := newQueryFixture()

	_, err := uc.GetLotDetail(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
