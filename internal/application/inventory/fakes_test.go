package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// memStore es el estado compartido de los fakes en memoria. El runner de
// pruebas trabaja sobre un clon y solo lo publica en commit, igual que una
// transacción real: un error a mitad de camino no deja escritura parcial.
type memStore struct {
	lots         map[string]*entity.StockLot
	allocations  []*entity.StockLotAllocation
	transactions []*entity.InventoryTransaction
	reservations map[string]*entity.ReservedStock
	variants     map[string]*entity.Variant
}

func newMemStore() *memStore {
	return &memStore{
		lots:         make(map[string]*entity.StockLot),
		reservations: make(map[string]*entity.ReservedStock),
		variants:     make(map[string]*entity.Variant),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, l := range s.lots {
		copied := *l
		c.lots[id] = &copied
	}
	for id, r := range s.reservations {
		copied := *r
		c.reservations[id] = &copied
	}
	for id, v := range s.variants {
		copied := *v
		c.variants[id] = &copied
	}
	c.allocations = append(c.allocations, s.allocations...)
	c.transactions = append(c.transactions, s.transactions...)
	return c
}

// memTxRunner serializa las "transacciones" con un mutex y aplica semántica
// commit/rollback clonando el store.
type memTxRunner struct {
	mu    sync.Mutex
	store *memStore
}

func newMemTxRunner(store *memStore) *memTxRunner {
	return &memTxRunner{store: store}
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	allocRepo repository.StockLotAllocationRepository,
	txnRepo repository.InventoryTransactionRepository,
	resRepo repository.ReservedStockRepository,
	variantRepo repository.VariantRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	work := r.store.clone()
	err := fn(
		&memLotRepo{store: work},
		&memAllocRepo{store: work},
		&memTxnRepo{store: work},
		&memResRepo{store: work},
		&memVariantRepo{store: work},
	)
	if err != nil {
		return err
	}
	*r.store = *work
	return nil
}

// conflictingRunner envuelve un runner y falla las primeras n ejecuciones con
// ErrConcurrencyConflict, para ejercitar el reintento acotado.
type conflictingRunner struct {
	inner     TxRunner
	conflicts int
}

func (r *conflictingRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	allocRepo repository.StockLotAllocationRepository,
	txnRepo repository.InventoryTransactionRepository,
	resRepo repository.ReservedStockRepository,
	variantRepo repository.VariantRepository,
) error) error {
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrConcurrencyConflict
	}
	return r.inner.Run(ctx, fn)
}

// ── Repos fake ────────────────────────────────────────────────────────────────

type memLotRepo struct{ store *memStore }

func (r *memLotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	copied := *lot
	r.store.lots[lot.ID] = &copied
	return nil
}

func (r *memLotRepo) GetByID(_ context.Context, id string) (*entity.StockLot, error) {
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, nil
	}
	copied := *lot
	return &copied, nil
}

func (r *memLotRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockLot, error) {
	return r.GetByID(ctx, id)
}

func (r *memLotRepo) ListByVariantForUpdate(_ context.Context, variantID string) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, lot := range r.store.lots {
		if lot.VariantID == variantID && lot.Remaining() > 0 {
			out = append(out, lot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.Before(out[j].PurchaseDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memLotRepo) AddQuantityOut(_ context.Context, lotID string, quantity int64) error {
	lot, ok := r.store.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	if lot.Remaining() < quantity {
		return domain.ErrConcurrencyConflict
	}
	lot.QuantityOut += quantity
	return nil
}

func (r *memLotRepo) List(_ context.Context, filter repository.LotFilter) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, lot := range r.store.lots {
		if filter.VariantID != "" && lot.VariantID != filter.VariantID {
			continue
		}
		if filter.Depleted != nil && lot.Depleted() != *filter.Depleted {
			continue
		}
		copied := *lot
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memLotRepo) SumRemainingByVariant(_ context.Context, variantID string) (int64, error) {
	var total int64
	for _, lot := range r.store.lots {
		if lot.VariantID == variantID && lot.Remaining() > 0 {
			total += lot.Remaining()
		}
	}
	return total, nil
}

type memAllocRepo struct{ store *memStore }

func (r *memAllocRepo) Create(_ context.Context, alloc *entity.StockLotAllocation) error {
	copied := *alloc
	r.store.allocations = append(r.store.allocations, &copied)
	return nil
}

func (r *memAllocRepo) ListByOrderItem(_ context.Context, orderItemID string) ([]*entity.StockLotAllocation, error) {
	var out []*entity.StockLotAllocation
	for _, a := range r.store.allocations {
		if a.OrderItemID == orderItemID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAllocRepo) ListByLot(_ context.Context, lotID string) ([]*entity.StockLotAllocation, error) {
	var out []*entity.StockLotAllocation
	for _, a := range r.store.allocations {
		if a.StockLotID == lotID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memTxnRepo struct{ store *memStore }

func (r *memTxnRepo) Create(_ context.Context, txn *entity.InventoryTransaction) error {
	copied := *txn
	r.store.transactions = append(r.store.transactions, &copied)
	return nil
}

func (r *memTxnRepo) ListByVariant(_ context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, t := range r.store.transactions {
		if t.VariantID == variantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTxnRepo) ListByLot(_ context.Context, lotID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, t := range r.store.transactions {
		if t.StockLotID != nil && *t.StockLotID == lotID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memResRepo struct{ store *memStore }

func (r *memResRepo) CreateBatch(_ context.Context, rows []*entity.ReservedStock) error {
	for _, row := range rows {
		copied := *row
		r.store.reservations[row.ID] = &copied
	}
	return nil
}

func (r *memResRepo) ListActiveByHolderForUpdate(_ context.Context, holderID string) ([]*entity.ReservedStock, error) {
	var out []*entity.ReservedStock
	for _, row := range r.store.reservations {
		if row.HolderID == holderID && row.OrderID == nil {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memResRepo) ListByHolder(_ context.Context, holderID string) ([]*entity.ReservedStock, error) {
	var out []*entity.ReservedStock
	for _, row := range r.store.reservations {
		if row.HolderID == holderID {
			copied := *row
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memResRepo) DeleteByHolder(_ context.Context, holderID string) error {
	for id, row := range r.store.reservations {
		if row.HolderID == holderID && row.OrderID == nil {
			delete(r.store.reservations, id)
		}
	}
	return nil
}

func (r *memResRepo) Delete(_ context.Context, id string) error {
	delete(r.store.reservations, id)
	return nil
}

func (r *memResRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var swept int64
	for id, row := range r.store.reservations {
		if row.OrderID == nil && !now.Before(row.ExpiresAt) {
			delete(r.store.reservations, id)
			swept++
		}
	}
	return swept, nil
}

func (r *memResRepo) SumActiveByVariant(_ context.Context, variantID string, now time.Time) (int64, error) {
	var total int64
	for _, row := range r.store.reservations {
		if row.VariantID == variantID && row.Active(now) {
			total += row.Quantity
		}
	}
	return total, nil
}

type memVariantRepo struct{ store *memStore }

func (r *memVariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	v, ok := r.store.variants[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (r *memVariantRepo) LockByID(_ context.Context, id string) error {
	if _, ok := r.store.variants[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memVariantRepo) Availability(ctx context.Context, id string, now time.Time) (*entity.VariantAvailability, error) {
	remaining, _ := (&memLotRepo{store: r.store}).SumRemainingByVariant(ctx, id)
	reserved, _ := (&memResRepo{store: r.store}).SumActiveByVariant(ctx, id, now)
	return &entity.VariantAvailability{
		VariantID:        id,
		LotsRemaining:    remaining,
		ActiveReserved:   reserved,
		AvailableForSale: remaining - reserved,
	}, nil
}

// ── Helpers de fixture ────────────────────────────────────────────────────────

func seedVariant(store *memStore, id string) {
	store.variants[id] = &entity.Variant{ID: id, SKU: "SKU-" + id, Name: "Variante " + id}
}

func seedLot(store *memStore, lot *entity.StockLot) {
	copied := *lot
	store.lots[lot.ID] = &copied
}
