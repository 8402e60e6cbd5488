package inventory

import (
	"context"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// StockQueryUseCase expone las lecturas del motor de stock: listado de lotes,
// detalle con historial, disponibilidad por variante. Repos atados al pool.
type StockQueryUseCase struct {
	lotRepo     repository.StockLotRepository
	allocRepo   repository.StockLotAllocationRepository
	txnRepo     repository.InventoryTransactionRepository
	variantRepo repository.VariantRepository
	now         func() time.Time
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	lotRepo repository.StockLotRepository,
	allocRepo repository.StockLotAllocationRepository,
	txnRepo repository.InventoryTransactionRepository,
	variantRepo repository.VariantRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		lotRepo:     lotRepo,
		allocRepo:   allocRepo,
		txnRepo:     txnRepo,
		variantRepo: variantRepo,
		now:         time.Now,
	}
}

// ListLots lista lotes según el filtro (variante, agotados, rango de fechas, proveedor).
func (uc *StockQueryUseCase) ListLots(ctx context.Context, filter repository.LotFilter) ([]*entity.StockLot, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	} else if filter.Limit > 200 {
		filter.Limit = 200
	}
	return uc.lotRepo.List(ctx, filter)
}

// LotDetail agrupa un lote con su historial completo.
type LotDetail struct {
	Lot          *entity.StockLot
	Allocations  []*entity.StockLotAllocation
	Transactions []*entity.InventoryTransaction
}

// GetLotDetail devuelve el lote con sus asignaciones y transacciones.
func (uc *StockQueryUseCase) GetLotDetail(ctx context.Context, lotID string) (*LotDetail, error) {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	allocs, err := uc.allocRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	txns, err := uc.txnRepo.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	return &LotDetail{Lot: lot, Allocations: allocs, Transactions: txns}, nil
}

// Availability devuelve el snapshot de disponibilidad de la variante.
func (uc *StockQueryUseCase) Availability(ctx context.Context, variantID string) (*entity.VariantAvailability, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return uc.variantRepo.Availability(ctx, variantID, uc.now())
}

// ListTransactions lista el libro de una variante en un rango de fechas.
func (uc *StockQueryUseCase) ListTransactions(ctx context.Context, variantID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	} else if limit > 200 {
		limit = 200
	}
	return uc.txnRepo.ListByVariant(ctx, variantID, from, to, limit, offset)
}
