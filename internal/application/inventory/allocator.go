package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	domaininv "github.com/Hoanqia/Thesis-sub001/internal/domain/inventory"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// FIFOAllocator consume lotes más-antiguo-primero para satisfacer una línea de
// venta, fijando el COGS con el costo del lote al momento de asignar. Cada
// asignación escribe la fila de asignación, incrementa quantity_out del lote y
// emite una transacción de venta, todo dentro de la misma tx.
type FIFOAllocator struct {
	txRunner TxRunner
	attempts int
	backoff  time.Duration
	now      func() time.Time
}

// NewFIFOAllocator construye el asignador. attempts/backoff gobiernan el
// reintento ante conflictos de concurrencia.
func NewFIFOAllocator(txRunner TxRunner, attempts int, backoff time.Duration) *FIFOAllocator {
	return &FIFOAllocator{
		txRunner: txRunner,
		attempts: attempts,
		backoff:  backoff,
		now:      time.Now,
	}
}

// AllocationInput identifica qué asignar: una línea de orden contra una variante.
type AllocationInput struct {
	OrderItemID string
	VariantID   string
	Quantity    int64
	ActorID     string
}

// AllocationResult es el resultado por línea: las asignaciones creadas y el
// COGS total que el colaborador de órdenes persiste en su propia línea.
type AllocationResult struct {
	OrderItemID  string
	VariantID    string
	Allocations  []*entity.StockLotAllocation
	SubtotalCOGS decimal.Decimal
}

// Allocate ejecuta la asignación en su propia transacción, con reintento
// acotado ante ErrConcurrencyConflict (ninguna escritura parcial sobrevive).
func (a *FIFOAllocator) Allocate(ctx context.Context, in AllocationInput) (*AllocationResult, error) {
	var result *AllocationResult
	err := withConflictRetry(ctx, a.attempts, a.backoff, func() error {
		return a.txRunner.Run(ctx, func(
			lotRepo repository.StockLotRepository,
			allocRepo repository.StockLotAllocationRepository,
			txnRepo repository.InventoryTransactionRepository,
			_ repository.ReservedStockRepository,
			variantRepo repository.VariantRepository,
		) error {
			r, err := a.AllocateInTx(ctx, lotRepo, allocRepo, txnRepo, variantRepo, in, a.now())
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AllocateInTx ejecuta la asignación con los repositorios del caller (misma
// transacción). Lo usa Confirm para convertir una reserva en asignaciones sin
// abrir una tx nueva. Bloquea primero la fila de la variante y luego los lotes
// con remanente en orden FIFO; dos asignaciones concurrentes sobre la misma
// variante se serializan aquí y nunca sobre-comprometen un lote.
func (a *FIFOAllocator) AllocateInTx(
	ctx context.Context,
	lotRepo repository.StockLotRepository,
	allocRepo repository.StockLotAllocationRepository,
	txnRepo repository.InventoryTransactionRepository,
	variantRepo repository.VariantRepository,
	in AllocationInput,
	now time.Time,
) (*AllocationResult, error) {
	if err := variantRepo.LockByID(ctx, in.VariantID); err != nil {
		return nil, err
	}
	lots, err := lotRepo.ListByVariantForUpdate(ctx, in.VariantID)
	if err != nil {
		return nil, err
	}
	plan, err := domaininv.PlanFIFO(lots, in.Quantity)
	if err != nil {
		return nil, err
	}

	result := &AllocationResult{
		OrderItemID:  in.OrderItemID,
		VariantID:    in.VariantID,
		SubtotalCOGS: domaininv.PlanCOGS(plan),
	}
	for _, step := range plan {
		// Guardia adicional: el update condicional falla si el remanente
		// cambió entre la lectura bloqueada y la escritura.
		if err := lotRepo.AddQuantityOut(ctx, step.LotID, step.Quantity); err != nil {
			return nil, err
		}
		alloc := &entity.StockLotAllocation{
			ID:          uuid.New().String(),
			OrderItemID: in.OrderItemID,
			StockLotID:  step.LotID,
			Quantity:    step.Quantity,
			UnitCost:    step.UnitCost,
			CreatedAt:   now,
		}
		if err := allocRepo.Create(ctx, alloc); err != nil {
			return nil, err
		}
		lotID := step.LotID
		txn := &entity.InventoryTransaction{
			ID:         uuid.New().String(),
			VariantID:  in.VariantID,
			StockLotID: &lotID,
			Type:       entity.TxTypeSale,
			Quantity:   -step.Quantity,
			RefKind:    entity.TxRefOrderItem,
			RefID:      in.OrderItemID,
			ActorID:    in.ActorID,
			CreatedAt:  now,
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return nil, err
		}
		result.Allocations = append(result.Allocations, alloc)
	}
	return result, nil
}
