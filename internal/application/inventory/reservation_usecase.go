package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// ReservationUseCase administra las retenciones temporales de stock durante el
// checkout: Reserve crea el batch con TTL, Release lo libera (idempotente) y
// Confirm lo convierte en asignaciones FIFO reales atadas a una orden.
type ReservationUseCase struct {
	txRunner  TxRunner
	resRepo   repository.ReservedStockRepository
	allocator *FIFOAllocator
	ttl       time.Duration
	attempts  int
	backoff   time.Duration
	now       func() time.Time
}

// NewReservationUseCase construye el caso de uso. resRepo va atado al pool
// (lecturas y release fuera de tx); las escrituras de Reserve/Confirm usan
// los repos de la tx que abre el runner.
func NewReservationUseCase(
	txRunner TxRunner,
	resRepo repository.ReservedStockRepository,
	allocator *FIFOAllocator,
	ttl time.Duration,
	attempts int,
	backoff time.Duration,
) *ReservationUseCase {
	return &ReservationUseCase{
		txRunner:  txRunner,
		resRepo:   resRepo,
		allocator: allocator,
		ttl:       ttl,
		attempts:  attempts,
		backoff:   backoff,
		now:       time.Now,
	}
}

// ReserveLine es una línea a retener: variante y cantidad.
type ReserveLine struct {
	VariantID string
	Quantity  int64
}

// ReserveInput agrupa las líneas de un checkout para un holder.
type ReserveInput struct {
	HolderID string
	Lines    []ReserveLine
}

// Reserve verifica disponibilidad (remanente de lotes menos otras reservas
// activas) y crea las retenciones, todo-o-nada: si una sola línea no alcanza,
// ninguna se crea. El lock por variante serializa dos checkouts que compiten
// por la última unidad. Devuelve el id del batch creado.
func (uc *ReservationUseCase) Reserve(ctx context.Context, in ReserveInput) (string, error) {
	if in.HolderID == "" || len(in.Lines) == 0 {
		return "", domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.VariantID == "" || l.Quantity <= 0 {
			return "", domain.ErrInvalidInput
		}
	}
	// Orden estable de locks por variante para no provocar deadlocks entre
	// reservas concurrentes con líneas cruzadas.
	lines := make([]ReserveLine, len(in.Lines))
	copy(lines, in.Lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].VariantID < lines[j].VariantID })

	batchID := uuid.New().String()
	err := withConflictRetry(ctx, uc.attempts, uc.backoff, func() error {
		return uc.txRunner.Run(ctx, func(
			lotRepo repository.StockLotRepository,
			_ repository.StockLotAllocationRepository,
			_ repository.InventoryTransactionRepository,
			resRepo repository.ReservedStockRepository,
			variantRepo repository.VariantRepository,
		) error {
			now := uc.now()
			rows := make([]*entity.ReservedStock, 0, len(lines))
			for _, line := range lines {
				if err := variantRepo.LockByID(ctx, line.VariantID); err != nil {
					return err
				}
				remaining, err := lotRepo.SumRemainingByVariant(ctx, line.VariantID)
				if err != nil {
					return err
				}
				reserved, err := resRepo.SumActiveByVariant(ctx, line.VariantID, now)
				if err != nil {
					return err
				}
				if remaining-reserved < line.Quantity {
					return domain.ErrInsufficientStock
				}
				rows = append(rows, &entity.ReservedStock{
					ID:        uuid.New().String(),
					BatchID:   batchID,
					VariantID: line.VariantID,
					HolderID:  in.HolderID,
					Quantity:  line.Quantity,
					ExpiresAt: now.Add(uc.ttl),
					CreatedAt: now,
				})
			}
			return resRepo.CreateBatch(ctx, rows)
		})
	})
	if err != nil {
		return "", err
	}
	return batchID, nil
}

// Release elimina las reservas sin confirmar del holder. Idempotente: liberar
// dos veces, o después de confirmar, no es error y no duplica stock liberado.
func (uc *ReservationUseCase) Release(ctx context.Context, holderID string) error {
	if holderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.resRepo.DeleteByHolder(ctx, holderID)
}

// ConfirmItem mapea una variante reservada a la línea de orden que la venderá.
type ConfirmItem struct {
	VariantID   string
	OrderItemID string
}

// ConfirmInput identifica el batch del holder y la orden que lo consume.
type ConfirmInput struct {
	HolderID string
	OrderID  string
	Items    []ConfirmItem
}

// Confirm convierte las reservas activas del holder en asignaciones FIFO
// reales dentro de una sola transacción y elimina las retenciones. Si alguna
// reserva ya expiró falla con ErrStaleReservation antes de asignar nada; si el
// stock desapareció entre reserve y confirm, falla completa y el caller
// compensa a nivel de orden (la orden nunca queda a medio asignar).
func (uc *ReservationUseCase) Confirm(ctx context.Context, in ConfirmInput) ([]*AllocationResult, error) {
	if in.HolderID == "" || in.OrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	orderItemByVariant := make(map[string]string, len(in.Items))
	for _, it := range in.Items {
		if it.VariantID == "" || it.OrderItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		orderItemByVariant[it.VariantID] = it.OrderItemID
	}

	var results []*AllocationResult
	err := withConflictRetry(ctx, uc.attempts, uc.backoff, func() error {
		results = nil
		return uc.txRunner.Run(ctx, func(
			lotRepo repository.StockLotRepository,
			allocRepo repository.StockLotAllocationRepository,
			txnRepo repository.InventoryTransactionRepository,
			resRepo repository.ReservedStockRepository,
			variantRepo repository.VariantRepository,
		) error {
			now := uc.now()
			rows, err := resRepo.ListActiveByHolderForUpdate(ctx, in.HolderID)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				// Ya expiró y el sweep la eliminó, o nunca existió.
				return domain.ErrStaleReservation
			}
			for _, row := range rows {
				if !now.Before(row.ExpiresAt) {
					return domain.ErrStaleReservation
				}
				if _, ok := orderItemByVariant[row.VariantID]; !ok {
					return domain.ErrInvalidInput
				}
			}
			// Mismo orden de locks que Reserve.
			sort.Slice(rows, func(i, j int) bool { return rows[i].VariantID < rows[j].VariantID })
			for _, row := range rows {
				result, err := uc.allocator.AllocateInTx(ctx, lotRepo, allocRepo, txnRepo, variantRepo, AllocationInput{
					OrderItemID: orderItemByVariant[row.VariantID],
					VariantID:   row.VariantID,
					Quantity:    row.Quantity,
					ActorID:     in.HolderID,
				}, now)
				if err != nil {
					return err
				}
				if err := resRepo.Delete(ctx, row.ID); err != nil {
					return err
				}
				results = append(results, result)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Status devuelve las reservas del holder con su vigencia al instante actual.
func (uc *ReservationUseCase) Status(ctx context.Context, holderID string) ([]*entity.ReservedStock, error) {
	if holderID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.resRepo.ListByHolder(ctx, holderID)
}
