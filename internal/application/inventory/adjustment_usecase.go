package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// AdjustmentUseCase aplica correcciones manuales de stock. Las negativas
// (daño, pérdida, devolución a proveedor) consumen quantity_out de un lote
// existente con verificación de rango. Las positivas (devolución de cliente,
// stock encontrado) nunca tocan quantity_in de un lote existente: crean un
// lote nuevo por el mismo camino que una recepción, con el costo que aporte
// el caller. Cada ajuste emite exactamente una transacción de inventario.
type AdjustmentUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, now: time.Now}
}

// AdjustDownInput es una corrección negativa sobre un lote.
type AdjustDownInput struct {
	LotID    string
	Quantity int64  // magnitud a descontar, > 0
	Type     string // damage | loss | return_to_supplier
	Notes    string
	ActorID  string
}

var negativeTypes = map[string]bool{
	entity.TxTypeDamage:           true,
	entity.TxTypeLoss:             true,
	entity.TxTypeReturnToSupplier: true,
}

// AdjustDown incrementa quantity_out del lote por la magnitud indicada,
// rechazando (no recortando) cualquier ajuste que saque quantity_out del
// rango [0, quantity_in]. Devuelve el lote actualizado.
func (uc *AdjustmentUseCase) AdjustDown(ctx context.Context, in AdjustDownInput) (*entity.StockLot, error) {
	if in.LotID == "" || in.Quantity <= 0 || !negativeTypes[in.Type] {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockLot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		_ repository.StockLotAllocationRepository,
		txnRepo repository.InventoryTransactionRepository,
		_ repository.ReservedStockRepository,
		_ repository.VariantRepository,
	) error {
		lot, err := lotRepo.GetByIDForUpdate(ctx, in.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.Remaining() < in.Quantity {
			return domain.ErrInvalidAdjustment
		}
		if err := lotRepo.AddQuantityOut(ctx, lot.ID, in.Quantity); err != nil {
			return err
		}
		now := uc.now()
		lotID := lot.ID
		txn := &entity.InventoryTransaction{
			ID:         uuid.New().String(),
			VariantID:  lot.VariantID,
			StockLotID: &lotID,
			Type:       in.Type,
			Quantity:   -in.Quantity,
			RefKind:    entity.TxRefAdjustment,
			RefID:      lot.ID,
			ActorID:    in.ActorID,
			Notes:      in.Notes,
			CreatedAt:  now,
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}
		lot.QuantityOut += in.Quantity
		updated = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// IntakeInput es una corrección positiva: materializa un lote nuevo.
type IntakeInput struct {
	VariantID string
	Quantity  int64
	UnitCost  decimal.Decimal // base de costo aportada por el caller
	Kind      string          // customer_return | found
	Notes     string
	ActorID   string
}

var intakeKinds = map[string]string{
	entity.OriginCustomerReturn: entity.TxTypeCustomerReturn,
	entity.OriginFound:          entity.TxTypeFound,
}

// Intake crea un lote nuevo (quantity_out = 0) con su transacción positiva.
// El lote entra a la cola FIFO con purchase_date = ahora: las devoluciones no
// saltan la fila de los lotes viejos.
func (uc *AdjustmentUseCase) Intake(ctx context.Context, in IntakeInput) (*entity.StockLot, error) {
	txType, ok := intakeKinds[in.Kind]
	if !ok || in.VariantID == "" || in.Quantity <= 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.StockLot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		_ repository.StockLotAllocationRepository,
		txnRepo repository.InventoryTransactionRepository,
		_ repository.ReservedStockRepository,
		variantRepo repository.VariantRepository,
	) error {
		variant, err := variantRepo.GetByID(ctx, in.VariantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		adjustmentID := uuid.New().String()
		lot := &entity.StockLot{
			ID:           uuid.New().String(),
			VariantID:    in.VariantID,
			OriginKind:   in.Kind,
			OriginID:     adjustmentID,
			QuantityIn:   in.Quantity,
			QuantityOut:  0,
			UnitCost:     in.UnitCost,
			PurchaseDate: now,
			CreatedAt:    now,
		}
		if err := lotRepo.Create(ctx, lot); err != nil {
			return err
		}
		lotID := lot.ID
		txn := &entity.InventoryTransaction{
			ID:         uuid.New().String(),
			VariantID:  in.VariantID,
			StockLotID: &lotID,
			Type:       txType,
			Quantity:   in.Quantity,
			RefKind:    entity.TxRefAdjustment,
			RefID:      adjustmentID,
			ActorID:    in.ActorID,
			Notes:      in.Notes,
			CreatedAt:  now,
		}
		if err := txnRepo.Create(ctx, txn); err != nil {
			return err
		}
		created = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
