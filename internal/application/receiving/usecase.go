package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// UseCase convierte una orden de compra confirmada en una nota de recepción
// (GRN) y materializa un StockLot por línea recibida, con su transacción de
// recepción. Recalcula el estado de la orden al final.
type UseCase struct {
	txRunner    ReceivingTxRunner
	poRepo      repository.PurchaseOrderRepository
	grnRepo     repository.GRNRepository
	variantRepo repository.VariantRepository
	pdfGen      GRNPDFGenerator
	now         func() time.Time
}

// NewUseCase construye el caso de uso de recepción.
func NewUseCase(
	txRunner ReceivingTxRunner,
	poRepo repository.PurchaseOrderRepository,
	grnRepo repository.GRNRepository,
	variantRepo repository.VariantRepository,
	pdfGen GRNPDFGenerator,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		poRepo:      poRepo,
		grnRepo:     grnRepo,
		variantRepo: variantRepo,
		pdfGen:      pdfGen,
		now:         time.Now,
	}
}

// ReceiptLine es una línea de recepción contra una línea de la orden de compra.
type ReceiptLine struct {
	PurchaseOrderItemID string
	Quantity            int64
	UnitCost            decimal.Decimal
}

// ReceiveInput agrupa la recepción de una orden.
type ReceiveInput struct {
	PurchaseOrderID string
	ActorID         string
	Lines           []ReceiptLine
}

// ReceiveResult devuelve el GRN creado y los lotes materializados.
type ReceiveResult struct {
	GRN         *entity.GRN
	LotsCreated []*entity.StockLot
}

// Receive procesa el lote de recepción en una sola transacción. Una cantidad
// que exceda lo pendiente de su línea se rechaza con ErrOverReceipt (nunca se
// recorta en silencio) y aborta el GRN completo.
func (uc *UseCase) Receive(ctx context.Context, in ReceiveInput) (*ReceiveResult, error) {
	if in.PurchaseOrderID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.PurchaseOrderItemID == "" || l.Quantity <= 0 || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	po, err := uc.poRepo.GetByID(ctx, in.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	// Solo se recibe contra órdenes confirmadas (o ya parcialmente recibidas).
	if po.Status != entity.POStatusConfirmed && po.Status != entity.POStatusPartiallyReceived {
		return nil, domain.ErrConflict
	}

	var result *ReceiveResult
	err = uc.txRunner.RunReceiving(ctx, func(
		poRepo repository.PurchaseOrderRepository,
		grnRepo repository.GRNRepository,
		lotRepo repository.StockLotRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error {
		now := uc.now()
		items, err := poRepo.ListItemsForUpdate(ctx, in.PurchaseOrderID)
		if err != nil {
			return err
		}
		itemByID := make(map[string]*entity.PurchaseOrderItem, len(items))
		for _, it := range items {
			itemByID[it.ID] = it
		}

		grn := &entity.GRN{
			ID:              uuid.New().String(),
			PurchaseOrderID: in.PurchaseOrderID,
			CreatedBy:       in.ActorID,
			CreatedAt:       now,
		}
		if err := grnRepo.Create(ctx, grn); err != nil {
			return err
		}

		var lots []*entity.StockLot
		for _, line := range in.Lines {
			item, ok := itemByID[line.PurchaseOrderItemID]
			if !ok || item.PurchaseOrderID != in.PurchaseOrderID {
				return domain.ErrNotFound
			}
			if line.Quantity > item.Outstanding() {
				return domain.ErrOverReceipt
			}
			if err := poRepo.AddReceivedQuantity(ctx, item.ID, line.Quantity); err != nil {
				return err
			}
			item.ReceivedQuantity += line.Quantity

			grnItem := &entity.GRNItem{
				ID:                  uuid.New().String(),
				GRNID:               grn.ID,
				PurchaseOrderItemID: item.ID,
				VariantID:           item.VariantID,
				Quantity:            line.Quantity,
				UnitCost:            line.UnitCost,
			}
			if err := grnRepo.CreateItem(ctx, grnItem); err != nil {
				return err
			}

			lot := &entity.StockLot{
				ID:           uuid.New().String(),
				VariantID:    item.VariantID,
				OriginKind:   entity.OriginGRNItem,
				OriginID:     grnItem.ID,
				QuantityIn:   line.Quantity,
				QuantityOut:  0,
				UnitCost:     line.UnitCost,
				PurchaseDate: now,
				CreatedAt:    now,
			}
			if err := lotRepo.Create(ctx, lot); err != nil {
				return err
			}

			lotID := lot.ID
			txn := &entity.InventoryTransaction{
				ID:         uuid.New().String(),
				VariantID:  item.VariantID,
				StockLotID: &lotID,
				Type:       entity.TxTypeReceipt,
				Quantity:   line.Quantity,
				RefKind:    entity.TxRefGRNItem,
				RefID:      grnItem.ID,
				ActorID:    in.ActorID,
				CreatedAt:  now,
			}
			if err := txnRepo.Create(ctx, txn); err != nil {
				return err
			}
			lots = append(lots, lot)
		}

		newStatus := entity.DeriveStatus(po.Status, items)
		if newStatus != po.Status {
			if err := poRepo.UpdateStatus(ctx, in.PurchaseOrderID, newStatus); err != nil {
				return err
			}
		}
		result = &ReceiveResult{GRN: grn, LotsCreated: lots}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GeneratePDF genera la representación impresa del GRN con los datos de variante.
func (uc *UseCase) GeneratePDF(ctx context.Context, grnID string) ([]byte, error) {
	grn, err := uc.grnRepo.GetByID(ctx, grnID)
	if err != nil {
		return nil, err
	}
	if grn == nil {
		return nil, domain.ErrNotFound
	}
	po, err := uc.poRepo.GetByID(ctx, grn.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	items, err := uc.grnRepo.ListItems(ctx, grnID)
	if err != nil {
		return nil, err
	}
	rows := make([]GRNItemForPDF, 0, len(items))
	for _, it := range items {
		row := GRNItemForPDF{
			Quantity: it.Quantity,
			UnitCost: it.UnitCost,
			Subtotal: it.UnitCost.Mul(decimal.NewFromInt(it.Quantity)),
		}
		variant, err := uc.variantRepo.GetByID(ctx, it.VariantID)
		if err != nil {
			return nil, err
		}
		// Variante borrada del catálogo: el GRN se imprime igual, sin SKU/nombre.
		if variant != nil {
			row.SKU = variant.SKU
			row.Name = variant.Name
		}
		rows = append(rows, row)
	}
	return uc.pdfGen.GenerateGRNPDF(ctx, grn, po, rows)
}
