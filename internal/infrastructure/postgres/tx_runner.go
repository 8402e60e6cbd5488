package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hoanqia/Thesis-sub001/internal/application/inventory"
	"github.com/Hoanqia/Thesis-sub001/internal/application/receiving"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and receiving.ReceivingTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ receiving.ReceivingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, entregando
// repositorios atados a esa tx. Commit y Rollback son responsabilidad del
// runner: el caller solo devuelve error para abortar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del motor de stock (asignación,
// reserva, ajuste) y hace Commit o Rollback. Traduce errores de lock/deadlock
// a ErrConcurrencyConflict para el reintento acotado del caller.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	allocRepo repository.StockLotAllocationRepository,
	txnRepo repository.InventoryTransactionRepository,
	resRepo repository.ReservedStockRepository,
	variantRepo repository.VariantRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewStockLotRepository(tx)
	allocRepo := NewStockLotAllocationRepository(tx)
	txnRepo := NewInventoryTransactionRepository(tx)
	resRepo := NewReservedStockRepository(tx)
	variantRepo := NewVariantRepository(tx)

	if err := fn(lotRepo, allocRepo, txnRepo, resRepo, variantRepo); err != nil {
		return translateConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunReceiving inicia una transacción con los repos del pipeline de recepción
// (orden de compra, GRN, lotes, libro) y hace Commit o Rollback.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	grnRepo repository.GRNRepository,
	lotRepo repository.StockLotRepository,
	txnRepo repository.InventoryTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	poRepo := NewPurchaseOrderRepository(tx)
	grnRepo := NewGRNRepository(tx)
	lotRepo := NewStockLotRepository(tx)
	txnRepo := NewInventoryTransactionRepository(tx)

	if err := fn(poRepo, grnRepo, lotRepo, txnRepo); err != nil {
		return translateConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
