package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const lotColumns = `id, variant_id, origin_kind, origin_id, quantity_in, quantity_out, unit_cost, purchase_date, created_at`

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(&l.ID, &l.VariantID, &l.OriginKind, &l.OriginID,
		&l.QuantityIn, &l.QuantityOut, &l.UnitCost, &l.PurchaseDate, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo (quantity_in queda fijado para siempre).
func (r *StockLotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, variant_id, origin_kind, origin_id, quantity_in, quantity_out, unit_cost, purchase_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.VariantID, lot.OriginKind, lot.OriginID,
		lot.QuantityIn, lot.QuantityOut, lot.UnitCost, lot.PurchaseDate, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id; nil si no existe.
func (r *StockLotRepo) GetByID(ctx context.Context, id string) (*entity.StockLot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return lot, nil
}

// GetByIDForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE).
func (r *StockLotRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockLot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE id = $1 FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot for update: %w", err)
	}
	return lot, nil
}

// ListByVariantForUpdate devuelve los lotes con remanente de la variante en
// orden FIFO (purchase_date asc, id asc), bloqueando las filas. El orden es
// requisito de negocio (costeo FIFO), no una optimización.
func (r *StockLotRepo) ListByVariantForUpdate(ctx context.Context, variantID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM stock_lots
		WHERE variant_id = $1 AND quantity_out < quantity_in
		ORDER BY purchase_date ASC, id ASC
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list lots for update: %w", err)
	}
	defer rows.Close()
	var lots []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// AddQuantityOut incrementa quantity_out solo si el remanente alcanza (update
// condicional). Cero filas afectadas significa que otra tx consumió el lote
// entre la lectura y la escritura: ErrConcurrencyConflict.
func (r *StockLotRepo) AddQuantityOut(ctx context.Context, lotID string, quantity int64) error {
	query := `
		UPDATE stock_lots
		SET quantity_out = quantity_out + $2
		WHERE id = $1 AND quantity_in - quantity_out >= $2`
	tag, err := r.q.Exec(ctx, query, lotID, quantity)
	if err != nil {
		return fmt.Errorf("add quantity_out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// List lista lotes según filtro: variante, agotados/disponibles, rango de
// purchase_date y proveedor (join con la orden de compra de origen).
func (r *StockLotRepo) List(ctx context.Context, filter repository.LotFilter) ([]*entity.StockLot, error) {
	query := `
		SELECT l.id, l.variant_id, l.origin_kind, l.origin_id, l.quantity_in, l.quantity_out, l.unit_cost, l.purchase_date, l.created_at
		FROM stock_lots l`
	if filter.SupplierID != "" {
		query += `
		JOIN grn_items gi ON l.origin_kind = 'grn_item' AND l.origin_id = gi.id
		JOIN purchase_order_items poi ON gi.purchase_order_item_id = poi.id
		JOIN purchase_orders po ON poi.purchase_order_id = po.id`
	}
	query += ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.VariantID != "" {
		query += fmt.Sprintf(" AND l.variant_id = $%d", pos)
		args = append(args, filter.VariantID)
		pos++
	}
	if filter.SupplierID != "" {
		query += fmt.Sprintf(" AND po.supplier_id = $%d", pos)
		args = append(args, filter.SupplierID)
		pos++
	}
	if filter.Depleted != nil {
		if *filter.Depleted {
			query += " AND l.quantity_out >= l.quantity_in"
		} else {
			query += " AND l.quantity_out < l.quantity_in"
		}
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND l.purchase_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND l.purchase_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY l.purchase_date ASC, l.id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var lots []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// SumRemainingByVariant suma el remanente de todos los lotes de la variante.
func (r *StockLotRepo) SumRemainingByVariant(ctx context.Context, variantID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity_in - quantity_out), 0)
		FROM stock_lots WHERE variant_id = $1`
	var sum int64
	if err := r.q.QueryRow(ctx, query, variantID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum remaining: %w", err)
	}
	return sum, nil
}
