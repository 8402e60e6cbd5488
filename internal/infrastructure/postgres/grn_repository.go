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

var _ repository.GRNRepository = (*GRNRepo)(nil)

// GRNRepo implementación sobre PostgreSQL (usable con pool o tx).
type GRNRepo struct {
	q Querier
}

// NewGRNRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGRNRepository(q Querier) *GRNRepo {
	return &GRNRepo{q: q}
}

// Create persiste la cabecera del GRN.
func (r *GRNRepo) Create(ctx context.Context, grn *entity.GRN) error {
	query := `
		INSERT INTO grns (id, purchase_order_id, created_by, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, grn.ID, grn.PurchaseOrderID, grn.CreatedBy, grn.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert grn: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del GRN.
func (r *GRNRepo) CreateItem(ctx context.Context, item *entity.GRNItem) error {
	query := `
		INSERT INTO grn_items (id, grn_id, purchase_order_item_id, variant_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.GRNID, item.PurchaseOrderItemID, item.VariantID, item.Quantity, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert grn item: %w", err)
	}
	return nil
}

// GetByID obtiene un GRN; nil si no existe.
func (r *GRNRepo) GetByID(ctx context.Context, id string) (*entity.GRN, error) {
	query := `SELECT id, purchase_order_id, created_by, created_at FROM grns WHERE id = $1`
	var g entity.GRN
	err := r.q.QueryRow(ctx, query, id).Scan(&g.ID, &g.PurchaseOrderID, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grn: %w", err)
	}
	return &g, nil
}

// ListItems lista las líneas de un GRN.
func (r *GRNRepo) ListItems(ctx context.Context, grnID string) ([]*entity.GRNItem, error) {
	query := `
		SELECT id, grn_id, purchase_order_item_id, variant_id, quantity, unit_cost
		FROM grn_items WHERE grn_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query, grnID)
	if err != nil {
		return nil, fmt.Errorf("list grn items: %w", err)
	}
	defer rows.Close()
	var items []*entity.GRNItem
	for rows.Next() {
		var it entity.GRNItem
		if err := rows.Scan(&it.ID, &it.GRNID, &it.PurchaseOrderItemID,
			&it.VariantID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan grn item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
