package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación sobre PostgreSQL (usable con pool o tx).
// La fila de la variante es el ancla de exclusión mutua del motor de stock.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// GetByID obtiene la variante; nil si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `SELECT id, sku, name, created_at FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, id).Scan(&v.ID, &v.SKU, &v.Name, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// LockByID toma el lock de la fila de la variante (SELECT FOR UPDATE) dentro
// de la tx actual. Serializa chequeo-de-disponibilidad + inserción de reserva
// y las asignaciones concurrentes de la misma variante.
func (r *VariantRepo) LockByID(ctx context.Context, id string) error {
	query := `SELECT id FROM variants WHERE id = $1 FOR UPDATE`
	var got string
	if err := r.q.QueryRow(ctx, query, id).Scan(&got); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock variant: %w", err)
	}
	return nil
}

// Availability calcula el snapshot de disponibilidad: remanente de lotes menos
// reservas activas sin confirmar al instante dado.
func (r *VariantRepo) Availability(ctx context.Context, id string, now time.Time) (*entity.VariantAvailability, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(quantity_in - quantity_out) FROM stock_lots WHERE variant_id = $1), 0),
			COALESCE((SELECT SUM(quantity) FROM reserved_stock WHERE variant_id = $1 AND order_id IS NULL AND expires_at > $2), 0)`
	av := &entity.VariantAvailability{VariantID: id}
	if err := r.q.QueryRow(ctx, query, id, now).Scan(&av.LotsRemaining, &av.ActiveReserved); err != nil {
		return nil, fmt.Errorf("variant availability: %w", err)
	}
	av.AvailableForSale = av.LotsRemaining - av.ActiveReserved
	return av, nil
}
