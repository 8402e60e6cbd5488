package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

var _ repository.ReservedStockRepository = (*ReservedStockRepo)(nil)

// ReservedStockRepo implementación sobre PostgreSQL (usable con pool o tx).
// Una reserva está "activa" mientras order_id IS NULL y expires_at está en el
// futuro; solo esas filas restan disponibilidad.
type ReservedStockRepo struct {
	q Querier
}

// NewReservedStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservedStockRepository(q Querier) *ReservedStockRepo {
	return &ReservedStockRepo{q: q}
}

const reservedColumns = `id, batch_id, variant_id, holder_id, quantity, order_id, expires_at, created_at`

// CreateBatch inserta todas las líneas de un batch de reserva.
func (r *ReservedStockRepo) CreateBatch(ctx context.Context, rows []*entity.ReservedStock) error {
	query := `
		INSERT INTO reserved_stock (id, batch_id, variant_id, holder_id, quantity, order_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, row := range rows {
		_, err := r.q.Exec(ctx, query,
			row.ID, row.BatchID, row.VariantID, row.HolderID, row.Quantity, row.OrderID, row.ExpiresAt, row.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert reserved stock: %w", err)
		}
	}
	return nil
}

func (r *ReservedStockRepo) queryRows(ctx context.Context, query string, args ...any) ([]*entity.ReservedStock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reserved stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReservedStock
	for rows.Next() {
		var rs entity.ReservedStock
		if err := rows.Scan(&rs.ID, &rs.BatchID, &rs.VariantID, &rs.HolderID,
			&rs.Quantity, &rs.OrderID, &rs.ExpiresAt, &rs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reserved stock: %w", err)
		}
		list = append(list, &rs)
	}
	return list, rows.Err()
}

// ListActiveByHolderForUpdate devuelve las reservas sin confirmar del holder
// bloqueando las filas: Confirm y el sweep nunca actúan sobre la misma fila a la vez.
func (r *ReservedStockRepo) ListActiveByHolderForUpdate(ctx context.Context, holderID string) ([]*entity.ReservedStock, error) {
	query := `
		SELECT ` + reservedColumns + `
		FROM reserved_stock
		WHERE holder_id = $1 AND order_id IS NULL
		ORDER BY variant_id ASC
		FOR UPDATE`
	return r.queryRows(ctx, query, holderID)
}

// ListByHolder lista todas las reservas del holder, sin lock.
func (r *ReservedStockRepo) ListByHolder(ctx context.Context, holderID string) ([]*entity.ReservedStock, error) {
	query := `
		SELECT ` + reservedColumns + `
		FROM reserved_stock
		WHERE holder_id = $1
		ORDER BY created_at ASC`
	return r.queryRows(ctx, query, holderID)
}

// DeleteByHolder elimina las reservas sin confirmar del holder. Cero filas no es error.
func (r *ReservedStockRepo) DeleteByHolder(ctx context.Context, holderID string) error {
	query := `DELETE FROM reserved_stock WHERE holder_id = $1 AND order_id IS NULL`
	if _, err := r.q.Exec(ctx, query, holderID); err != nil {
		return fmt.Errorf("delete reservations by holder: %w", err)
	}
	return nil
}

// Delete elimina una reserva puntual. Cero filas no es error.
func (r *ReservedStockRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reserved_stock WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}

// DeleteExpired elimina en una sola sentencia las reservas vencidas y sin
// confirmar; devuelve cuántas filas liberó.
func (r *ReservedStockRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM reserved_stock WHERE expires_at <= $1 AND order_id IS NULL`
	tag, err := r.q.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired reservations: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SumActiveByVariant suma las reservas activas (sin confirmar y sin vencer) de la variante.
func (r *ReservedStockRepo) SumActiveByVariant(ctx context.Context, variantID string, now time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM reserved_stock
		WHERE variant_id = $1 AND order_id IS NULL AND expires_at > $2`
	var sum int64
	if err := r.q.QueryRow(ctx, query, variantID, now).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum active reservations: %w", err)
	}
	return sum, nil
}
