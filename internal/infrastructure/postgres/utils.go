package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Hoanqia/Thesis-sub001/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// translateConcurrencyError mapea fallas de serialización, deadlock o lock no
// disponible a ErrConcurrencyConflict, que el caller puede reintentar acotado
// (la tx completa hizo rollback, no queda estado parcial). Otros errores pasan
// sin tocar.
func translateConcurrencyError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization_failure, deadlock_detected, lock_not_available
			return domain.ErrConcurrencyConflict
		}
	}
	return err
}
