package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Motor de inventario por lotes.
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidAdjustment   = errors.New("ajuste fuera de rango del lote")
	ErrOverReceipt         = errors.New("cantidad recibida excede lo pendiente de la orden de compra")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia sobre stock")
	ErrStaleReservation    = errors.New("la reserva expiró antes de confirmarse")
)
