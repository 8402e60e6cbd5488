package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Hoanqia/Thesis-sub001/internal/application/dto"
	"github.com/Hoanqia/Thesis-sub001/internal/domain"
)

// errorJSON mapea los errores de dominio a respuestas HTTP. La taxonomía del
// motor de stock es estable: el caller siempre recibe un rechazo con causa
// específica, nunca un cumplimiento parcial silencioso.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrStaleReservation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STALE_RESERVATION", Message: "la reserva expiró; reservar de nuevo"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia; reintente"})
	case errors.Is(err, domain.ErrInvalidAdjustment):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_ADJUSTMENT", Message: "el ajuste saca el lote de rango"})
	case errors.Is(err, domain.ErrOverReceipt):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "OVER_RECEIPT", Message: "cantidad recibida excede lo pendiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
