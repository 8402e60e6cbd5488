package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hoanqia/Thesis-sub001/internal/application/dto"
	"github.com/Hoanqia/Thesis-sub001/internal/application/inventory"
)

// ReservationHandler maneja las retenciones de stock del checkout (protegido).
// El holder es siempre el usuario del token: un cliente no puede reservar ni
// liberar a nombre de otro.
type ReservationHandler struct {
	uc *inventory.ReservationUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *inventory.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Reserve godoc
// @Summary      Reservar stock para checkout
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "líneas a retener (variant_id, quantity)"
// @Success      201   {object}  dto.ReserveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/reservations [post]
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	holderID := GetUserID(c)
	if holderID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]inventory.ReserveLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.ReserveLine{VariantID: l.VariantID, Quantity: l.Quantity})
	}
	batchID, err := h.uc.Reserve(c.Context(), inventory.ReserveInput{HolderID: holderID, Lines: lines})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReserveResponse{ReservationBatchID: batchID})
}

// Release godoc
// @Summary      Liberar las reservas del holder
// @Description  Idempotente: liberar dos veces, o tras confirmar, no es error.
// @Tags         stock
// @Security     Bearer
// @Success      204
// @Router       /api/stock/reservations [delete]
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	holderID := GetUserID(c)
	if holderID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Release(c.Context(), holderID); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm godoc
// @Summary      Confirmar reservas como asignaciones FIFO de una orden
// @Description  Convierte el batch del holder en asignaciones con COGS fijado.
//
//	Si el stock desapareció o la reserva expiró responde 409 y el
//	caller debe compensar a nivel de orden.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmRequest  true  "order_id y mapeo variante→línea de orden"
// @Success      200   {array}   dto.ConfirmLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/reservations/confirm [post]
func (h *ReservationHandler) Confirm(c *fiber.Ctx) error {
	holderID := GetUserID(c)
	if holderID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.ConfirmItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.ConfirmItem{VariantID: it.VariantID, OrderItemID: it.OrderItemID})
	}
	results, err := h.uc.Confirm(c.Context(), inventory.ConfirmInput{
		HolderID: holderID,
		OrderID:  in.OrderID,
		Items:    items,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	resp := make([]dto.ConfirmLineResponse, 0, len(results))
	for _, r := range results {
		line := dto.ConfirmLineResponse{
			OrderItemID:  r.OrderItemID,
			VariantID:    r.VariantID,
			SubtotalCOGS: r.SubtotalCOGS,
		}
		for _, a := range r.Allocations {
			line.Allocations = append(line.Allocations, dto.AllocationDTO{
				StockLotID: a.StockLotID,
				Quantity:   a.Quantity,
				UnitCost:   a.UnitCost,
			})
		}
		resp = append(resp, line)
	}
	return c.JSON(resp)
}

// Status godoc
// @Summary      Estado de las reservas del holder
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReservationStatusDTO
// @Router       /api/stock/reservations [get]
func (h *ReservationHandler) Status(c *fiber.Ctx) error {
	holderID := GetUserID(c)
	if holderID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	rows, err := h.uc.Status(c.Context(), holderID)
	if err != nil {
		return errorJSON(c, err)
	}
	now := c.Context().Time()
	resp := make([]dto.ReservationStatusDTO, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.ReservationStatusDTO{
			ID:        r.ID,
			BatchID:   r.BatchID,
			VariantID: r.VariantID,
			Quantity:  r.Quantity,
			Active:    r.Active(now),
			ExpiresAt: r.ExpiresAt,
		})
	}
	return c.JSON(resp)
}
