package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hoanqia/Thesis-sub001/internal/application/dto"
	"github.com/Hoanqia/Thesis-sub001/internal/application/receiving"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
)

// ReceivingHandler expone la recepción de mercancía contra órdenes de compra.
type ReceivingHandler struct {
	uc *receiving.UseCase
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *receiving.UseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

func lotToDTO(lot *entity.StockLot) dto.StockLotDTO {
	return dto.StockLotDTO{
		ID:           lot.ID,
		VariantID:    lot.VariantID,
		OriginKind:   lot.OriginKind,
		OriginID:     lot.OriginID,
		QuantityIn:   lot.QuantityIn,
		QuantityOut:  lot.QuantityOut,
		Remaining:    lot.Remaining(),
		UnitCost:     lot.UnitCost,
		PurchaseDate: lot.PurchaseDate,
	}
}

// Receive godoc
// @Summary      Registrar una recepción (GRN) contra una orden de compra
// @Description  Crea el GRN, sus lotes y los movimientos de recepción en una
//
//	sola transacción. Recibir más de lo pendiente responde 422.
//
// @Tags         receiving
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "orden de compra y líneas recibidas"
// @Success      201   {object}  dto.ReceiveResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/receiving/grns [post]
func (h *ReceivingHandler) Receive(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]receiving.ReceiptLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, receiving.ReceiptLine{
			PurchaseOrderItemID: l.PurchaseOrderItemID,
			Quantity:            l.Quantity,
			UnitCost:            l.UnitCost,
		})
	}
	res, err := h.uc.Receive(c.Context(), receiving.ReceiveInput{
		PurchaseOrderID: in.PurchaseOrderID,
		ActorID:         actorID,
		Lines:           lines,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	resp := dto.ReceiveResponse{GRNID: res.GRN.ID}
	for _, lot := range res.LotsCreated {
		resp.LotsCreated = append(resp.LotsCreated, lotToDTO(lot))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// DownloadPDF godoc
// @Summary      Descargar el comprobante PDF de un GRN
// @Tags         receiving
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "id del GRN"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving/grns/{id}/pdf [get]
func (h *ReceivingHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.GeneratePDF(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="grn-`+id+`.pdf"`)
	return c.Send(pdf)
}
