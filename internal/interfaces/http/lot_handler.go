package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Hoanqia/Thesis-sub001/internal/application/dto"
	"github.com/Hoanqia/Thesis-sub001/internal/application/inventory"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/entity"
	"github.com/Hoanqia/Thesis-sub001/internal/domain/repository"
)

// LotHandler expone los lotes, los ajustes manuales y el libro de inventario.
// Los ajustes exigen rol admin; las lecturas quedan para cualquier usuario
// autenticado del back-office.
type LotHandler struct {
	adjustUC *inventory.AdjustmentUseCase
	queryUC  *inventory.StockQueryUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(adjustUC *inventory.AdjustmentUseCase, queryUC *inventory.StockQueryUseCase) *LotHandler {
	return &LotHandler{adjustUC: adjustUC, queryUC: queryUC}
}

func txnToDTO(t *entity.InventoryTransaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:         t.ID,
		VariantID:  t.VariantID,
		StockLotID: t.StockLotID,
		Type:       t.Type,
		Quantity:   t.Quantity,
		RefKind:    t.RefKind,
		RefID:      t.RefID,
		ActorID:    t.ActorID,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
	}
}

// parseDate acepta fechas RFC3339 o YYYY-MM-DD en query params.
func parseDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	return nil, false
}

// List godoc
// @Summary      Listar lotes de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id   query  string  false  "filtrar por variante"
// @Param        supplier_id  query  string  false  "filtrar por proveedor de origen"
// @Param        depleted     query  bool    false  "true = solo agotados, false = solo con remanente"
// @Param        from         query  string  false  "purchase_date desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "purchase_date hasta"
// @Param        limit        query  int     false  "máximo de filas (default 50)"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {array}   dto.StockLotDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	filter := repository.LotFilter{
		VariantID:  c.Query("variant_id"),
		SupplierID: c.Query("supplier_id"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	}
	if raw := c.Query("depleted"); raw != "" {
		depleted := raw == "true" || raw == "1"
		filter.Depleted = &depleted
	}
	from, ok := parseDate(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
	}
	to, ok := parseDate(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
	}
	filter.From, filter.To = from, to

	lots, err := h.queryUC.ListLots(c.Context(), filter)
	if err != nil {
		return errorJSON(c, err)
	}
	resp := make([]dto.StockLotDTO, 0, len(lots))
	for _, lot := range lots {
		resp = append(resp, lotToDTO(lot))
	}
	return c.JSON(resp)
}

// Detail godoc
// @Summary      Detalle de un lote con asignaciones y movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id del lote"
// @Success      200  {object}  dto.LotDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/lots/{id} [get]
func (h *LotHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.queryUC.GetLotDetail(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	resp := dto.LotDetailResponse{Lot: lotToDTO(detail.Lot)}
	for _, a := range detail.Allocations {
		resp.Allocations = append(resp.Allocations, dto.LotAllocationDTO{
			ID:          a.ID,
			OrderItemID: a.OrderItemID,
			Quantity:    a.Quantity,
			UnitCost:    a.UnitCost,
			CreatedAt:   a.CreatedAt,
		})
	}
	for _, t := range detail.Transactions {
		resp.Transactions = append(resp.Transactions, txnToDTO(t))
	}
	return c.JSON(resp)
}

// AdjustDown godoc
// @Summary      Ajuste negativo sobre un lote (daño, pérdida, devolución a proveedor)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "id del lote"
// @Param        body  body  dto.AdjustLotRequest  true  "tipo y magnitud"
// @Success      200   {object}  dto.StockLotDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/lots/{id}/adjustments [post]
func (h *LotHandler) AdjustDown(c *fiber.Ctx) error {
	var in dto.AdjustLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.adjustUC.AdjustDown(c.Context(), inventory.AdjustDownInput{
		LotID:    c.Params("id"),
		Quantity: in.Quantity,
		Type:     in.Type,
		Notes:    in.Notes,
		ActorID:  GetUserID(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(lotToDTO(lot))
}

// Intake godoc
// @Summary      Ingreso manual de stock (devolución de cliente o stock encontrado)
// @Description  Crea un lote nuevo con el costo aportado; nunca reabre lotes.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntakeLotRequest  true  "variante, cantidad, costo y tipo"
// @Success      201   {object}  dto.StockLotDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/lots [post]
func (h *LotHandler) Intake(c *fiber.Ctx) error {
	var in dto.IntakeLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.adjustUC.Intake(c.Context(), inventory.IntakeInput{
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Kind:      in.Kind,
		Notes:     in.Notes,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lotToDTO(lot))
}

// Availability godoc
// @Summary      Disponibilidad de una variante
// @Description  remanente en lotes − reservas activas = disponible para vender.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id de la variante"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/variants/{id}/availability [get]
func (h *LotHandler) Availability(c *fiber.Ctx) error {
	av, err := h.queryUC.Availability(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		VariantID:        av.VariantID,
		LotsRemaining:    av.LotsRemaining,
		ActiveReserved:   av.ActiveReserved,
		AvailableForSale: av.AvailableForSale,
	})
}

// Transactions godoc
// @Summary      Libro de inventario de una variante
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "id de la variante"
// @Param        from    query  string  false  "desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "hasta"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.TransactionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/variants/{id}/transactions [get]
func (h *LotHandler) Transactions(c *fiber.Ctx) error {
	from, ok := parseDate(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
	}
	to, ok := parseDate(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
	}
	txns, err := h.queryUC.ListTransactions(c.Context(), c.Params("id"), from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return errorJSON(c, err)
	}
	resp := make([]dto.TransactionDTO, 0, len(txns))
	for _, t := range txns {
		resp = append(resp, txnToDTO(t))
	}
	return c.JSON(resp)
}
