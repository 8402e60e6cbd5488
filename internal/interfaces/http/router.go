package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hoanqia/Thesis-sub001/internal/application/inventory"
	"github.com/Hoanqia/Thesis-sub001/internal/application/receiving"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReservationUC *inventory.ReservationUseCase
	AdjustmentUC  *inventory.AdjustmentUseCase
	QueryUC       *inventory.StockQueryUseCase
	ReceivingUC   *receiving.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todo el motor de stock va detrás del
// Bearer Token: el holder de las reservas y el actor del libro salen del JWT.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reservas de checkout (protegido; holder = usuario del token)
	reservations := protected.Group("/stock/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Reserve)
	reservations.Get("/", reservationHandler.Status)
	reservations.Delete("/", reservationHandler.Release)
	reservations.Post("/confirm", reservationHandler.Confirm)

	// Lotes, ajustes y libro (protegido; ajustes solo admin)
	lotHandler := NewLotHandler(deps.AdjustmentUC, deps.QueryUC)
	lots := protected.Group("/stock/lots")
	lots.Get("/", lotHandler.List)
	lots.Post("/", RequireRole("admin"), lotHandler.Intake)
	lots.Get("/:id", lotHandler.Detail)
	lots.Post("/:id/adjustments", RequireRole("admin"), lotHandler.AdjustDown)

	variants := protected.Group("/stock/variants")
	variants.Get("/:id/availability", lotHandler.Availability)
	variants.Get("/:id/transactions", lotHandler.Transactions)

	// Recepción de mercancía (protegido, solo admin)
	receivingGroup := protected.Group("/receiving", RequireRole("admin"))
	receivingHandler := NewReceivingHandler(deps.ReceivingUC)
	receivingGroup.Post("/grns", receivingHandler.Receive)
	receivingGroup.Get("/grns/:id/pdf", receivingHandler.DownloadPDF)
}
