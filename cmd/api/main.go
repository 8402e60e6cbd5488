package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Hoanqia/Thesis-sub001/internal/application/inventory"
	"github.com/Hoanqia/Thesis-sub001/internal/application/receiving"
	infrapdf "github.com/Hoanqia/Thesis-sub001/internal/infrastructure/pdf"
	"github.com/Hoanqia/Thesis-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/Hoanqia/Thesis-sub001/internal/interfaces/http"
	"github.com/Hoanqia/Thesis-sub001/pkg/config"
	"github.com/Hoanqia/Thesis-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos atados al pool para las lecturas; los casos de uso de escritura
	// reciben sus repos atados a la transacción vía TxRunner.
	lotRepo := postgres.NewStockLotRepository(pool)
	allocRepo := postgres.NewStockLotAllocationRepository(pool)
	txnRepo := postgres.NewInventoryTransactionRepository(pool)
	resRepo := postgres.NewReservedStockRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	grnRepo := postgres.NewGRNRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	retries := cfg.Stock.ConflictRetries
	backoff := time.Duration(cfg.Stock.RetryBackoffMillis) * time.Millisecond
	ttl := time.Duration(cfg.Stock.ReservationTTLMinutes) * time.Minute

	allocator := inventory.NewFIFOAllocator(txRunner, retries, backoff)
	reservationUC := inventory.NewReservationUseCase(txRunner, resRepo, allocator, ttl, retries, backoff)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner)
	queryUC := inventory.NewStockQueryUseCase(lotRepo, allocRepo, txnRepo, variantRepo)

	pdfGenerator := infrapdf.NewMarotoGRNGenerator()
	receivingUC := receiving.NewUseCase(txRunner, poRepo, grnRepo, variantRepo, pdfGenerator)

	// Sweep periódico de reservas expiradas: el DELETE es atómico, así que
	// varios procesos barriendo a la vez no pisan stock de nadie.
	sweeper := inventory.NewExpirySweeper(resRepo, time.Duration(cfg.Stock.SweepIntervalSeconds)*time.Second, log)
	go sweeper.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReservationUC: reservationUC,
		AdjustmentUC:  adjustmentUC,
		QueryUC:       queryUC,
		ReceivingUC:   receivingUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel() // detiene el sweeper

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
