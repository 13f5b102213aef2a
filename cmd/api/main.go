package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appledger "github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/internal/application/usecase"
	"github.com/clinivet/clinivet-api/internal/infrastructure/bus"
	"github.com/clinivet/clinivet-api/internal/infrastructure/postgres"
	httpRouter "github.com/clinivet/clinivet-api/internal/interfaces/http"
	"github.com/clinivet/clinivet-api/pkg/config"
	"github.com/clinivet/clinivet-api/pkg/logger"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	batchRepo := postgres.NewBatchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	referenceRepo := postgres.NewReferenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de alertas: set de deduplicación local al proceso, un motor por sesión
	notifier := bus.NewStockNotifier(log)
	alertEngine := appledger.NewAlertEngine(cfg.Ledger.LowStockThreshold, notifier, log)

	batchUC := appledger.NewBatchUseCase(txRunner, batchRepo, productRepo, supplierRepo, alertEngine)
	stockUC := appledger.NewStockUseCase(txRunner, alertEngine)
	rollupUC := appledger.NewRollupUseCase(batchRepo, productRepo, alertEngine)
	catalogUC := usecase.NewCatalogUseCase(productRepo, supplierRepo)
	referenceUC := usecase.NewReferenceUseCase(referenceRepo)

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
		Title:    "Clinivet API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BatchUC:           batchUC,
		StockUC:           stockUC,
		RollupUC:          rollupUC,
		CatalogUC:         catalogUC,
		ReferenceUC:       referenceUC,
		LowStockThreshold: cfg.Ledger.LowStockThreshold,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	// Apagado ordenado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
