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

	"github.com/get-hunter/hero365-inventory/internal/application/inventory"
	"github.com/get-hunter/hero365-inventory/internal/application/planning"
	"github.com/get-hunter/hero365-inventory/internal/application/usecase"
	"github.com/get-hunter/hero365-inventory/internal/infrastructure/postgres"
	httpRouter "github.com/get-hunter/hero365-inventory/internal/interfaces/http"
	"github.com/get-hunter/hero365-inventory/pkg/config"
	"github.com/get-hunter/hero365-inventory/pkg/logger"
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

	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockOpsUC := inventory.NewStockOperationsUseCase(txRunner)
	movementQueryUC := inventory.NewMovementQueryUseCase(productRepo, movementRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo)
	planningUC := planning.NewReorderPlanningUseCase(productRepo, movementRepo, planning.Policy{
		HoldingCostRate:        cfg.Inventory.HoldingCostRate,
		OrderingCost:           cfg.Inventory.OrderingCost,
		DefaultReorderQuantity: cfg.Inventory.DefaultReorderQuantity,
	})

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
		Title:    "Hero365 Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		StockOperations: stockOpsUC,
		MovementQuery:   movementQueryUC,
		Planning:        planningUC,
		JWTSecret:       cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
