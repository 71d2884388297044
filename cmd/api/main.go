package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/stock"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/config"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store     repository.ProductStore
		salesRepo repository.SalesRepository
	)
	switch cfg.App.Storage {
	case config.StorageMemory:
		store = memory.NewProductStore()
		salesRepo = memory.NewSalesRepository()
	default:
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewProductStore(pool, log)
		salesRepo = postgres.NewSalesRepository(pool)
	}

	ledger := stock.NewLedger(store, log)
	if err := ledger.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del catálogo")
	}
	abcReportUC := analytics.NewABCReportUseCase()
	seasonalityUC := analytics.NewSeasonalityUseCase(salesRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledger,
		ABCReport:   abcReportUC,
		Seasonality: seasonalityUC,
	})

	g, gCtx := errgroup.WithContext(ctx)

	// Sincronización con el almacén durable (cambios de otros escritores)
	g.Go(func() error {
		return ledger.Run(gCtx)
	})

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("finalización con error")
	}
	log.Info().Msg("aplicación detenida")
}
