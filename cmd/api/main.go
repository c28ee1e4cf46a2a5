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
	"github.com/jhoicas/Alquileres-api/internal/application/auth"
	"github.com/jhoicas/Alquileres-api/internal/application/catalog"
	appdispatch "github.com/jhoicas/Alquileres-api/internal/application/dispatch"
	"github.com/jhoicas/Alquileres-api/internal/application/events"
	"github.com/jhoicas/Alquileres-api/internal/application/returns"
	"github.com/jhoicas/Alquileres-api/internal/application/settlement"
	appstock "github.com/jhoicas/Alquileres-api/internal/application/stock"
	"github.com/jhoicas/Alquileres-api/internal/domain/notify"
	"github.com/jhoicas/Alquileres-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Alquileres-api/internal/interfaces/http"
	"github.com/jhoicas/Alquileres-api/pkg/config"
	"github.com/jhoicas/Alquileres-api/pkg/logger"
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

	eventRepo := postgres.NewEventRepository(pool)
	dispatchRepo := postgres.NewDispatchRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	b2bRepo := postgres.NewB2BStockRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Observador de cambios de stock: por ahora solo log estructurado.
	// Los cambios se publican después del commit de cada transacción.
	fanout := notify.NewFanout()
	fanout.Subscribe(func(ch notify.StockChange) {
		log.Info().
			Str("product_id", ch.ProductID).
			Str("pool", ch.Pool).
			Str("delta", ch.Delta.String()).
			Str("reference", ch.Reference).
			Msg("cambio de stock")
	})

	eventUC := events.NewEventUseCase(eventRepo, dispatchRepo, returnRepo, clientRepo)
	dispatchUC := appdispatch.NewDispatchUseCase(txRunner, eventRepo, fanout)
	returnUC := returns.NewReturnUseCase(txRunner, eventRepo, dispatchRepo, returnRepo, fanout, cfg.Billing.LateFeePerDay)
	settlementUC := settlement.NewSettlementUseCase(txRunner, invoiceRepo, clientRepo)
	stockUC := appstock.NewStockUseCase(txRunner, b2bRepo, fanout)
	catalogUC := catalog.NewCatalogUseCase(productRepo, b2bRepo, clientRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "AlquilerPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EventUC:      eventUC,
		DispatchUC:   dispatchUC,
		ReturnUC:     returnUC,
		SettlementUC: settlementUC,
		StockUC:      stockUC,
		CatalogUC:    catalogUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
