package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mvalderrama/inventario-api/internal/application/auth"
	"github.com/mvalderrama/inventario-api/internal/application/inventory"
	"github.com/mvalderrama/inventario-api/internal/application/sales"
	"github.com/mvalderrama/inventario-api/internal/application/usecase"
	infrapdf "github.com/mvalderrama/inventario-api/internal/infrastructure/pdf"
	"github.com/mvalderrama/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/mvalderrama/inventario-api/internal/interfaces/http"
	"github.com/mvalderrama/inventario-api/pkg/config"
	"github.com/mvalderrama/inventario-api/pkg/logger"
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

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := inventory.NewStockUseCase(txRunner, productRepo, movementRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	saleUC := sales.NewSaleUseCase(txRunner, stockUC, saleRepo, productRepo, clientRepo, receiptGen)
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
	if sw := httpRouter.SwaggerUI("./docs/swagger.json"); sw != nil {
		app.Use(sw)
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado, UI de documentación deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		ClientUC:  clientUC,
		StockUC:   stockUC,
		SaleUC:    saleUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
