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
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/accounting"
	"github.com/tu-usuario/catering-pro/internal/application/auth"
	"github.com/tu-usuario/catering-pro/internal/application/catalog"
	"github.com/tu-usuario/catering-pro/internal/application/procurement"
	"github.com/tu-usuario/catering-pro/internal/application/production"
	"github.com/tu-usuario/catering-pro/internal/application/reporting"
	"github.com/tu-usuario/catering-pro/internal/application/stock"
	infraexport "github.com/tu-usuario/catering-pro/internal/infrastructure/export"
	infrapdf "github.com/tu-usuario/catering-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/catering-pro/internal/interfaces/http"
	"github.com/tu-usuario/catering-pro/pkg/config"
	"github.com/tu-usuario/catering-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
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

	// Repositorios (lecturas fuera de transacción; las escrituras pasan por TxRunner)
	storeRepo := postgres.NewStoreRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	prodLotRepo := postgres.NewProductionLotRepository(pool)
	consRepo := postgres.NewConsumptionRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	accountingRepo := postgres.NewAccountingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	stockTxRunner := postgres.NewTxRunner(pool)
	productionTxRunner := postgres.NewProductionTxRunner(pool)

	// Stock
	ledgerUC := stock.NewLedgerUseCase(stockTxRunner, storeRepo, ingredientRepo, lotRepo, movRepo)
	allocatorUC := stock.NewAllocatorUseCase(storeRepo, ingredientRepo, lotRepo, movRepo)
	lowThreshold, err := decimal.NewFromString(cfg.Stock.LowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("STOCK_LOW_THRESHOLD inválido")
	}
	restockFactor, err := decimal.NewFromString(cfg.Stock.RestockFactor)
	if err != nil {
		log.Fatal().Err(err).Msg("STOCK_RESTOCK_FACTOR inválido")
	}
	alertsUC := stock.NewAlertsUseCase(stock.AlertsConfig{
		LowStockThreshold: lowThreshold,
		RestockFactor:     restockFactor,
	}, storeRepo, ingredientRepo, movRepo)

	// Catálogo
	costUC := catalog.NewCostUseCase(ingredientRepo, recipeRepo, menuRepo)
	availabilityUC := catalog.NewAvailabilityUseCase(menuRepo, recipeRepo, allocatorUC)
	matchingUC := catalog.NewMatchingUseCase(ingredientRepo)

	// Producción
	plannerUC := production.NewPlannerUseCase(storeRepo, planRepo, salesRepo, recipeRepo)
	executorUC := production.NewExecutorUseCase(recipeRepo, productionTxRunner)

	// Aprovisionamiento
	needsUC := procurement.NewNeedsUseCase(storeRepo, supplierRepo, planRepo, recipeRepo, movRepo, orderRepo)

	// Contabilidad y trazabilidad
	vatRate, err := decimal.NewFromString(cfg.Stock.VATRate)
	if err != nil {
		log.Fatal().Err(err).Msg("ACCOUNTING_VAT_RATE inválido")
	}
	xmlBuilder := infraexport.NewJournalXMLBuilder()
	exportUC := accounting.NewExportUseCase(accountingRepo, orderRepo, xmlBuilder, vatRate)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	traceabilityUC := reporting.NewTraceabilityUseCase(
		prodLotRepo, consRepo, lotRepo, ingredientRepo, supplierRepo, storeRepo, recipeRepo, pdfGenerator,
	)

	// Auth
	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
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
		Title:    "Catering Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		LedgerUC:       ledgerUC,
		AllocatorUC:    allocatorUC,
		AlertsUC:       alertsUC,
		CostUC:         costUC,
		AvailabilityUC: availabilityUC,
		MatchingUC:     matchingUC,
		PlannerUC:      plannerUC,
		ExecutorUC:     executorUC,
		NeedsUC:        needsUC,
		ExportUC:       exportUC,
		TraceabilityUC: traceabilityUC,
		JWTSecret:      cfg.JWT.Secret,
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
