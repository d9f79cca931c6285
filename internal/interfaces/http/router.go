package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catering-pro/internal/application/accounting"
	"github.com/tu-usuario/catering-pro/internal/application/auth"
	"github.com/tu-usuario/catering-pro/internal/application/catalog"
	"github.com/tu-usuario/catering-pro/internal/application/procurement"
	"github.com/tu-usuario/catering-pro/internal/application/production"
	"github.com/tu-usuario/catering-pro/internal/application/reporting"
	"github.com/tu-usuario/catering-pro/internal/application/stock"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	LedgerUC       *stock.LedgerUseCase
	AllocatorUC    *stock.AllocatorUseCase
	AlertsUC       *stock.AlertsUseCase
	CostUC         *catalog.CostUseCase
	AvailabilityUC *catalog.AvailabilityUseCase
	MatchingUC     *catalog.MatchingUseCase
	PlannerUC      *production.PlannerUseCase
	ExecutorUC     *production.ExecutorUseCase
	NeedsUC        *procurement.NeedsUseCase
	ExportUC       *accounting.ExportUseCase
	TraceabilityUC *reporting.TraceabilityUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock (protegido): libro de movimientos, disponible, FEFO, alertas
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.AllocatorUC, deps.AlertsUC)
	stockGroup.Post("/receptions", stockHandler.RegisterReception)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Get("/available", stockHandler.Available)
	stockGroup.Post("/allocate", stockHandler.Allocate)
	stockGroup.Get("/alerts/low-stock", stockHandler.LowStock)

	// Catálogo (protegido): costos, disponibilidad de menús, matching
	catalogGroup := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CostUC, deps.AvailabilityUC, deps.MatchingUC)
	catalogGroup.Get("/recipes/:id/cost", catalogHandler.RecipeCost)
	catalogGroup.Get("/menus/:id/margin", catalogHandler.MenuMargin)
	catalogGroup.Get("/menus/:id/availability", catalogHandler.MenuAvailability)
	catalogGroup.Post("/ingredients/match", catalogHandler.MatchLabels)

	// Producción (protegido; ejecutar requiere cocina o admin)
	productionGroup := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.PlannerUC, deps.ExecutorUC)
	productionGroup.Post("/plans", productionHandler.CreatePlan)
	productionGroup.Get("/plans/:id", productionHandler.GetPlan)
	productionGroup.Post("/lots", RequireRole(entity.RoleKitchen, entity.RoleAdmin), productionHandler.CreateLot)
	productionGroup.Post("/lots/:id/execute", RequireRole(entity.RoleKitchen, entity.RoleAdmin), productionHandler.ExecuteLot)

	// Aprovisionamiento (protegido)
	procurementGroup := protected.Group("/procurement")
	procurementHandler := NewProcurementHandler(deps.NeedsUC)
	procurementGroup.Get("/needs", procurementHandler.NetNeeds)
	procurementGroup.Post("/orders/draft", procurementHandler.GenerateDraftOrder)

	// Contabilidad y trazabilidad (solo admin)
	accountingGroup := protected.Group("/accounting", RequireRole(entity.RoleAdmin))
	accountingHandler := NewAccountingHandler(deps.ExportUC, deps.TraceabilityUC)
	accountingGroup.Post("/journals", accountingHandler.GenerateJournal)
	accountingGroup.Get("/journals/:id/xml", accountingHandler.ExportJournalXML)
	accountingGroup.Get("/traceability/:id", accountingHandler.TraceabilityReport)
	accountingGroup.Get("/traceability/:id/pdf", accountingHandler.TraceabilityPDF)
}
