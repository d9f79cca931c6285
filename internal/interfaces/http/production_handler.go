package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/application/production"
)

// ProductionHandler expone la planificación y la ejecución de producción.
type ProductionHandler struct {
	planner  *production.PlannerUseCase
	executor *production.ExecutorUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(planner *production.PlannerUseCase, executor *production.ExecutorUseCase) *ProductionHandler {
	return &ProductionHandler{planner: planner, executor: executor}
}

// CreatePlan genera el plan DRAFT de (tienda, fecha) a partir del histórico y
// los modificadores exógenos del cuerpo.
func (h *ProductionHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.planner.Plan(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPlan devuelve un plan y sus líneas.
func (h *ProductionHandler) GetPlan(c *fiber.Ctx) error {
	out, err := h.planner.GetPlan(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateLot abre un lote de producción DRAFT sobre una línea de plan.
func (h *ProductionHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.executor.CreateLot(c.Context(), in.StoreID, in.PlanLineID, in.RecipeID, in.Quantity, in.Unit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"production_lot_id": lot.ID,
		"status":            lot.Status,
	})
}

// ExecuteLot ejecuta un lote: asignación FEFO del BOM completo, movimientos
// CONSUMPTION y transición DRAFT -> EXECUTED en una sola transacción.
func (h *ProductionHandler) ExecuteLot(c *fiber.Ctx) error {
	out, err := h.executor.Execute(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
