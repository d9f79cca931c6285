package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/catalog"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
)

// CatalogHandler expone costos, disponibilidad de menús y matching de libellés.
type CatalogHandler struct {
	costs        *catalog.CostUseCase
	availability *catalog.AvailabilityUseCase
	matching     *catalog.MatchingUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(costs *catalog.CostUseCase, availability *catalog.AvailabilityUseCase, matching *catalog.MatchingUseCase) *CatalogHandler {
	return &CatalogHandler{costs: costs, availability: availability, matching: matching}
}

// RecipeCost devuelve el costo estándar de una receta (suma de su BOM).
func (h *CatalogHandler) RecipeCost(c *fiber.Ctx) error {
	cost, err := h.costs.RecipeCost(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recipe_id": c.Params("id"), "cost": cost})
}

// MenuMargin devuelve costo, precio, margen y tasa de margen de un menú.
func (h *CatalogHandler) MenuMargin(c *fiber.Ctx) error {
	out, err := h.costs.MenuMargin(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MenuAvailability simula la asignación FEFO del BOM completo sin escribir nada.
func (h *CatalogHandler) MenuAvailability(c *fiber.Ctx) error {
	menuID := c.Params("id")
	quantity := decimal.NewFromInt(1)
	if raw := c.Query("quantity"); raw != "" {
		q, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser numérico"})
		}
		quantity = q
	}
	available, err := h.availability.IsMenuAvailable(c.Context(), menuID, quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{MenuID: menuID, Quantity: quantity, Available: available})
}

// MatchLabels resuelve libellés externos (catálogos de proveedor) contra el
// referencial de ingredientes.
func (h *CatalogHandler) MatchLabels(c *fiber.Ctx) error {
	var in dto.MatchLabelsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	matches, err := h.matching.MatchLabels(c.Context(), in.Labels)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}
