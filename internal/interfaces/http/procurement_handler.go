package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/application/procurement"
)

// ProcurementHandler expone las necesidades netas y la generación de órdenes
// de compra en borrador.
type ProcurementHandler struct {
	needs *procurement.NeedsUseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(needs *procurement.NeedsUseCase) *ProcurementHandler {
	return &ProcurementHandler{needs: needs}
}

func parseDateRange(c *fiber.Ctx) (from, to time.Time, ok bool) {
	var err error
	from, err = time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// NetNeeds devuelve (BOM × cantidades planificadas) − stock disponible sobre
// el horizonte, solo las necesidades positivas.
func (h *ProcurementHandler) NetNeeds(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben ser fechas YYYY-MM-DD"})
	}
	needsList, err := h.needs.NetNeeds(c.Context(), c.Query("store_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(needsList), "needs": needsList})
}

// GenerateDraftOrder agrupa las necesidades netas del horizonte en una orden
// de compra DRAFT. 204 si no hay necesidades.
func (h *ProcurementHandler) GenerateDraftOrder(c *fiber.Ctx) error {
	from, to, ok := parseDateRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben ser fechas YYYY-MM-DD"})
	}
	order, err := h.needs.GenerateDraftOrder(c.Context(), c.Query("store_id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
