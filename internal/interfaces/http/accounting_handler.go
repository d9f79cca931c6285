package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catering-pro/internal/application/accounting"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/application/reporting"
)

// AccountingHandler expone la proyección contable y los informes de
// trazabilidad (solo rol admin en el router).
type AccountingHandler struct {
	export       *accounting.ExportUseCase
	traceability *reporting.TraceabilityUseCase
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(export *accounting.ExportUseCase, traceability *reporting.TraceabilityUseCase) *AccountingHandler {
	return &AccountingHandler{export: export, traceability: traceability}
}

// GenerateJournal proyecta las ventas y compras del período en asientos
// exportables. Idempotente por período: el segundo intento devuelve 409.
func (h *AccountingHandler) GenerateJournal(c *fiber.Ctx) error {
	var in dto.GenerateJournalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.export.GenerateJournal(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExportJournalXML devuelve el diario como documento XML descargable.
func (h *AccountingHandler) ExportJournalXML(c *fiber.Ctx) error {
	journalID := c.Params("id")
	payload, err := h.export.ExportXML(c.Context(), journalID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="journal-%s.xml"`, journalID))
	return c.Send(payload)
}

// TraceabilityReport devuelve el informe de trazabilidad de un lote ejecutado.
func (h *AccountingHandler) TraceabilityReport(c *fiber.Ctx) error {
	out, err := h.traceability.Report(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TraceabilityPDF devuelve el informe HACCP en PDF.
func (h *AccountingHandler) TraceabilityPDF(c *fiber.Ctx) error {
	lotID := c.Params("id")
	payload, err := h.traceability.PDF(c.Context(), lotID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="trazabilidad-%s.pdf"`, lotID))
	return c.Send(payload)
}
