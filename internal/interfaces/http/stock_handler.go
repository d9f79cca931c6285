package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/application/stock"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	domstock "github.com/tu-usuario/catering-pro/internal/domain/stock"
)

// StockHandler maneja las operaciones del libro de movimientos (protegido).
type StockHandler struct {
	ledger    *stock.LedgerUseCase
	allocator *stock.AllocatorUseCase
	alerts    *stock.AlertsUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, allocator *stock.AllocatorUseCase, alerts *stock.AlertsUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, allocator: allocator, alerts: alerts}
}

// RegisterReception registra una recepción: lote por clave natural + movimiento RECEPTION.
func (h *StockHandler) RegisterReception(c *fiber.Ctx) error {
	var in dto.RegisterReceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lotID, movementID, err := h.ledger.RegisterReception(c.Context(), stock.ReceptionInput{
		StoreID:      in.StoreID,
		IngredientID: in.IngredientID,
		SupplierID:   in.SupplierID,
		LotCode:      in.LotCode,
		ExpiryDate:   in.ExpiryDate,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		ExternalRef:  in.ExternalRef,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"lot_id": lotID, "movement_id": movementID})
}

// RegisterMovement registra mermas, ajustes y traslados según el tipo del cuerpo.
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := stock.MovementInput{
		StoreID:      in.StoreID,
		ToStoreID:    in.ToStoreID,
		IngredientID: in.IngredientID,
		LotID:        in.LotID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		ExternalRef:  in.ExternalRef,
		Comment:      in.Comment,
		UserID:       GetUserID(c),
	}
	switch in.Type {
	case entity.MovementTypeLoss:
		movementID, err := h.ledger.RegisterLoss(c.Context(), input)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
	case entity.MovementTypeAdjustment:
		movementID, err := h.ledger.RegisterAdjustment(c.Context(), input)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movement_id": movementID})
	case entity.MovementTypeTransfer:
		if err := h.ledger.RegisterTransfer(c.Context(), input); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser LOSS, ADJUSTMENT o TRANSFER"})
	}
}

// Available devuelve el disponible derivado de (tienda, ingrediente[, lote]).
func (h *StockHandler) Available(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	ingredientID := c.Query("ingredient_id")
	lotID := c.Query("lot_id")
	available, err := h.ledger.Available(c.Context(), storeID, ingredientID, lotID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailableResponse{
		StoreID:      storeID,
		IngredientID: ingredientID,
		LotID:        lotID,
		Available:    available,
	})
}

// Allocate propone lotes FEFO para una demanda, sin escribir movimientos.
func (h *StockHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	allocations, err := h.allocator.Allocate(c.Context(), in.StoreID, domstock.Demand{
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, dto.AllocationDTO{
			LotID:      a.LotID,
			Quantity:   a.Quantity,
			Unit:       a.Unit,
			ExpiryDate: a.ExpiryDate,
		})
	}
	return c.JSON(fiber.Map{"allocations": out})
}

// Movements lista el histórico de un ingrediente (auditoría paginada).
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	ingredientID := c.Query("ingredient_id")
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		to = &t
	}
	movements, err := h.ledger.Movements(c.Context(), storeID, ingredientID, from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:          m.ID,
			Type:        m.Type,
			StoreID:     m.StoreID,
			LotID:       m.LotID,
			Quantity:    m.Quantity,
			Unit:        m.Unit,
			Timestamp:   m.Timestamp,
			ExternalRef: m.ExternalRef,
			Comment:     m.Comment,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// LowStock devuelve los ingredientes bajo el umbral con cantidad sugerida.
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	alertsList, err := h.alerts.LowStock(c.Context(), storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alertsList), "alerts": alertsList})
}
