package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterReceptionRequest cuerpo para registrar una recepción de mercancía.
type RegisterReceptionRequest struct {
	StoreID      string          `json:"store_id"`
	IngredientID string          `json:"ingredient_id"`
	SupplierID   string          `json:"supplier_id"`
	LotCode      string          `json:"lot_code"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ExternalRef  string          `json:"external_ref"`
}

// RegisterMovementRequest cuerpo para mermas, ajustes y traslados.
type RegisterMovementRequest struct {
	Type         string          `json:"type"` // LOSS | ADJUSTMENT | TRANSFER
	StoreID      string          `json:"store_id"`
	ToStoreID    string          `json:"to_store_id"`
	IngredientID string          `json:"ingredient_id"`
	LotID        string          `json:"lot_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ExternalRef  string          `json:"external_ref"`
	Comment      string          `json:"comment"`
}

// AllocateRequest cuerpo para una asignación FEFO.
type AllocateRequest struct {
	StoreID      string          `json:"store_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// AllocationDTO una línea (lote, cantidad) del resultado FEFO.
type AllocationDTO struct {
	LotID      string          `json:"lot_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// AvailableResponse disponible derivado del libro.
type AvailableResponse struct {
	StoreID      string          `json:"store_id"`
	IngredientID string          `json:"ingredient_id"`
	LotID        string          `json:"lot_id,omitempty"`
	Available    decimal.Decimal `json:"available"`
	Unit         string          `json:"unit,omitempty"`
}

// LowStockAlertDTO ingrediente bajo el umbral con cantidad sugerida.
type LowStockAlertDTO struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Available      decimal.Decimal `json:"available"`
	Threshold      decimal.Decimal `json:"threshold"`
	SuggestedOrder decimal.Decimal `json:"suggested_order"`
}

// MovementDTO un apunte del libro tal como se expone en la auditoría.
type MovementDTO struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	StoreID     string          `json:"store_id"`
	LotID       string          `json:"lot_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Timestamp   time.Time       `json:"timestamp"`
	ExternalRef string          `json:"external_ref,omitempty"`
	Comment     string          `json:"comment,omitempty"`
}
