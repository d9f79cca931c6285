package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra a proveedor.
// Regla: el stock solo se impacta en las recepciones, nunca al crear/enviar la orden.
const (
	PurchaseOrderStatusDraft    = "DRAFT"
	PurchaseOrderStatusSent     = "SENT"
	PurchaseOrderStatusPartial  = "PARTIAL"
	PurchaseOrderStatusReceived = "RECEIVED"
)

// PurchaseOrder es una orden de compra generada desde las necesidades netas de producción.
type PurchaseOrder struct {
	ID         string
	StoreID    string
	SupplierID string
	Status     string
	TargetDate time.Time
	Reference  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine es una línea de la orden (necesidad neta de un ingrediente).
type PurchaseOrderLine struct {
	ID           string
	OrderID      string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}
