package dto

import "github.com/shopspring/decimal"

// NetNeedDTO necesidad neta de un ingrediente (bruto del plan menos disponible).
type NetNeedDTO struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// PurchaseOrderResponse orden de compra generada en borrador.
type PurchaseOrderResponse struct {
	OrderID    string       `json:"order_id"`
	SupplierID string       `json:"supplier_id"`
	Status     string       `json:"status"`
	Needs      []NetNeedDTO `json:"needs"`
}
