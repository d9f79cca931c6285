package entity

import "time"

// Lot representa un lote de trazabilidad de un ingrediente, creado en la recepción.
//
// IMPORTANTE:
// - Un lote NUNCA almacena una cantidad calculada.
// - La cantidad disponible se obtiene sumando los movimientos asociados.
//
// Único por (tienda, ingrediente, proveedor, código de lote).
type Lot struct {
	ID           string
	StoreID      string
	IngredientID string
	SupplierID   string     // vacío si se desconoce el proveedor
	LotCode      string     // código de lote del proveedor, vacío si no disponible
	ExpiryDate   *time.Time // fecha límite de consumo; nil = sin caducidad (FEFO lo ordena al final)
	Unit         string
	CreatedAt    time.Time
}
