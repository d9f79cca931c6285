package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeReception   = "RECEPTION"   // entrada por recepción de mercancía
	MovementTypeConsumption = "CONSUMPTION" // salida por producción
	MovementTypeAdjustment  = "ADJUSTMENT"  // ajuste de inventario (signo según corrección)
	MovementTypeLoss        = "LOSS"        // merma / pérdida
	MovementTypeTransfer    = "TRANSFER"    // traslado entre tiendas (par salida/entrada)
)

// StockMovement representa un movimiento de stock inmutable.
//
// REGLA DE ORO:
// - NINGUNA modificación de stock sin StockMovement.
// - Los movimientos son inmutables: jamás se actualizan ni se borran.
// - Quantity es la cantidad FIRMADA (positiva entra, negativa sale);
//   el disponible es siempre la suma de cantidades firmadas.
type StockMovement struct {
	ID           string
	Type         string
	StoreID      string
	IngredientID string
	LotID        string // vacío si el movimiento no está atado a un lote (obligatorio en consumos FEFO)
	Quantity     decimal.Decimal
	Unit         string
	Timestamp    time.Time
	ExternalRef  string // referencia externa (lote de producción, pedido, merma...)
	Comment      string
	CreatedAt    time.Time
	CreatedBy    string // UserID, vacío para procesos internos
}
