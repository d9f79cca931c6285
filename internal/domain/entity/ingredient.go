package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un ingrediente base usado en las recetas (datos de referencia).
// UnitCost es el costo por unidad de medida (ej: €/kg). El motor de stock lo lee, nunca lo escribe.
type Ingredient struct {
	ID        string
	Name      string
	Unit      string // unidad de medida de referencia (kg, g, l, piece)
	UnitCost  decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IngredientAlias asocia un libellé externo (catálogo de proveedor) a un ingrediente interno.
type IngredientAlias struct {
	ID           string
	IngredientID string
	Label        string // libellé original del proveedor
	CreatedAt    time.Time
}
