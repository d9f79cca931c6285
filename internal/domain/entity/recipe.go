package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe representa una receta global (métier), reutilizable por varios menús y tiendas.
type Recipe struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeLine es una línea de composición de una receta (BOM).
// Única por (receta, ingrediente).
type RecipeLine struct {
	ID           string
	RecipeID     string
	IngredientID string
	Quantity     decimal.Decimal // cantidad necesaria por unidad producida
	Unit         string
}
