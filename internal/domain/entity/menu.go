package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu representa un producto vendible, local a una tienda.
// El menú porta el precio y la disponibilidad comercial; referencia una Recipe global.
type Menu struct {
	ID          string
	StoreID     string
	RecipeID    string // vacío = menú sin receta (error estructural para costos/disponibilidad)
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Orderable   bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sale registra una venta histórica de un menú (insumo del planificador).
type Sale struct {
	ID       string
	StoreID  string
	MenuID   string
	Quantity decimal.Decimal
	SoldAt   time.Time
}
