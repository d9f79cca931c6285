package entity

import "time"

// Tipos de tienda.
const (
	StoreTypeProduction = "PRODUCTION" // sitio de producción central
	StoreTypeSales      = "SALES"      // punto de venta
)

// Store representa un sitio físico (central de producción o punto de venta).
type Store struct {
	ID        string
	Name      string
	Type      string // ver constantes StoreType*
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
