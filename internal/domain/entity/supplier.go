package entity

import "time"

// Supplier representa un proveedor de ingredientes.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
