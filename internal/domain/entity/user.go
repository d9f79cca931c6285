package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleKitchen = "cocina"
	RoleSales   = "ventas"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	Role         string // ver constantes Role*
	StoreID      string // tienda por defecto del usuario, vacío = todas
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
