package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Motor de producción.
	ErrPlanAlreadyExists         = errors.New("ya existe un plan de producción para esa tienda y fecha")
	ErrProductionAlreadyExecuted = errors.New("el lote de producción ya fue ejecutado")

	// Errores estructurales del catálogo: indican mala configuración,
	// no escasez de stock, y por eso nunca se convierten en `false`.
	ErrMenuWithoutRecipe = errors.New("el menú no tiene receta asociada")
	ErrEmptyBOM          = errors.New("la receta no contiene líneas (BOM vacía)")

	// Auth.
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
