package repository

import "github.com/tu-usuario/catering-pro/internal/domain/entity"

// LotRepository es el puerto de persistencia de lotes de trazabilidad.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)

	// ListByIngredient devuelve los lotes de (tienda, ingrediente) ordenados por
	// fecha de creación ascendente (insumo del orden FEFO determinista).
	ListByIngredient(storeID, ingredientID string) ([]*entity.Lot, error)

	// ListByIngredientForUpdate es ListByIngredient bloqueando las filas hasta el
	// fin de la transacción. Toda salida de stock DEBE leer los lotes por aquí:
	// serializa a los escritores concurrentes de (tienda, ingrediente) para que
	// dos transacciones no consuman el mismo saldo dos veces.
	ListByIngredientForUpdate(storeID, ingredientID string) ([]*entity.Lot, error)

	// FindByNaturalKey localiza un lote por su clave natural
	// (tienda, ingrediente, proveedor, código de lote). nil si no existe.
	FindByNaturalKey(storeID, ingredientID, supplierID, lotCode string) (*entity.Lot, error)
}
