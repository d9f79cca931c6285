package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// MovementRepository es el puerto del libro de movimientos (append-only).
//
// Contrato: Append es la ÚNICA escritura. No existe update ni delete en
// ninguna implementación; el disponible se deriva sumando cantidades firmadas.
type MovementRepository interface {
	// Append persiste un movimiento inmutable y devuelve su ID.
	Append(movement *entity.StockMovement) (string, error)

	// SumAvailable suma las cantidades firmadas de (tienda, ingrediente).
	SumAvailable(storeID, ingredientID string) (decimal.Decimal, error)

	// SumAvailableForLot suma las cantidades firmadas de un lote concreto.
	SumAvailableForLot(storeID, ingredientID, lotID string) (decimal.Decimal, error)

	// AvailableByLot devuelve el saldo firmado por lote de (tienda, ingrediente).
	// Solo considera movimientos atados a un lote.
	AvailableByLot(storeID, ingredientID string) (map[string]decimal.Decimal, error)

	// ListByIngredient lista movimientos para auditoría (más recientes primero).
	ListByIngredient(storeID, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)

	// CountAll cuenta los movimientos del libro (soporte de tests de inmutabilidad).
	CountAll() (int, error)
}
