package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// LotBalance es la foto de un lote con su disponible derivado del libro de movimientos.
// El asignador nunca lee cantidades cacheadas: el caller calcula Available sumando movimientos.
type LotBalance struct {
	Lot       entity.Lot
	Available decimal.Decimal
}

// Allocation es una propuesta de consumo sobre un lote concreto.
// El asignador no escribe movimientos: el caller persiste a partir del resultado.
type Allocation struct {
	LotID      string
	Quantity   decimal.Decimal
	Unit       string
	ExpiryDate *time.Time
}

// Demand es una petición de consumo de un ingrediente.
type Demand struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// Validate verifica que la demanda sea procesable: cantidad > 0, unidad conocida.
func (d Demand) Validate() error {
	if d.IngredientID == "" {
		return domain.ErrInvalidInput
	}
	if !d.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !entity.IsKnownUnit(d.Unit) {
		return domain.ErrInvalidInput
	}
	return nil
}

// SortFEFO ordena los lotes en orden FEFO determinista:
//  1. fecha de caducidad ascendente, lotes sin caducidad al final
//  2. empate: fecha de creación del lote ascendente
//  3. empate: ID del lote ascendente
//
// El mismo estado del libro produce siempre el mismo orden.
func SortFEFO(lots []LotBalance) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i].Lot, lots[j].Lot
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			// ambos sin caducidad: desempatar abajo
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// TotalAvailable suma el disponible positivo de la foto de lotes.
func TotalAvailable(lots []LotBalance) decimal.Decimal {
	total := decimal.Zero
	for _, lb := range lots {
		if lb.Available.GreaterThan(decimal.Zero) {
			total = total.Add(lb.Available)
		}
	}
	return total
}

// Allocate satisface la demanda consumiendo lotes en orden FEFO (greedy).
//
// Garantías:
//   - Σ cantidades asignadas == demanda en caso de éxito.
//   - Ninguna asignación supera el disponible actual de su lote.
//   - Todo o nada: si el disponible total < demanda, devuelve ErrInsufficientStock
//     y ningún resultado parcial.
//   - Orden de resultado determinista y reproducible (ver SortFEFO).
//
// Allocate es puro: no escribe movimientos ni muta la foto de entrada.
func Allocate(lots []LotBalance, demand Demand) ([]Allocation, error) {
	if err := demand.Validate(); err != nil {
		return nil, err
	}

	snapshot := make([]LotBalance, len(lots))
	copy(snapshot, lots)
	SortFEFO(snapshot)

	remaining := demand.Quantity
	allocations := make([]Allocation, 0, len(snapshot))

	for _, lb := range snapshot {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		if !lb.Available.GreaterThan(decimal.Zero) {
			continue
		}
		take := lb.Available
		if take.GreaterThan(remaining) {
			take = remaining
		}
		allocations = append(allocations, Allocation{
			LotID:      lb.Lot.ID,
			Quantity:   take,
			Unit:       demand.Unit,
			ExpiryDate: lb.Lot.ExpiryDate,
		})
		remaining = remaining.Sub(take)
	}

	if remaining.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInsufficientStock
	}
	return allocations, nil
}
