package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// MovementRepository implementación en memoria del libro de movimientos.
// Append-only de verdad: el slice interno solo crece.
type MovementRepository struct {
	mu        sync.RWMutex
	movements []entity.StockMovement
}

// NewMovementRepository construye el repositorio en memoria.
func NewMovementRepository() *MovementRepository {
	return &MovementRepository{}
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

// Append persiste un movimiento inmutable y devuelve su ID.
func (r *MovementRepository) Append(movement *entity.StockMovement) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := *movement
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.movements = append(r.movements, m)
	return m.ID, nil
}

// SumAvailable suma las cantidades firmadas de (tienda, ingrediente).
func (r *MovementRepository) SumAvailable(storeID, ingredientID string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for i := range r.movements {
		m := &r.movements[i]
		if m.StoreID == storeID && m.IngredientID == ingredientID {
			total = total.Add(m.Quantity)
		}
	}
	return total, nil
}

// SumAvailableForLot suma las cantidades firmadas de un lote concreto.
func (r *MovementRepository) SumAvailableForLot(storeID, ingredientID, lotID string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for i := range r.movements {
		m := &r.movements[i]
		if m.StoreID == storeID && m.IngredientID == ingredientID && m.LotID == lotID {
			total = total.Add(m.Quantity)
		}
	}
	return total, nil
}

// AvailableByLot devuelve el saldo firmado por lote de (tienda, ingrediente).
func (r *MovementRepository) AvailableByLot(storeID, ingredientID string) (map[string]decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byLot := make(map[string]decimal.Decimal)
	for i := range r.movements {
		m := &r.movements[i]
		if m.StoreID == storeID && m.IngredientID == ingredientID && m.LotID != "" {
			byLot[m.LotID] = byLot[m.LotID].Add(m.Quantity)
		}
	}
	return byLot, nil
}

// ListByIngredient lista movimientos filtrados, más recientes primero.
func (r *MovementRepository) ListByIngredient(storeID, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*entity.StockMovement, 0)
	for i := range r.movements {
		m := r.movements[i]
		if m.StoreID != storeID || m.IngredientID != ingredientID {
			continue
		}
		if from != nil && m.Timestamp.Before(*from) {
			continue
		}
		if to != nil && m.Timestamp.After(*to) {
			continue
		}
		matched = append(matched, &m)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	if offset >= len(matched) {
		return []*entity.StockMovement{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// CountAll cuenta los movimientos del libro.
func (r *MovementRepository) CountAll() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.movements), nil
}
