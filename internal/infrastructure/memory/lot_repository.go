package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// LotRepository implementación en memoria de lotes de trazabilidad.
type LotRepository struct {
	mu   sync.RWMutex
	lots []entity.Lot
}

// NewLotRepository construye el repositorio en memoria.
func NewLotRepository() *LotRepository {
	return &LotRepository{}
}

var _ repository.LotRepository = (*LotRepository)(nil)

// Create persiste el lote. Respeta la clave natural única
// (tienda, ingrediente, proveedor, código de lote).
func (r *LotRepository) Create(lot *entity.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lots {
		l := &r.lots[i]
		if l.StoreID == lot.StoreID && l.IngredientID == lot.IngredientID &&
			l.SupplierID == lot.SupplierID && l.LotCode == lot.LotCode {
			return domain.ErrDuplicate
		}
	}
	r.lots = append(r.lots, *lot)
	return nil
}

// GetByID devuelve el lote o nil.
func (r *LotRepository) GetByID(id string) (*entity.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.lots {
		if r.lots[i].ID == id {
			l := r.lots[i]
			return &l, nil
		}
	}
	return nil, nil
}

// ListByIngredient devuelve los lotes ordenados por fecha de creación ascendente.
func (r *LotRepository) ListByIngredient(storeID, ingredientID string) ([]*entity.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*entity.Lot, 0)
	for i := range r.lots {
		if r.lots[i].StoreID == storeID && r.lots[i].IngredientID == ingredientID {
			l := r.lots[i]
			matched = append(matched, &l)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

// ListByIngredientForUpdate en memoria no necesita bloquear filas: el runner
// ejecuta la transacción de forma síncrona. Misma lectura, mismo orden.
func (r *LotRepository) ListByIngredientForUpdate(storeID, ingredientID string) ([]*entity.Lot, error) {
	return r.ListByIngredient(storeID, ingredientID)
}

// FindByNaturalKey localiza un lote por su clave natural. nil si no existe.
func (r *LotRepository) FindByNaturalKey(storeID, ingredientID, supplierID, lotCode string) (*entity.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.lots {
		l := &r.lots[i]
		if l.StoreID == storeID && l.IngredientID == ingredientID &&
			l.SupplierID == supplierID && l.LotCode == lotCode {
			found := *l
			return &found, nil
		}
	}
	return nil, nil
}
