package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
	domstock "github.com/tu-usuario/catering-pro/internal/domain/stock"
)

// AllocatorUseCase expone la asignación FEFO sobre el estado actual del libro.
//
// Esta llamada NO escribe movimientos: devuelve una propuesta ordenada de
// (lote, cantidad) y los callers (ejecutor de producción, verificador de
// disponibilidad) deciden si la persisten.
type AllocatorUseCase struct {
	storeRepo      repository.StoreRepository
	ingredientRepo repository.IngredientRepository
	lotRepo        repository.LotRepository
	movRepo        repository.MovementRepository
}

// NewAllocatorUseCase construye el caso de uso.
func NewAllocatorUseCase(
	storeRepo repository.StoreRepository,
	ingredientRepo repository.IngredientRepository,
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
) *AllocatorUseCase {
	return &AllocatorUseCase{
		storeRepo:      storeRepo,
		ingredientRepo: ingredientRepo,
		lotRepo:        lotRepo,
		movRepo:        movRepo,
	}
}

// Allocate propone lotes para satisfacer la demanda en orden FEFO.
// Todo o nada: si el disponible total no alcanza, ErrInsufficientStock y cero
// efectos secundarios (el libro queda byte a byte igual).
func (uc *AllocatorUseCase) Allocate(
	ctx context.Context,
	storeID string,
	demand domstock.Demand,
) ([]domstock.Allocation, error) {
	if err := demand.Validate(); err != nil {
		return nil, err
	}
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}

	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	ingredient, err := uc.ingredientRepo.GetByID(demand.IngredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, domain.ErrNotFound
	}

	balances, err := uc.LoadBalances(ctx, storeID, demand.IngredientID)
	if err != nil {
		return nil, err
	}
	return domstock.Allocate(balances, demand)
}

// LoadBalances construye la foto (lote, disponible) de un ingrediente en una
// tienda, derivando cada saldo de la suma de movimientos firmados.
func (uc *AllocatorUseCase) LoadBalances(
	_ context.Context,
	storeID, ingredientID string,
) ([]domstock.LotBalance, error) {
	lots, err := uc.lotRepo.ListByIngredient(storeID, ingredientID)
	if err != nil {
		return nil, err
	}
	byLot, err := uc.movRepo.AvailableByLot(storeID, ingredientID)
	if err != nil {
		return nil, err
	}

	balances := make([]domstock.LotBalance, 0, len(lots))
	for _, lot := range lots {
		available, ok := byLot[lot.ID]
		if !ok {
			available = decimal.Zero
		}
		balances = append(balances, domstock.LotBalance{Lot: *lot, Available: available})
	}
	return balances, nil
}
