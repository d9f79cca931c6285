package procurement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// NeedsUseCase calcula necesidades netas de aprovisionamiento y genera una
// orden de compra en borrador.
//
// Necesidad neta = Σ (BOM x cantidad planificada) sobre el horizonte
//                - disponible actual (suma de movimientos firmados).
//
// Crear la orden NO impacta el stock: solo las recepciones escriben movimientos.
type NeedsUseCase struct {
	storeRepo    repository.StoreRepository
	supplierRepo repository.SupplierRepository
	planRepo     repository.PlanRepository
	recipeRepo   repository.RecipeRepository
	movRepo      repository.MovementRepository
	orderRepo    repository.PurchaseOrderRepository
}

// NewNeedsUseCase construye el caso de uso.
func NewNeedsUseCase(
	storeRepo repository.StoreRepository,
	supplierRepo repository.SupplierRepository,
	planRepo repository.PlanRepository,
	recipeRepo repository.RecipeRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.PurchaseOrderRepository,
) *NeedsUseCase {
	return &NeedsUseCase{
		storeRepo:    storeRepo,
		supplierRepo: supplierRepo,
		planRepo:     planRepo,
		recipeRepo:   recipeRepo,
		movRepo:      movRepo,
		orderRepo:    orderRepo,
	}
}

// NetNeeds calcula las necesidades netas de la tienda sobre el horizonte
// inclusivo [from, to]. Solo devuelve necesidades positivas, en orden estable
// por ingrediente.
func (uc *NeedsUseCase) NetNeeds(ctx context.Context, storeID string, from, to time.Time) ([]dto.NetNeedDTO, error) {
	if storeID == "" || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	gross, units, err := uc.grossNeeds(storeID, from, to)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(gross))
	for id := range gross {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	needs := make([]dto.NetNeedDTO, 0, len(ids))
	for _, ingredientID := range ids {
		available, err := uc.movRepo.SumAvailable(storeID, ingredientID)
		if err != nil {
			return nil, err
		}
		net := gross[ingredientID].Sub(available)
		if !net.GreaterThan(decimal.Zero) {
			continue
		}
		needs = append(needs, dto.NetNeedDTO{
			IngredientID: ingredientID,
			Quantity:     net,
			Unit:         units[ingredientID],
		})
	}
	return needs, nil
}

// GenerateDraftOrder genera una orden de compra DRAFT con las necesidades netas
// del horizonte. Sin necesidades, no crea orden y devuelve nil.
//
// Elección de proveedor determinista: el primer proveedor activo por nombre.
// El referencial no modela proveedor preferente por ingrediente todavía.
func (uc *NeedsUseCase) GenerateDraftOrder(ctx context.Context, storeID string, from, to time.Time) (*dto.PurchaseOrderResponse, error) {
	needs, err := uc.NetNeeds(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}
	if len(needs) == 0 {
		return nil, nil
	}

	suppliers, err := uc.supplierRepo.ListActive()
	if err != nil {
		return nil, err
	}
	if len(suppliers) == 0 {
		return nil, fmt.Errorf("sin proveedor activo para la orden: %w", domain.ErrConflict)
	}
	supplier := suppliers[0]

	now := time.Now().UTC()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		SupplierID: supplier.ID,
		Status:     entity.PurchaseOrderStatusDraft,
		TargetDate: from,
		Reference:  fmt.Sprintf("PO-%s-%s", from.Format("20060102"), storeID),
		CreatedAt:  now,
	}
	lines := make([]*entity.PurchaseOrderLine, 0, len(needs))
	for _, need := range needs {
		lines = append(lines, &entity.PurchaseOrderLine{
			ID:           uuid.New().String(),
			OrderID:      order.ID,
			IngredientID: need.IngredientID,
			Quantity:     need.Quantity,
			Unit:         need.Unit,
		})
	}
	if err := uc.orderRepo.Create(order, lines); err != nil {
		return nil, err
	}
	return &dto.PurchaseOrderResponse{
		OrderID:    order.ID,
		SupplierID: supplier.ID,
		Status:     order.Status,
		Needs:      needs,
	}, nil
}

func (uc *NeedsUseCase) grossNeeds(storeID string, from, to time.Time) (map[string]decimal.Decimal, map[string]string, error) {
	plans, err := uc.planRepo.ListBetween(storeID, from, to)
	if err != nil {
		return nil, nil, err
	}
	gross := make(map[string]decimal.Decimal)
	units := make(map[string]string)
	for _, plan := range plans {
		lines, err := uc.planRepo.GetLines(plan.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, line := range lines {
			bom, err := uc.recipeRepo.GetLines(line.RecipeID)
			if err != nil {
				return nil, nil, err
			}
			for _, bl := range bom {
				gross[bl.IngredientID] = gross[bl.IngredientID].Add(bl.Quantity.Mul(line.Quantity))
				units[bl.IngredientID] = bl.Unit
			}
		}
	}
	return gross, units, nil
}
