package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
	domstock "github.com/tu-usuario/catering-pro/internal/domain/stock"
)

// ExecutorUseCase ejecuta un lote de producción: consume los ingredientes de la
// BOM en orden FEFO, escribe los movimientos CONSUMPTION y las líneas de consumo,
// y aplica la transición DRAFT -> EXECUTED. Todo dentro de una transacción.
type ExecutorUseCase struct {
	recipeRepo repository.RecipeRepository
	txRunner   TxRunner
}

// NewExecutorUseCase construye el caso de uso.
func NewExecutorUseCase(recipeRepo repository.RecipeRepository, txRunner TxRunner) *ExecutorUseCase {
	return &ExecutorUseCase{recipeRepo: recipeRepo, txRunner: txRunner}
}

// CreateLot crea un lote de producción (DRAFT) sobre una línea de plan o fuera
// de plan (planLineID vacío).
func (uc *ExecutorUseCase) CreateLot(
	ctx context.Context,
	storeID, planLineID, recipeID string,
	quantity decimal.Decimal,
	unit string,
) (*entity.ProductionLot, error) {
	if storeID == "" || recipeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}

	lot := &entity.ProductionLot{
		ID:         uuid.New().String(),
		StoreID:    storeID,
		PlanLineID: planLineID,
		RecipeID:   recipeID,
		Quantity:   quantity,
		Unit:       unit,
		Status:     entity.ProductionLotStatusDraft,
		CreatedAt:  time.Now().UTC(),
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		_ repository.LotRepository,
		prodLotRepo repository.ProductionLotRepository,
		_ repository.ConsumptionRepository,
		planRepo repository.PlanRepository,
	) error {
		if planLineID != "" {
			line, err := planRepo.GetLineByID(planLineID)
			if err != nil {
				return err
			}
			if line == nil {
				return domain.ErrNotFound
			}
		}
		return prodLotRepo.Create(lot)
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// Execute ejecuta el lote de producción identificado.
//
// Garantías:
//   - Idempotencia negativa: un lote EXECUTED devuelve ErrProductionAlreadyExecuted
//     sin escribir nada.
//   - Todo o nada: si algún ingrediente de la BOM no alcanza, ningún movimiento
//     ni línea de consumo se persiste y el error nombra al primer ingrediente
//     insuficiente.
//   - Tras la primera ejecución de un lote atado a plan, el plan pasa a LOCKED.
//
// Se trabaja en dos fases dentro de la transacción: primero se asigna TODA la
// BOM sin escribir (fase de solo lectura), después se persisten movimientos,
// líneas de consumo y transición. Así el fracaso parcial no deja rastro.
func (uc *ExecutorUseCase) Execute(ctx context.Context, productionLotID string) (*dto.ExecuteProductionResponse, error) {
	if productionLotID == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.ExecuteProductionResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		lotRepo repository.LotRepository,
		prodLotRepo repository.ProductionLotRepository,
		consRepo repository.ConsumptionRepository,
		planRepo repository.PlanRepository,
	) error {
		prodLot, err := prodLotRepo.GetForUpdate(productionLotID)
		if err != nil {
			return err
		}
		if prodLot == nil {
			return domain.ErrNotFound
		}
		if prodLot.Status == entity.ProductionLotStatusExecuted {
			return domain.ErrProductionAlreadyExecuted
		}
		// Cinturón y tirantes: si hubo una ejecución parcial histórica
		// (no debería poder pasar con transacciones), rechazar igualmente.
		already, err := consRepo.CountByProductionLot(productionLotID)
		if err != nil {
			return err
		}
		if already > 0 {
			return domain.ErrProductionAlreadyExecuted
		}

		bom, err := uc.recipeRepo.GetLines(prodLot.RecipeID)
		if err != nil {
			return err
		}
		if len(bom) == 0 {
			return domain.ErrEmptyBOM
		}

		// Fase 1: asignar toda la BOM sin escribir nada.
		type lineAllocation struct {
			line        *entity.RecipeLine
			allocations []domstock.Allocation
		}
		planned := make([]lineAllocation, 0, len(bom))
		for _, line := range bom {
			demand := domstock.Demand{
				IngredientID: line.IngredientID,
				Quantity:     line.Quantity.Mul(prodLot.Quantity),
				Unit:         line.Unit,
			}
			balances, err := loadBalances(movRepo, lotRepo, prodLot.StoreID, line.IngredientID)
			if err != nil {
				return err
			}
			allocations, err := domstock.Allocate(balances, demand)
			if err != nil {
				return fmt.Errorf("ingrediente %s: %w", line.IngredientID, err)
			}
			planned = append(planned, lineAllocation{line: line, allocations: allocations})
		}

		// Fase 2: persistir movimientos, líneas de consumo y transición.
		now := time.Now().UTC()
		allocationDTOs := make([]dto.AllocationDTO, 0)
		movements := 0
		consumptions := 0
		for _, pa := range planned {
			for _, alloc := range pa.allocations {
				movID, err := movRepo.Append(&entity.StockMovement{
					ID:           uuid.New().String(),
					Type:         entity.MovementTypeConsumption,
					StoreID:      prodLot.StoreID,
					IngredientID: pa.line.IngredientID,
					LotID:        alloc.LotID,
					Quantity:     alloc.Quantity.Neg(),
					Unit:         alloc.Unit,
					Timestamp:    now,
					ExternalRef:  prodLot.ID,
					CreatedAt:    now,
				})
				if err != nil {
					return err
				}
				if err := consRepo.Create(&entity.ConsumptionLine{
					ID:              uuid.New().String(),
					ProductionLotID: prodLot.ID,
					IngredientID:    pa.line.IngredientID,
					LotID:           alloc.LotID,
					MovementID:      movID,
					Quantity:        alloc.Quantity,
					Unit:            alloc.Unit,
					CreatedAt:       now,
				}); err != nil {
					return err
				}
				allocationDTOs = append(allocationDTOs, dto.AllocationDTO{
					LotID:      alloc.LotID,
					Quantity:   alloc.Quantity,
					Unit:       alloc.Unit,
					ExpiryDate: alloc.ExpiryDate,
				})
				movements++
				consumptions++
			}
		}

		if err := prodLot.MarkExecuted(now); err != nil {
			return err
		}
		if err := prodLotRepo.MarkExecuted(prodLot.ID, now); err != nil {
			return err
		}
		if err := lockPlan(planRepo, prodLot.PlanLineID); err != nil {
			return err
		}

		resp = &dto.ExecuteProductionResponse{
			ProductionLotID:  prodLot.ID,
			ConsumptionLines: consumptions,
			StockMovements:   movements,
			Allocations:      allocationDTOs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// loadBalances reconstruye la foto (lote, disponible) sobre los repos atados a
// la transacción, derivando cada saldo de la suma de movimientos firmados.
// La lectura de lotes bloquea las filas (FOR UPDATE): dos ejecuciones
// concurrentes sobre el mismo ingrediente se serializan aquí y la segunda ve
// los consumos de la primera ya confirmados.
func loadBalances(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
	storeID, ingredientID string,
) ([]domstock.LotBalance, error) {
	lots, err := lotRepo.ListByIngredientForUpdate(storeID, ingredientID)
	if err != nil {
		return nil, err
	}
	byLot, err := movRepo.AvailableByLot(storeID, ingredientID)
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

// lockPlan pasa el plan asociado (si lo hay) a LOCKED tras la primera ejecución.
func lockPlan(planRepo repository.PlanRepository, planLineID string) error {
	if planLineID == "" {
		return nil
	}
	line, err := planRepo.GetLineByID(planLineID)
	if err != nil {
		return err
	}
	if line == nil {
		return nil
	}
	plan, err := planRepo.GetByID(line.PlanID)
	if err != nil {
		return err
	}
	if plan == nil || plan.Status != entity.PlanStatusDraft {
		return nil
	}
	return planRepo.UpdateStatus(plan.ID, entity.PlanStatusLocked)
}
