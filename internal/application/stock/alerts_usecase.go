package stock

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// AlertsConfig umbrales explícitos del caso de uso (nunca estado ambiente).
type AlertsConfig struct {
	// LowStockThreshold: disponible por debajo del cual un ingrediente entra en alerta.
	LowStockThreshold decimal.Decimal
	// RestockFactor: multiplicador del umbral para la cantidad sugerida de pedido.
	RestockFactor decimal.Decimal
}

// AlertsUseCase genera la lista de ingredientes en alerta de stock bajo para
// una tienda, con cantidad sugerida de reposición. Solo lectura del libro.
type AlertsUseCase struct {
	cfg            AlertsConfig
	storeRepo      repository.StoreRepository
	ingredientRepo repository.IngredientRepository
	movRepo        repository.MovementRepository
}

// NewAlertsUseCase construye el caso de uso con sus umbrales.
func NewAlertsUseCase(
	cfg AlertsConfig,
	storeRepo repository.StoreRepository,
	ingredientRepo repository.IngredientRepository,
	movRepo repository.MovementRepository,
) *AlertsUseCase {
	return &AlertsUseCase{
		cfg:            cfg,
		storeRepo:      storeRepo,
		ingredientRepo: ingredientRepo,
		movRepo:        movRepo,
	}
}

// LowStock devuelve los ingredientes activos cuyo disponible está por debajo
// del umbral, ordenados por déficit descendente (los más urgentes primero).
func (uc *AlertsUseCase) LowStock(_ context.Context, storeID string) ([]dto.LowStockAlertDTO, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	ingredients, err := uc.ingredientRepo.ListActive()
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.LowStockAlertDTO, 0)
	for _, ing := range ingredients {
		available, err := uc.movRepo.SumAvailable(storeID, ing.ID)
		if err != nil {
			return nil, err
		}
		if available.GreaterThanOrEqual(uc.cfg.LowStockThreshold) {
			continue
		}
		suggested := uc.cfg.LowStockThreshold.Mul(uc.cfg.RestockFactor).Sub(available)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		alerts = append(alerts, dto.LowStockAlertDTO{
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Unit:           ing.Unit,
			Available:      available,
			Threshold:      uc.cfg.LowStockThreshold,
			SuggestedOrder: suggested,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		defA := alerts[i].Threshold.Sub(alerts[i].Available)
		defB := alerts[j].Threshold.Sub(alerts[j].Available)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return alerts[i].IngredientID < alerts[j].IngredientID
	})
	return alerts, nil
}
