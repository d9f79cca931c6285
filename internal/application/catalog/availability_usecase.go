package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
	domstock "github.com/tu-usuario/catering-pro/internal/domain/stock"
)

// Allocator es el puerto hacia el asignador FEFO (simulación de solo lectura).
type Allocator interface {
	Allocate(ctx context.Context, storeID string, demand domstock.Demand) ([]domstock.Allocation, error)
}

// AvailabilityUseCase responde "¿se puede vender este menú?" simulando una
// asignación FEFO por cada línea de la BOM sobre el estado actual del libro.
//
// Regla de conversión de errores: una asignación imposible (stock insuficiente
// o demanda inválida derivada de datos) es una respuesta de negocio normal
// (`false`), NO una condición excepcional. Los errores estructurales del
// catálogo (menú inexistente, menú sin receta, BOM vacía) sí se propagan
// tipados, porque indican mala configuración.
type AvailabilityUseCase struct {
	menuRepo   repository.MenuRepository
	recipeRepo repository.RecipeRepository
	allocator  Allocator
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(
	menuRepo repository.MenuRepository,
	recipeRepo repository.RecipeRepository,
	allocator Allocator,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{
		menuRepo:   menuRepo,
		recipeRepo: recipeRepo,
		allocator:  allocator,
	}
}

// IsMenuAvailable indica si el stock permite producir `quantity` unidades del menú.
// Nunca muta el libro: es una simulación pura sobre el estado persistido.
func (uc *AvailabilityUseCase) IsMenuAvailable(ctx context.Context, menuID string, quantity decimal.Decimal) (bool, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return false, domain.ErrInvalidInput
	}

	menu, err := uc.menuRepo.GetByID(menuID)
	if err != nil {
		return false, err
	}
	if menu == nil {
		return false, domain.ErrNotFound
	}
	if menu.RecipeID == "" {
		return false, domain.ErrMenuWithoutRecipe
	}

	lines, err := uc.recipeRepo.GetLines(menu.RecipeID)
	if err != nil {
		return false, err
	}
	if len(lines) == 0 {
		return false, domain.ErrEmptyBOM
	}

	for _, line := range lines {
		needed := line.Quantity.Mul(quantity)
		if !needed.GreaterThan(decimal.Zero) {
			continue
		}
		_, err := uc.allocator.Allocate(ctx, menu.StoreID, domstock.Demand{
			IngredientID: line.IngredientID,
			Quantity:     needed,
			Unit:         line.Unit,
		})
		if err != nil {
			// Indisponibilidad = respuesta de negocio, no fallo del sistema.
			if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrInvalidInput) {
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}
