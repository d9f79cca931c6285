package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// CostUseCase calcula costos materia y márgenes desde el referencial.
//
// Reglas:
//   - costo receta = Σ (cantidad línea * costo unitario del ingrediente)
//   - costo menú   = costo de su receta
//   - margen       = precio de venta - costo
//   - tasa margen  = margen / precio si precio > 0, si no 0
//
// Funciones puras sobre datos de referencia: cero efectos secundarios.
type CostUseCase struct {
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
	menuRepo       repository.MenuRepository
}

// NewCostUseCase construye el caso de uso.
func NewCostUseCase(
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
	menuRepo repository.MenuRepository,
) *CostUseCase {
	return &CostUseCase{
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		menuRepo:       menuRepo,
	}
}

// RecipeCost calcula el costo materia de una receta.
// Una BOM vacía cuesta 0 (no es un error).
func (uc *CostUseCase) RecipeCost(_ context.Context, recipeID string) (decimal.Decimal, error) {
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return decimal.Zero, err
	}
	if recipe == nil {
		return decimal.Zero, domain.ErrNotFound
	}

	lines, err := uc.recipeRepo.GetLines(recipeID)
	if err != nil {
		return decimal.Zero, err
	}

	cost := decimal.Zero
	for _, line := range lines {
		ingredient, err := uc.ingredientRepo.GetByID(line.IngredientID)
		if err != nil {
			return decimal.Zero, err
		}
		if ingredient == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		cost = cost.Add(line.Quantity.Mul(ingredient.UnitCost))
	}
	return cost, nil
}

// MenuCost calcula el costo materia de un menú vía su receta.
func (uc *CostUseCase) MenuCost(ctx context.Context, menuID string) (decimal.Decimal, error) {
	menu, err := uc.menuRepo.GetByID(menuID)
	if err != nil {
		return decimal.Zero, err
	}
	if menu == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	if menu.RecipeID == "" {
		return decimal.Zero, domain.ErrMenuWithoutRecipe
	}
	return uc.RecipeCost(ctx, menu.RecipeID)
}

// MenuMargin calcula costo + margen usando el precio del menú como precio de venta.
func (uc *CostUseCase) MenuMargin(ctx context.Context, menuID string) (*dto.MenuCostDTO, error) {
	menu, err := uc.menuRepo.GetByID(menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNotFound
	}
	if menu.RecipeID == "" {
		return nil, domain.ErrMenuWithoutRecipe
	}

	cost, err := uc.RecipeCost(ctx, menu.RecipeID)
	if err != nil {
		return nil, err
	}

	margin := menu.Price.Sub(cost)
	rate := decimal.Zero
	if menu.Price.GreaterThan(decimal.Zero) {
		rate = margin.Div(menu.Price)
	}
	return &dto.MenuCostDTO{
		MenuID:     menu.ID,
		Cost:       cost,
		Price:      menu.Price,
		Margin:     margin,
		MarginRate: rate,
	}, nil
}
