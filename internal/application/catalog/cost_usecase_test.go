package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/catalog"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: una ensalada con dos ingredientes de costo conocido.
//
//	tomate: 0.40 kg × 3.00 €/kg = 1.20
//	queso:  0.10 kg × 12.00 €/kg = 1.20
//	costo receta = 2.40; menú a 8.00 => margen 5.60, tasa 0.70
// ──────────────────────────────────────────────────────────────────────────────

type costFixture struct {
	uc          *catalog.CostUseCase
	ingredients *memory.IngredientRepository
	recipes     *memory.RecipeRepository
	menus       *memory.MenuRepository
}

func newCostFixture(t *testing.T) *costFixture {
	t.Helper()
	ingredients := memory.NewIngredientRepository()
	recipes := memory.NewRecipeRepository()
	menus := memory.NewMenuRepository()

	require.NoError(t, ingredients.Create(&entity.Ingredient{
		ID: "ing-tomate", Name: "Tomate", Unit: entity.UnitKg,
		UnitCost: decimal.RequireFromString("3.00"), Active: true,
	}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{
		ID: "ing-queso", Name: "Queso", Unit: entity.UnitKg,
		UnitCost: decimal.RequireFromString("12.00"), Active: true,
	}))

	require.NoError(t, recipes.Create(
		&entity.Recipe{ID: "rec-ensalada", Name: "Ensalada de tomate"},
		[]*entity.RecipeLine{
			{ID: "rl-1", RecipeID: "rec-ensalada", IngredientID: "ing-tomate",
				Quantity: decimal.RequireFromString("0.40"), Unit: entity.UnitKg},
			{ID: "rl-2", RecipeID: "rec-ensalada", IngredientID: "ing-queso",
				Quantity: decimal.RequireFromString("0.10"), Unit: entity.UnitKg},
		},
	))
	require.NoError(t, recipes.Create(&entity.Recipe{ID: "rec-vacia", Name: "Receta sin BOM"}, nil))

	require.NoError(t, menus.Create(&entity.Menu{
		ID: "menu-ensalada", StoreID: "store-1", RecipeID: "rec-ensalada",
		Name: "Ensalada", Price: decimal.RequireFromString("8.00"), Active: true,
	}))
	require.NoError(t, menus.Create(&entity.Menu{
		ID: "menu-sin-receta", StoreID: "store-1",
		Name: "Plato del día", Price: decimal.RequireFromString("9.50"), Active: true,
	}))
	require.NoError(t, menus.Create(&entity.Menu{
		ID: "menu-gratis", StoreID: "store-1", RecipeID: "rec-ensalada",
		Name: "Degustación", Price: decimal.Zero, Active: true,
	}))

	return &costFixture{
		uc:          catalog.NewCostUseCase(ingredients, recipes, menus),
		ingredients: ingredients,
		recipes:     recipes,
		menus:       menus,
	}
}

func TestRecipeCost_SumaDeLaBOM(t *testing.T) {
	f := newCostFixture(t)

	cost, err := f.uc.RecipeCost(context.Background(), "rec-ensalada")
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.RequireFromString("2.40")),
		"costo = 0.40*3.00 + 0.10*12.00, obtuvo %s", cost)
}

// Una BOM vacía cuesta cero: no es un error de configuración para costos.
func TestRecipeCost_BOMVaciaCuestaCero(t *testing.T) {
	f := newCostFixture(t)

	cost, err := f.uc.RecipeCost(context.Background(), "rec-vacia")
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}

func TestRecipeCost_RecetaInexistente(t *testing.T) {
	f := newCostFixture(t)

	_, err := f.uc.RecipeCost(context.Background(), "rec-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenuMargin_CalculoNominal(t *testing.T) {
	f := newCostFixture(t)

	out, err := f.uc.MenuMargin(context.Background(), "menu-ensalada")
	require.NoError(t, err)
	assert.True(t, out.Cost.Equal(decimal.RequireFromString("2.40")))
	assert.True(t, out.Margin.Equal(decimal.RequireFromString("5.60")))
	assert.True(t, out.MarginRate.Equal(decimal.RequireFromString("0.70")),
		"tasa = margen/precio, obtuvo %s", out.MarginRate)
}

// Precio cero: margen negativo pero tasa 0 (sin división por cero).
func TestMenuMargin_PrecioCero(t *testing.T) {
	f := newCostFixture(t)

	out, err := f.uc.MenuMargin(context.Background(), "menu-gratis")
	require.NoError(t, err)
	assert.True(t, out.Margin.Equal(decimal.RequireFromString("-2.40")))
	assert.True(t, out.MarginRate.IsZero(), "precio 0 => tasa 0")
}

// Menú sin receta: error estructural tipado, nunca costo 0 silencioso.
func TestMenuCost_MenuSinReceta(t *testing.T) {
	f := newCostFixture(t)

	_, err := f.uc.MenuCost(context.Background(), "menu-sin-receta")
	assert.ErrorIs(t, err, domain.ErrMenuWithoutRecipe)

	_, err = f.uc.MenuMargin(context.Background(), "menu-sin-receta")
	assert.ErrorIs(t, err, domain.ErrMenuWithoutRecipe)
}

func TestMenuCost_MenuInexistente(t *testing.T) {
	f := newCostFixture(t)

	_, err := f.uc.MenuCost(context.Background(), "menu-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
