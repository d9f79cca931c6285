package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/catalog"
	"github.com/tu-usuario/catering-pro/internal/application/stock"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: menú "Ensalada" cuya receta pide 0.40 kg de tomate y 0.10 kg de
// queso por unidad. El stock se siembra con recepciones reales en el libro.
// ──────────────────────────────────────────────────────────────────────────────

type availabilityFixture struct {
	uc     *catalog.AvailabilityUseCase
	movs   *memory.MovementRepository
	lots   *memory.LotRepository
	stores *memory.StoreRepository
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	stores := memory.NewStoreRepository()
	ingredients := memory.NewIngredientRepository()
	recipes := memory.NewRecipeRepository()
	menus := memory.NewMenuRepository()
	lots := memory.NewLotRepository()
	movs := memory.NewMovementRepository()

	require.NoError(t, stores.Create(&entity.Store{ID: "store-1", Name: "Central", Type: entity.StoreTypeSales, Active: true}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{ID: "ing-tomate", Name: "Tomate", Unit: entity.UnitKg, Active: true}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{ID: "ing-queso", Name: "Queso", Unit: entity.UnitKg, Active: true}))

	require.NoError(t, recipes.Create(
		&entity.Recipe{ID: "rec-ensalada", Name: "Ensalada"},
		[]*entity.RecipeLine{
			{ID: "rl-1", RecipeID: "rec-ensalada", IngredientID: "ing-tomate",
				Quantity: decimal.RequireFromString("0.40"), Unit: entity.UnitKg},
			{ID: "rl-2", RecipeID: "rec-ensalada", IngredientID: "ing-queso",
				Quantity: decimal.RequireFromString("0.10"), Unit: entity.UnitKg},
		},
	))
	require.NoError(t, recipes.Create(&entity.Recipe{ID: "rec-vacia", Name: "Receta sin BOM"}, nil))

	require.NoError(t, menus.Create(&entity.Menu{
		ID: "menu-ensalada", StoreID: "store-1", RecipeID: "rec-ensalada", Name: "Ensalada", Active: true,
	}))
	require.NoError(t, menus.Create(&entity.Menu{ID: "menu-sin-receta", StoreID: "store-1", Name: "Plato", Active: true}))
	require.NoError(t, menus.Create(&entity.Menu{ID: "menu-bom-vacia", StoreID: "store-1", RecipeID: "rec-vacia", Name: "Vacío", Active: true}))

	allocator := stock.NewAllocatorUseCase(stores, ingredients, lots, movs)
	return &availabilityFixture{
		uc:     catalog.NewAvailabilityUseCase(menus, recipes, allocator),
		movs:   movs,
		lots:   lots,
		stores: stores,
	}
}

// receive siembra un lote con su movimiento RECEPTION asociado.
func (f *availabilityFixture) receive(t *testing.T, lotID, ingredientID, qty string) {
	t.Helper()
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 5)
	require.NoError(t, f.lots.Create(&entity.Lot{
		ID: lotID, StoreID: "store-1", IngredientID: ingredientID,
		LotCode: lotID, ExpiryDate: &expiry, Unit: entity.UnitKg, CreatedAt: now,
	}))
	_, err := f.movs.Append(&entity.StockMovement{
		Type: entity.MovementTypeReception, StoreID: "store-1", IngredientID: ingredientID,
		LotID: lotID, Quantity: decimal.RequireFromString(qty), Unit: entity.UnitKg,
		Timestamp: now, CreatedAt: now,
	})
	require.NoError(t, err)
}

// Con stock para todas las líneas de la BOM el menú está disponible.
func TestIsMenuAvailable_StockSuficiente(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "5")
	f.receive(t, "lot-queso", "ing-queso", "1")

	ok, err := f.uc.IsMenuAvailable(context.Background(), "menu-ensalada", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, ok, "10 ensaladas piden 4 kg de tomate y 1 kg de queso")
}

// Basta que UNA línea de la BOM no alcance para que el menú no esté disponible.
func TestIsMenuAvailable_UnaLineaSinStockDevuelveFalse(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "5")
	f.receive(t, "lot-queso", "ing-queso", "0.5")

	ok, err := f.uc.IsMenuAvailable(context.Background(), "menu-ensalada", decimal.NewFromInt(10))
	require.NoError(t, err, "stock insuficiente es respuesta de negocio, no error")
	assert.False(t, ok)
}

// La simulación jamás escribe en el libro.
func TestIsMenuAvailable_NoMutaElLibro(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "5")
	f.receive(t, "lot-queso", "ing-queso", "1")
	before, err := f.movs.CountAll()
	require.NoError(t, err)

	_, err = f.uc.IsMenuAvailable(context.Background(), "menu-ensalada", decimal.NewFromInt(10))
	require.NoError(t, err)
	after, err := f.movs.CountAll()
	require.NoError(t, err)
	assert.Equal(t, before, after, "la verificación no debe añadir movimientos")
}

// Errores estructurales del catálogo se propagan tipados, no como `false`.
func TestIsMenuAvailable_ErroresEstructurales(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.uc.IsMenuAvailable(context.Background(), "menu-fantasma", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.IsMenuAvailable(context.Background(), "menu-sin-receta", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrMenuWithoutRecipe)

	_, err = f.uc.IsMenuAvailable(context.Background(), "menu-bom-vacia", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrEmptyBOM)
}

func TestIsMenuAvailable_CantidadInvalida(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.uc.IsMenuAvailable(context.Background(), "menu-ensalada", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
