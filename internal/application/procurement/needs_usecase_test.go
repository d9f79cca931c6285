package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/procurement"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: dos planes dentro del horizonte (10 y 12 de marzo) sobre la receta
// "Guiso" (0.50 kg tomate + 0.25 kg queso por unidad). Bruto del horizonte:
// (4 + 6) guisos -> 5 kg de tomate y 2.5 kg de queso.
// ──────────────────────────────────────────────────────────────────────────────

type needsFixture struct {
	uc        *procurement.NeedsUseCase
	movs      *memory.MovementRepository
	suppliers *memory.SupplierRepository
	orders    *memory.PurchaseOrderRepository
}

var (
	needsFrom = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	needsTo   = time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC)
)

func newNeedsFixture(t *testing.T) *needsFixture {
	t.Helper()
	stores := memory.NewStoreRepository()
	suppliers := memory.NewSupplierRepository()
	ingredients := memory.NewIngredientRepository()
	recipes := memory.NewRecipeRepository()
	plans := memory.NewPlanRepository()
	movs := memory.NewMovementRepository()
	orders := memory.NewPurchaseOrderRepository(ingredients)

	require.NoError(t, stores.Create(&entity.Store{ID: "store-1", Name: "Central", Type: entity.StoreTypeProduction, Active: true}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{ID: "ing-queso", Name: "Queso", Unit: entity.UnitKg, Active: true}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{ID: "ing-tomate", Name: "Tomate", Unit: entity.UnitKg, Active: true}))

	require.NoError(t, recipes.Create(
		&entity.Recipe{ID: "rec-guiso", Name: "Guiso"},
		[]*entity.RecipeLine{
			{ID: "rl-1", RecipeID: "rec-guiso", IngredientID: "ing-tomate",
				Quantity: decimal.RequireFromString("0.50"), Unit: entity.UnitKg},
			{ID: "rl-2", RecipeID: "rec-guiso", IngredientID: "ing-queso",
				Quantity: decimal.RequireFromString("0.25"), Unit: entity.UnitKg},
		},
	))

	require.NoError(t, plans.Create(
		&entity.ProductionPlan{ID: "plan-a", StoreID: "store-1",
			PlanDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), Status: entity.PlanStatusDraft},
		[]*entity.PlanLine{{ID: "pl-a1", PlanID: "plan-a", RecipeID: "rec-guiso",
			Quantity: decimal.NewFromInt(4), Unit: entity.UnitPiece}},
	))
	require.NoError(t, plans.Create(
		&entity.ProductionPlan{ID: "plan-b", StoreID: "store-1",
			PlanDate: time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC), Status: entity.PlanStatusDraft},
		[]*entity.PlanLine{{ID: "pl-b1", PlanID: "plan-b", RecipeID: "rec-guiso",
			Quantity: decimal.NewFromInt(6), Unit: entity.UnitPiece}},
	))
	// Plan fuera del horizonte: no cuenta.
	require.NoError(t, plans.Create(
		&entity.ProductionPlan{ID: "plan-z", StoreID: "store-1",
			PlanDate: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC), Status: entity.PlanStatusDraft},
		[]*entity.PlanLine{{ID: "pl-z1", PlanID: "plan-z", RecipeID: "rec-guiso",
			Quantity: decimal.NewFromInt(100), Unit: entity.UnitPiece}},
	))

	return &needsFixture{
		uc:        procurement.NewNeedsUseCase(stores, suppliers, plans, recipes, movs, orders),
		movs:      movs,
		suppliers: suppliers,
		orders:    orders,
	}
}

// seedStock apunta una recepción simple sin lote.
func (f *needsFixture) seedStock(t *testing.T, ingredientID, qty string) {
	t.Helper()
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	_, err := f.movs.Append(&entity.StockMovement{
		Type: entity.MovementTypeReception, StoreID: "store-1", IngredientID: ingredientID,
		Quantity: decimal.RequireFromString(qty), Unit: entity.UnitKg,
		Timestamp: now, CreatedAt: now,
	})
	require.NoError(t, err)
}

// Neto = bruto del horizonte menos disponible; solo salen necesidades positivas.
func TestNetNeeds_BrutoMenosDisponible(t *testing.T) {
	f := newNeedsFixture(t)
	f.seedStock(t, "ing-tomate", "1.5")
	f.seedStock(t, "ing-queso", "10") // cubre de sobra: no debe aparecer

	needs, err := f.uc.NetNeeds(context.Background(), "store-1", needsFrom, needsTo)
	require.NoError(t, err)

	require.Len(t, needs, 1)
	assert.Equal(t, "ing-tomate", needs[0].IngredientID)
	assert.True(t, needs[0].Quantity.Equal(decimal.RequireFromString("3.5")), "5 - 1.5 = %s", needs[0].Quantity)
	assert.Equal(t, entity.UnitKg, needs[0].Unit)
}

// Sin stock, el neto es el bruto completo en orden estable por ingrediente.
func TestNetNeeds_SinStockDevuelveElBruto(t *testing.T) {
	f := newNeedsFixture(t)

	needs, err := f.uc.NetNeeds(context.Background(), "store-1", needsFrom, needsTo)
	require.NoError(t, err)

	require.Len(t, needs, 2)
	assert.Equal(t, "ing-queso", needs[0].IngredientID)
	assert.True(t, needs[0].Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "ing-tomate", needs[1].IngredientID)
	assert.True(t, needs[1].Quantity.Equal(decimal.NewFromInt(5)))
}

func TestNetNeeds_Validaciones(t *testing.T) {
	f := newNeedsFixture(t)
	ctx := context.Background()

	_, err := f.uc.NetNeeds(ctx, "", needsFrom, needsTo)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.NetNeeds(ctx, "store-1", needsTo, needsFrom)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "horizonte invertido")

	_, err = f.uc.NetNeeds(ctx, "store-fantasma", needsFrom, needsTo)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// La orden en borrador lleva una línea por necesidad, referencia determinista y
// el primer proveedor activo por nombre. Crearla no toca el libro de stock.
func TestGenerateDraftOrder_CreaLaOrden(t *testing.T) {
	f := newNeedsFixture(t)
	require.NoError(t, f.suppliers.Create(&entity.Supplier{ID: "sup-z", Name: "Zanahorias SL", Active: true}))
	require.NoError(t, f.suppliers.Create(&entity.Supplier{ID: "sup-a", Name: "Abastos Norte", Active: true}))
	require.NoError(t, f.suppliers.Create(&entity.Supplier{ID: "sup-inactivo", Name: "AAA Cerrado", Active: false}))
	before, err := f.movs.CountAll()
	require.NoError(t, err)

	resp, err := f.uc.GenerateDraftOrder(context.Background(), "store-1", needsFrom, needsTo)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "sup-a", resp.SupplierID, "primer proveedor activo por nombre")
	assert.Equal(t, entity.PurchaseOrderStatusDraft, resp.Status)
	require.Len(t, resp.Needs, 2)

	order, err := f.orders.GetByID(resp.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "PO-20260309-store-1", order.Reference)
	lines, err := f.orders.GetLines(resp.OrderID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	after, err := f.movs.CountAll()
	require.NoError(t, err)
	assert.Equal(t, before, after, "crear la orden no genera movimientos de stock")
}

// Con el stock cubierto no hay nada que pedir: ni orden ni error.
func TestGenerateDraftOrder_SinNecesidadesNoCreaOrden(t *testing.T) {
	f := newNeedsFixture(t)
	require.NoError(t, f.suppliers.Create(&entity.Supplier{ID: "sup-a", Name: "Abastos Norte", Active: true}))
	f.seedStock(t, "ing-tomate", "50")
	f.seedStock(t, "ing-queso", "50")

	resp, err := f.uc.GenerateDraftOrder(context.Background(), "store-1", needsFrom, needsTo)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

// Con necesidades pero sin proveedor activo la orden no puede generarse.
func TestGenerateDraftOrder_SinProveedorActivo(t *testing.T) {
	f := newNeedsFixture(t)
	require.NoError(t, f.suppliers.Create(&entity.Supplier{ID: "sup-inactivo", Name: "Cerrado", Active: false}))

	_, err := f.uc.GenerateDraftOrder(context.Background(), "store-1", needsFrom, needsTo)
	require.ErrorIs(t, err, domain.ErrConflict)
}
