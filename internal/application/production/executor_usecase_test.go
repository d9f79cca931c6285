package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/production"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: receta "Guiso" cuya BOM pide 0.50 kg de tomate y 0.25 kg de queso
// por unidad producida. El plan del 10 de marzo tiene una línea de 4 guisos.
// ──────────────────────────────────────────────────────────────────────────────

type executorFixture struct {
	uc       *production.ExecutorUseCase
	movs     *memory.MovementRepository
	lots     *memory.LotRepository
	prodLots *memory.ProductionLotRepository
	consumos *memory.ConsumptionRepository
	plans    *memory.PlanRepository
}

func newExecutorFixture(t *testing.T) *executorFixture {
	t.Helper()
	recipes := memory.NewRecipeRepository()
	lots := memory.NewLotRepository()
	movs := memory.NewMovementRepository()
	plans := memory.NewPlanRepository()
	prodLots := memory.NewProductionLotRepository(plans)
	consumos := memory.NewConsumptionRepository()

	require.NoError(t, recipes.Create(
		&entity.Recipe{ID: "rec-guiso", Name: "Guiso"},
		[]*entity.RecipeLine{
			{ID: "rl-1", RecipeID: "rec-guiso", IngredientID: "ing-tomate",
				Quantity: decimal.RequireFromString("0.50"), Unit: entity.UnitKg},
			{ID: "rl-2", RecipeID: "rec-guiso", IngredientID: "ing-queso",
				Quantity: decimal.RequireFromString("0.25"), Unit: entity.UnitKg},
		},
	))
	require.NoError(t, recipes.Create(&entity.Recipe{ID: "rec-vacia", Name: "Sin BOM"}, nil))

	require.NoError(t, plans.Create(
		&entity.ProductionPlan{
			ID:       "plan-1",
			StoreID:  "store-1",
			PlanDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
			Status:   entity.PlanStatusDraft,
		},
		[]*entity.PlanLine{
			{ID: "pl-1", PlanID: "plan-1", RecipeID: "rec-guiso",
				Quantity: decimal.NewFromInt(4), Unit: entity.UnitPiece},
		},
	))

	runner := memory.NewProductionTxRunner(movs, lots, prodLots, consumos, plans)
	return &executorFixture{
		uc:       production.NewExecutorUseCase(recipes, runner),
		movs:     movs,
		lots:     lots,
		prodLots: prodLots,
		consumos: consumos,
		plans:    plans,
	}
}

// receive siembra un lote con su recepción asociada.
func (f *executorFixture) receive(t *testing.T, lotID, ingredientID, qty string, expiryDays int) {
	t.Helper()
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, expiryDays)
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

func (f *executorFixture) createLot(t *testing.T, planLineID string) *entity.ProductionLot {
	t.Helper()
	lot, err := f.uc.CreateLot(context.Background(), "store-1", planLineID, "rec-guiso",
		decimal.NewFromInt(4), entity.UnitPiece)
	require.NoError(t, err)
	require.Equal(t, entity.ProductionLotStatusDraft, lot.Status)
	return lot
}

// Ejecutar 4 guisos consume 2 kg de tomate y 1 kg de queso en orden FEFO.
// El tomate está repartido en dos lotes, así que la demanda cruza lotes.
func TestExecute_ConsumeLaBOMEnOrdenFEFO(t *testing.T) {
	f := newExecutorFixture(t)
	f.receive(t, "lot-tom-a", "ing-tomate", "1.5", 2) // caduca antes
	f.receive(t, "lot-tom-b", "ing-tomate", "5", 9)
	f.receive(t, "lot-queso", "ing-queso", "3", 5)
	lot := f.createLot(t, "pl-1")

	resp, err := f.uc.Execute(context.Background(), lot.ID)
	require.NoError(t, err)

	assert.Equal(t, lot.ID, resp.ProductionLotID)
	assert.Equal(t, 3, resp.StockMovements, "2 lotes de tomate + 1 de queso")
	assert.Equal(t, 3, resp.ConsumptionLines)
	// La BOM sale ordenada por ingrediente (queso antes que tomate) y dentro
	// de cada ingrediente el reparto es FEFO.
	require.Len(t, resp.Allocations, 3)
	assert.Equal(t, "lot-queso", resp.Allocations[0].LotID)
	assert.True(t, resp.Allocations[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "lot-tom-a", resp.Allocations[1].LotID)
	assert.True(t, resp.Allocations[1].Quantity.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, "lot-tom-b", resp.Allocations[2].LotID)
	assert.True(t, resp.Allocations[2].Quantity.Equal(decimal.RequireFromString("0.5")))

	// El libro refleja el consumo: quedan 4.5 kg de tomate y 2 kg de queso.
	tomate, err := f.movs.SumAvailable("store-1", "ing-tomate")
	require.NoError(t, err)
	assert.True(t, tomate.Equal(decimal.RequireFromString("4.5")), "disponible tomate = %s", tomate)
	queso, err := f.movs.SumAvailable("store-1", "ing-queso")
	require.NoError(t, err)
	assert.True(t, queso.Equal(decimal.NewFromInt(2)), "disponible queso = %s", queso)

	// Cada línea de consumo enlaza con su movimiento CONSUMPTION.
	lines, err := f.consumos.ListByProductionLot(lot.ID)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.NotEmpty(t, line.MovementID)
		assert.True(t, line.Quantity.GreaterThan(decimal.Zero), "la línea de consumo guarda la cantidad en positivo")
	}

	got, err := f.prodLots.GetByID(lot.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionLotStatusExecuted, got.Status)
	require.NotNil(t, got.ProducedAt)
}

// Escenario clásico de doble clic: la segunda ejecución no escribe nada.
func TestExecute_SegundaEjecucionRechazada(t *testing.T) {
	f := newExecutorFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "10", 5)
	f.receive(t, "lot-queso", "ing-queso", "10", 5)
	lot := f.createLot(t, "pl-1")

	_, err := f.uc.Execute(context.Background(), lot.ID)
	require.NoError(t, err)
	before, err := f.movs.CountAll()
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), lot.ID)
	require.ErrorIs(t, err, domain.ErrProductionAlreadyExecuted)

	after, err := f.movs.CountAll()
	require.NoError(t, err)
	assert.Equal(t, before, after, "la re-ejecución no añade movimientos")
	count, err := f.consumos.CountByProductionLot(lot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "un lote de tomate y uno de queso: dos consumos")
}

// Si un solo ingrediente no alcanza, no se persiste NADA: ni movimientos, ni
// líneas de consumo, ni transición de estado.
func TestExecute_TodoONada(t *testing.T) {
	f := newExecutorFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "10", 5)
	f.receive(t, "lot-queso", "ing-queso", "0.5", 5) // hacen falta 1 kg
	lot := f.createLot(t, "pl-1")
	before, err := f.movs.CountAll()
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), lot.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "ing-queso", "el error nombra al ingrediente insuficiente")

	after, err := f.movs.CountAll()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	count, err := f.consumos.CountByProductionLot(lot.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := f.prodLots.GetByID(lot.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionLotStatusDraft, got.Status, "el lote sigue ejecutable tras reponer stock")
	assert.Nil(t, got.ProducedAt)

	plan, err := f.plans.GetByID("plan-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanStatusDraft, plan.Status)
}

// La primera ejecución atada a plan congela el plan.
func TestExecute_BloqueaElPlanTrasLaPrimeraEjecucion(t *testing.T) {
	f := newExecutorFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "10", 5)
	f.receive(t, "lot-queso", "ing-queso", "10", 5)
	lot := f.createLot(t, "pl-1")

	_, err := f.uc.Execute(context.Background(), lot.ID)
	require.NoError(t, err)

	plan, err := f.plans.GetByID("plan-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanStatusLocked, plan.Status)
}

// La producción fuera de plan no toca ningún plan.
func TestExecute_FueraDePlanNoTocaPlanes(t *testing.T) {
	f := newExecutorFixture(t)
	f.receive(t, "lot-tomate", "ing-tomate", "10", 5)
	f.receive(t, "lot-queso", "ing-queso", "10", 5)
	lot := f.createLot(t, "")

	_, err := f.uc.Execute(context.Background(), lot.ID)
	require.NoError(t, err)

	plan, err := f.plans.GetByID("plan-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanStatusDraft, plan.Status)
}

// Una receta sin BOM no es ejecutable.
func TestExecute_BOMVacia(t *testing.T) {
	f := newExecutorFixture(t)
	lot, err := f.uc.CreateLot(context.Background(), "store-1", "", "rec-vacia",
		decimal.NewFromInt(1), entity.UnitPiece)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), lot.ID)
	require.ErrorIs(t, err, domain.ErrEmptyBOM)
}

func TestExecute_LoteInexistente(t *testing.T) {
	f := newExecutorFixture(t)

	_, err := f.uc.Execute(context.Background(), "lote-fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Execute(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateLot_Validaciones(t *testing.T) {
	f := newExecutorFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateLot(ctx, "", "", "rec-guiso", decimal.NewFromInt(1), entity.UnitPiece)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "tienda obligatoria")

	_, err = f.uc.CreateLot(ctx, "store-1", "", "rec-guiso", decimal.Zero, entity.UnitPiece)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad positiva obligatoria")

	_, err = f.uc.CreateLot(ctx, "store-1", "", "rec-fantasma", decimal.NewFromInt(1), entity.UnitPiece)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateLot(ctx, "store-1", "pl-fantasma", "rec-guiso", decimal.NewFromInt(1), entity.UnitPiece)
	require.ErrorIs(t, err, domain.ErrNotFound, "la línea de plan referida debe existir")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura de saldos bajo bloqueo
// ──────────────────────────────────────────────────────────────────────────────

// lockTrackingLotRepo cuenta las lecturas hechas por la variante que bloquea
// las filas del lote dentro de la transacción.
type lockTrackingLotRepo struct {
	*memory.LotRepository
	lockedReads int
}

func (r *lockTrackingLotRepo) ListByIngredientForUpdate(storeID, ingredientID string) ([]*entity.Lot, error) {
	r.lockedReads++
	return r.LotRepository.ListByIngredientForUpdate(storeID, ingredientID)
}

// El saldo que decide la asignación se lee con las filas del lote bloqueadas:
// dos ejecuciones concurrentes sobre el mismo ingrediente se serializan ahí en
// vez de calcular el mismo disponible y consumirlo dos veces.
func TestExecute_LeeLosSaldosBloqueandoLosLotes(t *testing.T) {
	recipes := memory.NewRecipeRepository()
	lots := &lockTrackingLotRepo{LotRepository: memory.NewLotRepository()}
	movs := memory.NewMovementRepository()
	plans := memory.NewPlanRepository()
	prodLots := memory.NewProductionLotRepository(plans)
	consumos := memory.NewConsumptionRepository()

	require.NoError(t, recipes.Create(
		&entity.Recipe{ID: "rec-guiso", Name: "Guiso"},
		[]*entity.RecipeLine{
			{ID: "rl-1", RecipeID: "rec-guiso", IngredientID: "ing-tomate",
				Quantity: decimal.RequireFromString("0.50"), Unit: entity.UnitKg},
			{ID: "rl-2", RecipeID: "rec-guiso", IngredientID: "ing-queso",
				Quantity: decimal.RequireFromString("0.25"), Unit: entity.UnitKg},
		},
	))

	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	for _, seed := range []struct{ lotID, ingredientID string }{
		{"lot-tomate", "ing-tomate"},
		{"lot-queso", "ing-queso"},
	} {
		expiry := now.AddDate(0, 0, 5)
		require.NoError(t, lots.Create(&entity.Lot{
			ID: seed.lotID, StoreID: "store-1", IngredientID: seed.ingredientID,
			LotCode: seed.lotID, ExpiryDate: &expiry, Unit: entity.UnitKg, CreatedAt: now,
		}))
		_, err := movs.Append(&entity.StockMovement{
			Type: entity.MovementTypeReception, StoreID: "store-1", IngredientID: seed.ingredientID,
			LotID: seed.lotID, Quantity: decimal.NewFromInt(10), Unit: entity.UnitKg,
			Timestamp: now, CreatedAt: now,
		})
		require.NoError(t, err)
	}

	runner := memory.NewProductionTxRunner(movs, lots, prodLots, consumos, plans)
	uc := production.NewExecutorUseCase(recipes, runner)

	lot, err := uc.CreateLot(context.Background(), "store-1", "", "rec-guiso",
		decimal.NewFromInt(4), entity.UnitPiece)
	require.NoError(t, err)
	require.Zero(t, lots.lockedReads, "crear el lote de producción no toca saldos")

	_, err = uc.Execute(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, lots.lockedReads, "una lectura bloqueada por ingrediente de la BOM")
}
