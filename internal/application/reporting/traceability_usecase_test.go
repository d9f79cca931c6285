package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/application/reporting"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
)

// capturingPDF registra el informe recibido y devuelve un marcador.
type capturingPDF struct {
	report *dto.TraceabilityReportDTO
}

func (g *capturingPDF) GenerateTraceability(report *dto.TraceabilityReportDTO) ([]byte, error) {
	g.report = report
	return []byte("pdf"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un lote de producción EXECUTED de "Guiso" con dos consumos, cada uno
// atado a su lote de ingrediente (proveedor y caducidad incluidos).
// ──────────────────────────────────────────────────────────────────────────────

type traceFixture struct {
	uc       *reporting.TraceabilityUseCase
	pdf      *capturingPDF
	prodLots *memory.ProductionLotRepository
}

func newTraceFixture(t *testing.T) *traceFixture {
	t.Helper()
	stores := memory.NewStoreRepository()
	suppliers := memory.NewSupplierRepository()
	ingredients := memory.NewIngredientRepository()
	recipes := memory.NewRecipeRepository()
	lots := memory.NewLotRepository()
	plans := memory.NewPlanRepository()
	prodLots := memory.NewProductionLotRepository(plans)
	consumos := memory.NewConsumptionRepository()

	require.NoError(t, stores.Create(&entity.Store{ID: "store-1", Name: "Cocina central", Type: entity.StoreTypeProduction, Active: true}))
	require.NoError(t, suppliers.Create(&entity.Supplier{ID: "sup-1", Name: "Huerta del Sur", Active: true}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{ID: "ing-tomate", Name: "Tomate", Unit: entity.UnitKg, Active: true}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{ID: "ing-queso", Name: "Queso", Unit: entity.UnitKg, Active: true}))
	require.NoError(t, recipes.Create(&entity.Recipe{ID: "rec-guiso", Name: "Guiso"}, nil))

	expiry := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, lots.Create(&entity.Lot{
		ID: "lot-tomate", StoreID: "store-1", IngredientID: "ing-tomate",
		SupplierID: "sup-1", LotCode: "L-TOM-07", ExpiryDate: &expiry, Unit: entity.UnitKg,
	}))
	require.NoError(t, lots.Create(&entity.Lot{
		ID: "lot-queso", StoreID: "store-1", IngredientID: "ing-queso",
		LotCode: "L-QUE-02", Unit: entity.UnitKg,
	}))

	producedAt := time.Date(2026, time.March, 10, 11, 0, 0, 0, time.UTC)
	require.NoError(t, prodLots.Create(&entity.ProductionLot{
		ID: "prod-1", StoreID: "store-1", RecipeID: "rec-guiso",
		Quantity: decimal.NewFromInt(4), Unit: entity.UnitPiece,
		Status: entity.ProductionLotStatusDraft,
	}))
	require.NoError(t, prodLots.MarkExecuted("prod-1", producedAt))

	require.NoError(t, consumos.Create(&entity.ConsumptionLine{
		ID: "cl-1", ProductionLotID: "prod-1", IngredientID: "ing-tomate",
		LotID: "lot-tomate", MovementID: "mov-1",
		Quantity: decimal.NewFromInt(2), Unit: entity.UnitKg,
	}))
	require.NoError(t, consumos.Create(&entity.ConsumptionLine{
		ID: "cl-2", ProductionLotID: "prod-1", IngredientID: "ing-queso",
		LotID: "lot-queso", MovementID: "mov-2",
		Quantity: decimal.NewFromInt(1), Unit: entity.UnitKg,
	}))

	pdf := &capturingPDF{}
	uc := reporting.NewTraceabilityUseCase(prodLots, consumos, lots, ingredients, suppliers, stores, recipes, pdf)
	return &traceFixture{uc: uc, pdf: pdf, prodLots: prodLots}
}

// El informe reconstruye ingrediente, lote, proveedor y caducidad por consumo.
func TestReport_TrazabilidadAval(t *testing.T) {
	f := newTraceFixture(t)

	report, err := f.uc.Report(context.Background(), "prod-1")
	require.NoError(t, err)

	assert.Equal(t, "prod-1", report.ProductionLotID)
	assert.Equal(t, "Cocina central", report.StoreName)
	assert.Equal(t, "Guiso", report.RecipeName)
	require.NotNil(t, report.ProducedAt)
	require.Len(t, report.Lines, 2)

	tomate := report.Lines[1]
	assert.Equal(t, "Tomate", tomate.IngredientName)
	assert.Equal(t, "L-TOM-07", tomate.LotCode)
	assert.Equal(t, "Huerta del Sur", tomate.SupplierName)
	require.NotNil(t, tomate.ExpiryDate)
	assert.True(t, tomate.Quantity.Equal(decimal.NewFromInt(2)))

	queso := report.Lines[0]
	assert.Equal(t, "Queso", queso.IngredientName)
	assert.Equal(t, "L-QUE-02", queso.LotCode)
	assert.Empty(t, queso.SupplierName, "lote sin proveedor registrado")
	assert.Nil(t, queso.ExpiryDate)
}

// Un lote DRAFT todavía no consumió nada: informe con cabecera y cero líneas.
func TestReport_LoteSinEjecutar(t *testing.T) {
	f := newTraceFixture(t)
	require.NoError(t, f.prodLots.Create(&entity.ProductionLot{
		ID: "prod-draft", StoreID: "store-1", RecipeID: "rec-guiso",
		Quantity: decimal.NewFromInt(2), Unit: entity.UnitPiece,
		Status: entity.ProductionLotStatusDraft,
	}))

	report, err := f.uc.Report(context.Background(), "prod-draft")
	require.NoError(t, err)
	assert.Equal(t, "Guiso", report.RecipeName)
	assert.Nil(t, report.ProducedAt)
	assert.Empty(t, report.Lines)
}

func TestReport_Errores(t *testing.T) {
	f := newTraceFixture(t)
	ctx := context.Background()

	_, err := f.uc.Report(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Report(ctx, "prod-fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// PDF delega en el generador con el informe ya reconstruido.
func TestPDF_DelegaEnElGenerador(t *testing.T) {
	f := newTraceFixture(t)

	out, err := f.uc.PDF(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf"), out)
	require.NotNil(t, f.pdf.report)
	assert.Equal(t, "prod-1", f.pdf.report.ProductionLotID)
	assert.Len(t, f.pdf.report.Lines, 2)
}
