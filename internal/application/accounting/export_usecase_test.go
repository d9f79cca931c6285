package accounting_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catering-pro/internal/application/accounting"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/export"
	"github.com/tu-usuario/catering-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: período marzo 2026 con IVA del 10 % (restauración).
// Ventas: 10 menús a 11.00 = 110.00 TTC -> base 100.00 + IVA 10.00.
// Compras: 25 kg de tomate a 2.20 = 55.00 TTC -> base 50.00 + IVA 5.00.
// ──────────────────────────────────────────────────────────────────────────────

type exportFixture struct {
	uc       *accounting.ExportUseCase
	journals *memory.AccountingRepository
	sales    *memory.SalesRepository
	menus    *memory.MenuRepository
	orders   *memory.PurchaseOrderRepository
}

var (
	periodFrom = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	periodTo   = time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
)

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	menus := memory.NewMenuRepository()
	sales := memory.NewSalesRepository(menus)
	ingredients := memory.NewIngredientRepository()
	orders := memory.NewPurchaseOrderRepository(ingredients)
	journals := memory.NewAccountingRepository(sales, menus)

	require.NoError(t, menus.Create(&entity.Menu{
		ID: "menu-ensalada", StoreID: "store-1", RecipeID: "rec-1", Name: "Ensalada",
		Price: decimal.RequireFromString("11.00"), Active: true,
	}))
	require.NoError(t, ingredients.Create(&entity.Ingredient{
		ID: "ing-tomate", Name: "Tomate", Unit: entity.UnitKg,
		UnitCost: decimal.RequireFromString("2.20"), Active: true,
	}))

	vatRate := decimal.RequireFromString("0.10")
	return &exportFixture{
		uc:       accounting.NewExportUseCase(journals, orders, export.NewJournalXMLBuilder(), vatRate),
		journals: journals,
		sales:    sales,
		menus:    menus,
		orders:   orders,
	}
}

func (f *exportFixture) sell(t *testing.T, qty int64, day int) {
	t.Helper()
	require.NoError(t, f.sales.Create(&entity.Sale{
		ID: "sale-" + time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC).Format("02"),
		StoreID: "store-1", MenuID: "menu-ensalada",
		Quantity: decimal.NewFromInt(qty),
		SoldAt:   time.Date(2026, time.March, day, 13, 0, 0, 0, time.UTC),
	}))
}

func (f *exportFixture) buy(t *testing.T, qtyKg string, day int) {
	t.Helper()
	orderID := "po-" + time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC).Format("02")
	require.NoError(t, f.orders.Create(
		&entity.PurchaseOrder{
			ID: orderID, StoreID: "store-1", SupplierID: "sup-1",
			Status:    entity.PurchaseOrderStatusDraft,
			CreatedAt: time.Date(2026, time.March, day, 9, 0, 0, 0, time.UTC),
		},
		[]*entity.PurchaseOrderLine{{
			ID: orderID + "-l1", OrderID: orderID, IngredientID: "ing-tomate",
			Quantity: decimal.RequireFromString(qtyKg), Unit: entity.UnitKg,
		}},
	))
}

// El diario descompone los totales TTC en base + IVA sobre cuatro cuentas.
func TestGenerateJournal_CuatroAsientos(t *testing.T) {
	f := newExportFixture(t)
	f.sell(t, 6, 5)
	f.sell(t, 4, 20)
	f.buy(t, "25", 10)

	resp, err := f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{From: periodFrom, To: periodTo})
	require.NoError(t, err)

	assert.True(t, resp.TotalSales.Equal(decimal.RequireFromString("110.00")), "ventas TTC = %s", resp.TotalSales)
	assert.True(t, resp.TotalPurchases.Equal(decimal.RequireFromString("55.00")), "compras TTC = %s", resp.TotalPurchases)
	assert.Equal(t, 4, resp.Entries)

	// Orden estable: tipo y luego cuenta.
	entries, err := f.journals.ListEntries(resp.JournalID)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, entity.AccountVATDeductible, entries[0].Account)
	assert.True(t, entries[0].Debit.Equal(decimal.RequireFromString("5.00")), "IVA soportado al debe")
	assert.Equal(t, entity.AccountPurchases, entries[1].Account)
	assert.True(t, entries[1].Debit.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, entity.AccountVATCollected, entries[2].Account)
	assert.True(t, entries[2].Credit.Equal(decimal.RequireFromString("10.00")), "IVA repercutido al haber")
	assert.Equal(t, entity.AccountSalesRevenue, entries[3].Account)
	assert.True(t, entries[3].Credit.Equal(decimal.RequireFromString("100.00")))

	for _, e := range entries {
		base, vat := e.Debit, e.Credit
		assert.True(t, base.Add(vat).GreaterThan(decimal.Zero), "ningún asiento vacío")
	}
}

// base = TTC / (1 + tipo) redondeado a céntimo; el IVA absorbe el resto para
// que base + IVA == TTC exacto.
func TestGenerateJournal_RedondeoACentimo(t *testing.T) {
	f := newExportFixture(t)
	require.NoError(t, f.menus.Create(&entity.Menu{
		ID: "menu-cafe", StoreID: "store-1", RecipeID: "rec-2", Name: "Café",
		Price: decimal.RequireFromString("1.00"), Active: true,
	}))
	require.NoError(t, f.sales.Create(&entity.Sale{
		ID: "sale-cafe", StoreID: "store-1", MenuID: "menu-cafe",
		Quantity: decimal.NewFromInt(100),
		SoldAt:   time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC),
	}))

	resp, err := f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{From: periodFrom, To: periodTo})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Entries, "sin compras solo salen los asientos de venta")

	entries, err := f.journals.ListEntries(resp.JournalID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	vat, base := entries[0], entries[1]
	assert.True(t, base.Credit.Equal(decimal.RequireFromString("90.91")), "base = %s", base.Credit)
	assert.True(t, vat.Credit.Equal(decimal.RequireFromString("9.09")))
	assert.True(t, base.Credit.Add(vat.Credit).Equal(decimal.RequireFromString("100.00")))
}

// Un período ya proyectado no se regenera.
func TestGenerateJournal_IdempotenciaPorPeriodo(t *testing.T) {
	f := newExportFixture(t)
	f.sell(t, 1, 5)

	_, err := f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{From: periodFrom, To: periodTo})
	require.NoError(t, err)

	_, err = f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{From: periodFrom, To: periodTo})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGenerateJournal_PeriodoInvalido(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{From: periodTo, To: periodFrom})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{To: periodTo})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El XML de intercambio lleva los totales y un <entry> por asiento, con
// importes a dos decimales y fechas solo-fecha.
func TestExportXML_FormatoDeIntercambio(t *testing.T) {
	f := newExportFixture(t)
	f.sell(t, 10, 5)
	f.buy(t, "25", 10)
	resp, err := f.uc.GenerateJournal(context.Background(), dto.GenerateJournalRequest{From: periodFrom, To: periodTo})
	require.NoError(t, err)

	out, err := f.uc.ExportXML(context.Background(), resp.JournalID)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, xml, `period-start="2026-03-01"`)
	assert.Contains(t, xml, `period-end="2026-03-31"`)
	assert.Contains(t, xml, "<sales>110.00</sales>")
	assert.Contains(t, xml, "<purchases>55.00</purchases>")
	assert.Equal(t, 4, strings.Count(xml, "<entry "))
	assert.Contains(t, xml, "<account>706</account>")
	assert.Contains(t, xml, "<account>44571</account>")
	assert.Contains(t, xml, "<account>607</account>")
	assert.Contains(t, xml, "<account>44566</account>")
	assert.Contains(t, xml, "<date>2026-03-31</date>")
}

func TestExportXML_DiarioInexistente(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.uc.ExportXML(context.Background(), "diario-fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
