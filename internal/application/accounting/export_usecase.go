package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// XMLBuilder serializa un diario con sus asientos al formato de intercambio
// del gestor contable.
type XMLBuilder interface {
	Build(journal *entity.AccountingJournal, entries []*entity.AccountingEntry) ([]byte, error)
}

// ExportUseCase genera la proyección contable de un período: valora ventas y
// compras, escribe los asientos débito/crédito (cuentas 706/44571/607/44566)
// y produce el fichero XML de intercambio.
//
// La proyección es de un solo sentido: se deriva de ventas y órdenes, jamás
// retroalimenta el stock ni el libro de movimientos.
type ExportUseCase struct {
	accountingRepo repository.AccountingRepository
	orderRepo      repository.PurchaseOrderRepository
	xmlBuilder     XMLBuilder
	vatRate        decimal.Decimal // ej: 0.10 para el 10% de restauración
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	accountingRepo repository.AccountingRepository,
	orderRepo repository.PurchaseOrderRepository,
	xmlBuilder XMLBuilder,
	vatRate decimal.Decimal,
) *ExportUseCase {
	return &ExportUseCase{
		accountingRepo: accountingRepo,
		orderRepo:      orderRepo,
		xmlBuilder:     xmlBuilder,
		vatRate:        vatRate,
	}
}

// GenerateJournal genera el diario contable del período [from, to].
// Idempotencia por período: si ya existe un diario, ErrDuplicate.
func (uc *ExportUseCase) GenerateJournal(ctx context.Context, in dto.GenerateJournalRequest) (*dto.JournalResponse, error) {
	if in.From.IsZero() || in.To.IsZero() || in.To.Before(in.From) {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.accountingRepo.ExistsJournalForPeriod(in.From, in.To)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	salesTTC, err := uc.accountingRepo.SalesRevenue(in.From, in.To)
	if err != nil {
		return nil, err
	}
	purchasesTTC, err := uc.orderRepo.PurchasesTotal(in.From, in.To)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journal := &entity.AccountingJournal{
		ID:             uuid.New().String(),
		PeriodStart:    in.From,
		PeriodEnd:      in.To,
		TotalSales:     salesTTC,
		TotalPurchases: purchasesTTC,
		CreatedAt:      now,
	}
	if err := uc.accountingRepo.CreateJournal(journal); err != nil {
		return nil, err
	}

	entries := uc.buildEntries(journal, salesTTC, purchasesTTC, in.To, now)
	for _, entry := range entries {
		if err := uc.accountingRepo.CreateEntry(entry); err != nil {
			return nil, err
		}
	}
	return &dto.JournalResponse{
		JournalID:      journal.ID,
		TotalSales:     salesTTC,
		TotalPurchases: purchasesTTC,
		Entries:        len(entries),
	}, nil
}

// ExportXML serializa un diario ya generado al formato de intercambio.
func (uc *ExportUseCase) ExportXML(ctx context.Context, journalID string) ([]byte, error) {
	journal, err := uc.accountingRepo.GetJournal(journalID)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.accountingRepo.ListEntries(journalID)
	if err != nil {
		return nil, err
	}
	return uc.xmlBuilder.Build(journal, entries)
}

// buildEntries descompone los totales TTC en base + IVA y produce los asientos.
// Ventas: crédito 706 (base) + crédito 44571 (IVA). Compras: débito 607 (base)
// + débito 44566 (IVA). Los importes se redondean a céntimo.
func (uc *ExportUseCase) buildEntries(
	journal *entity.AccountingJournal,
	salesTTC, purchasesTTC decimal.Decimal,
	entryDate, now time.Time,
) []*entity.AccountingEntry {
	entries := make([]*entity.AccountingEntry, 0, 4)
	one := decimal.NewFromInt(1)

	if salesTTC.GreaterThan(decimal.Zero) {
		base := salesTTC.Div(one.Add(uc.vatRate)).Round(2)
		vat := salesTTC.Sub(base).Round(2)
		entries = append(entries,
			uc.newEntry(journal.ID, entity.EntryTypeSale, entity.AccountSalesRevenue,
				"Ventas del período", decimal.Zero, base, entryDate, now),
			uc.newEntry(journal.ID, entity.EntryTypeSale, entity.AccountVATCollected,
				"IVA repercutido", decimal.Zero, vat, entryDate, now),
		)
	}
	if purchasesTTC.GreaterThan(decimal.Zero) {
		base := purchasesTTC.Div(one.Add(uc.vatRate)).Round(2)
		vat := purchasesTTC.Sub(base).Round(2)
		entries = append(entries,
			uc.newEntry(journal.ID, entity.EntryTypePurchase, entity.AccountPurchases,
				"Compras del período", base, decimal.Zero, entryDate, now),
			uc.newEntry(journal.ID, entity.EntryTypePurchase, entity.AccountVATDeductible,
				"IVA soportado", vat, decimal.Zero, entryDate, now),
		)
	}
	return entries
}

func (uc *ExportUseCase) newEntry(
	journalID, entryType, account, label string,
	debit, credit decimal.Decimal,
	entryDate, now time.Time,
) *entity.AccountingEntry {
	return &entity.AccountingEntry{
		ID:        uuid.New().String(),
		JournalID: journalID,
		Type:      entryType,
		Account:   account,
		Label:     label,
		Debit:     debit,
		Credit:    credit,
		EntryDate: entryDate,
		CreatedAt: now,
	}
}
