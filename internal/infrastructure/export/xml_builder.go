// Package export serializa la proyección contable al formato XML de
// intercambio del gestor contable externo.
package export

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/tu-usuario/catering-pro/internal/application/accounting"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// JournalXMLBuilder implementa accounting.XMLBuilder con etree.
type JournalXMLBuilder struct{}

// NewJournalXMLBuilder crea el builder.
func NewJournalXMLBuilder() *JournalXMLBuilder {
	return &JournalXMLBuilder{}
}

var _ accounting.XMLBuilder = (*JournalXMLBuilder)(nil)

// Build genera el documento <journal> con un <entry> por asiento.
// Importes siempre con dos decimales; fechas en ISO 8601 (solo fecha).
func (b *JournalXMLBuilder) Build(journal *entity.AccountingJournal, entries []*entity.AccountingEntry) ([]byte, error) {
	if journal == nil {
		return nil, fmt.Errorf("export: diario nulo")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("journal")
	root.CreateAttr("id", journal.ID)
	root.CreateAttr("period-start", journal.PeriodStart.Format("2006-01-02"))
	root.CreateAttr("period-end", journal.PeriodEnd.Format("2006-01-02"))

	totals := root.CreateElement("totals")
	totals.CreateElement("sales").SetText(journal.TotalSales.StringFixed(2))
	totals.CreateElement("purchases").SetText(journal.TotalPurchases.StringFixed(2))

	entriesEl := root.CreateElement("entries")
	for _, entry := range entries {
		e := entriesEl.CreateElement("entry")
		e.CreateAttr("id", entry.ID)
		e.CreateAttr("type", entry.Type)
		e.CreateElement("account").SetText(entry.Account)
		e.CreateElement("label").SetText(entry.Label)
		e.CreateElement("debit").SetText(entry.Debit.StringFixed(2))
		e.CreateElement("credit").SetText(entry.Credit.StringFixed(2))
		e.CreateElement("date").SetText(entry.EntryDate.Format("2006-01-02"))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar diario: %w", err)
	}
	return out, nil
}
