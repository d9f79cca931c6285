package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// AccountingRepository es el puerto de la proyección contable exportable.
type AccountingRepository interface {
	CreateJournal(journal *entity.AccountingJournal) error
	CreateEntry(entry *entity.AccountingEntry) error
	GetJournal(id string) (*entity.AccountingJournal, error)
	ListEntries(journalID string) ([]*entity.AccountingEntry, error)

	// ExistsJournalForPeriod evita duplicar la generación para un mismo período.
	ExistsJournalForPeriod(from, to time.Time) (bool, error)

	// SalesRevenue valora las ventas del período al precio del menú.
	SalesRevenue(from, to time.Time) (decimal.Decimal, error)
}
