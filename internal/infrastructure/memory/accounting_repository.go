package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// AccountingRepository implementación en memoria de la proyección contable.
// Necesita ventas y menús para valorar los ingresos del período.
type AccountingRepository struct {
	mu       sync.RWMutex
	journals []entity.AccountingJournal
	entries  []entity.AccountingEntry
	sales    *SalesRepository
	menus    *MenuRepository
}

// NewAccountingRepository construye el repositorio en memoria.
func NewAccountingRepository(sales *SalesRepository, menus *MenuRepository) *AccountingRepository {
	return &AccountingRepository{sales: sales, menus: menus}
}

var _ repository.AccountingRepository = (*AccountingRepository)(nil)

func (r *AccountingRepository) CreateJournal(journal *entity.AccountingJournal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journals = append(r.journals, *journal)
	return nil
}

func (r *AccountingRepository) CreateEntry(entry *entity.AccountingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AccountingRepository) GetJournal(id string) (*entity.AccountingJournal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.journals {
		if r.journals[i].ID == id {
			j := r.journals[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (r *AccountingRepository) ListEntries(journalID string) ([]*entity.AccountingEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.AccountingEntry, 0)
	for i := range r.entries {
		if r.entries[i].JournalID == journalID {
			e := r.entries[i]
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Account < out[j].Account
	})
	return out, nil
}

func (r *AccountingRepository) ExistsJournalForPeriod(from, to time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.journals {
		j := &r.journals[i]
		if sameDate(j.PeriodStart, from) && sameDate(j.PeriodEnd, to) {
			return true, nil
		}
	}
	return false, nil
}

// SalesRevenue valora las ventas del período inclusivo al precio actual del menú.
func (r *AccountingRepository) SalesRevenue(from, to time.Time) (decimal.Decimal, error) {
	r.sales.mu.RLock()
	sales := make([]entity.Sale, len(r.sales.sales))
	copy(sales, r.sales.sales)
	r.sales.mu.RUnlock()

	fromD, toD := dateOnly(from), dateOnly(to)
	total := decimal.Zero
	for _, sale := range sales {
		d := dateOnly(sale.SoldAt)
		if d.Before(fromD) || d.After(toD) {
			continue
		}
		menu, err := r.menus.GetByID(sale.MenuID)
		if err != nil {
			return decimal.Zero, err
		}
		if menu == nil {
			continue
		}
		total = total.Add(sale.Quantity.Mul(menu.Price))
	}
	return total, nil
}
