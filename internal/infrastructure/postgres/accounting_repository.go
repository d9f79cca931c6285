package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

var _ repository.AccountingRepository = (*AccountingRepo)(nil)

// AccountingRepo implementación de la proyección contable sobre PostgreSQL.
type AccountingRepo struct {
	q Querier
}

// NewAccountingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountingRepository(q Querier) *AccountingRepo {
	return &AccountingRepo{q: q}
}

func (r *AccountingRepo) CreateJournal(journal *entity.AccountingJournal) error {
	if journal.ID == "" {
		journal.ID = uuid.New().String()
	}
	query := `
		INSERT INTO accounting_journals (id, period_start, period_end, total_sales, total_purchases, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		journal.ID, journal.PeriodStart, journal.PeriodEnd,
		journal.TotalSales, journal.TotalPurchases, journal.CreatedAt)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	return nil
}

func (r *AccountingRepo) CreateEntry(entry *entity.AccountingEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO accounting_entries (id, journal_id, type, account, label, debit, credit, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.JournalID, entry.Type, entry.Account, entry.Label,
		entry.Debit, entry.Credit, entry.EntryDate, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

func (r *AccountingRepo) GetJournal(id string) (*entity.AccountingJournal, error) {
	query := `
		SELECT id, period_start, period_end, total_sales, total_purchases, created_at
		FROM accounting_journals WHERE id = $1`
	var j entity.AccountingJournal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.PeriodStart, &j.PeriodEnd, &j.TotalSales, &j.TotalPurchases, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}
	return &j, nil
}

func (r *AccountingRepo) ListEntries(journalID string) ([]*entity.AccountingEntry, error) {
	query := `
		SELECT id, journal_id, type, account, label, debit, credit, entry_date, created_at
		FROM accounting_entries WHERE journal_id = $1
		ORDER BY type ASC, account ASC`
	rows, err := r.q.Query(context.Background(), query, journalID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountingEntry
	for rows.Next() {
		var e entity.AccountingEntry
		if err := rows.Scan(&e.ID, &e.JournalID, &e.Type, &e.Account, &e.Label,
			&e.Debit, &e.Credit, &e.EntryDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *AccountingRepo) ExistsJournalForPeriod(from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM accounting_journals
			WHERE period_start = $1::date AND period_end = $2::date
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists journal: %w", err)
	}
	return exists, nil
}

// SalesRevenue valora las ventas del período al precio del menú.
func (r *AccountingRepo) SalesRevenue(from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity * m.price), 0)
		FROM sales s
		JOIN menus m ON m.id = s.menu_id
		WHERE s.sold_at >= $1 AND s.sold_at <= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales revenue: %w", err)
	}
	return total, nil
}
