package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento contable.
// IMPORTANTE: la contabilidad es una proyección exportable, no un libro mayor:
// ninguna lógica de negocio vive aquí.
const (
	EntryTypeSale     = "SALE"
	EntryTypePurchase = "PURCHASE"
)

// Cuentas del plan contable francés usadas en la proyección.
const (
	AccountSalesRevenue  = "706"   // prestaciones de servicios
	AccountVATCollected  = "44571" // IVA repercutido
	AccountPurchases     = "607"   // compras de mercancías
	AccountVATDeductible = "44566" // IVA soportado
)

// AccountingJournal agrupa los asientos generados para un período.
type AccountingJournal struct {
	ID             string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	TotalSales     decimal.Decimal
	TotalPurchases decimal.Decimal
	CreatedAt      time.Time
}

// AccountingEntry es un asiento exportable (línea débito/crédito).
type AccountingEntry struct {
	ID        string
	JournalID string
	Type      string // SALE | PURCHASE
	Account   string
	Label     string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	EntryDate time.Time
	CreatedAt time.Time
}
