package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateJournalRequest período a proyectar contablemente.
type GenerateJournalRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// JournalResponse diario generado con sus totales.
type JournalResponse struct {
	JournalID      string          `json:"journal_id"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	Entries        int             `json:"entries"`
}

// TraceabilityLineDTO línea del informe de trazabilidad de un lote de producción.
type TraceabilityLineDTO struct {
	IngredientName string          `json:"ingredient_name"`
	LotCode        string          `json:"lot_code"`
	SupplierName   string          `json:"supplier_name"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

// TraceabilityReportDTO informe completo (insumo del PDF HACCP).
type TraceabilityReportDTO struct {
	ProductionLotID string                `json:"production_lot_id"`
	RecipeName      string                `json:"recipe_name"`
	StoreName       string                `json:"store_name"`
	ProducedAt      *time.Time            `json:"produced_at,omitempty"`
	Quantity        decimal.Decimal       `json:"quantity"`
	Unit            string                `json:"unit"`
	Lines           []TraceabilityLineDTO `json:"lines"`
}
