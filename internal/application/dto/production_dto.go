package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanRequest cuerpo para generar un plan de producción.
// Los modificadores de demanda (meteo, eventos, previsiones) son valores opacos
// que llegan del colaborador de previsión; el planificador no los calcula.
type PlanRequest struct {
	StoreID     string             `json:"store_id"`
	PlanDate    time.Time          `json:"plan_date"`
	HistoryFrom time.Time          `json:"history_from"`
	HistoryTo   time.Time          `json:"history_to"`
	Weather     map[string]float64 `json:"weather"`   // ej: temperature_max, precipitation_mm
	Events      []string           `json:"events"`    // ej: CHAMPIONS_LEAGUE
	Forecast    map[string]float64 `json:"forecast"`  // recipeID -> cantidad prevista (prioridad sobre el histórico)
}

// PlanResponse plan creado.
type PlanResponse struct {
	PlanID string        `json:"plan_id"`
	Status string        `json:"status"`
	Lines  []PlanLineDTO `json:"lines"`
}

// PlanLineDTO línea del plan.
type PlanLineDTO struct {
	RecipeID string          `json:"recipe_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// PlanDetailResponse plan existente con sus líneas.
type PlanDetailResponse struct {
	PlanID   string        `json:"plan_id"`
	StoreID  string        `json:"store_id"`
	PlanDate time.Time     `json:"plan_date"`
	Status   string        `json:"status"`
	Lines    []PlanLineDTO `json:"lines"`
}

// CreateLotRequest cuerpo para abrir un lote de producción (DRAFT) sobre una
// línea de plan.
type CreateLotRequest struct {
	StoreID    string          `json:"store_id"`
	PlanLineID string          `json:"plan_line_id"`
	RecipeID   string          `json:"recipe_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
}

// ExecuteProductionResponse resultado de la ejecución de un lote de producción.
type ExecuteProductionResponse struct {
	ProductionLotID  string          `json:"production_lot_id"`
	ConsumptionLines int             `json:"consumption_lines"`
	StockMovements   int             `json:"stock_movements"`
	Allocations      []AllocationDTO `json:"allocations"`
}
