package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
)

// Estados de un plan de producción.
const (
	PlanStatusDraft  = "DRAFT"  // recién planificado, editable
	PlanStatusLocked = "LOCKED" // al menos un lote del plan fue ejecutado
)

// Estados de un lote de producción. Transición única DRAFT -> EXECUTED, sin retorno.
const (
	ProductionLotStatusDraft    = "DRAFT"
	ProductionLotStatusExecuted = "EXECUTED"
)

// ProductionPlan es el plan de producción diario de una tienda.
// Regla de negocio: un solo plan por (tienda, fecha).
type ProductionPlan struct {
	ID        string
	StoreID   string
	PlanDate  time.Time // solo se usa la parte fecha
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanLine es la línea de planificación de una receta dentro de un plan.
// Única por (plan, receta).
type PlanLine struct {
	ID       string
	PlanID   string
	RecipeID string
	Quantity decimal.Decimal // cantidad a producir
	Unit     string
}

// ProductionLot es un lote de producción real (ejecución del plan o producción fuera de plan).
// El estado es un tag explícito con transición vigilada, no un booleano disperso.
type ProductionLot struct {
	ID         string
	StoreID    string
	PlanLineID string // vacío si es producción fuera de plan
	RecipeID   string
	Quantity   decimal.Decimal // cantidad planificada a producir
	Unit       string
	Status     string
	ProducedAt *time.Time // nil mientras no se ejecute
	CreatedAt  time.Time
}

// MarkExecuted aplica la transición DRAFT -> EXECUTED.
// Rechaza cualquier re-ejecución: EXECUTED es terminal.
func (l *ProductionLot) MarkExecuted(at time.Time) error {
	if l.Status == ProductionLotStatusExecuted {
		return domain.ErrProductionAlreadyExecuted
	}
	if l.Status != ProductionLotStatusDraft {
		return domain.ErrConflict
	}
	l.Status = ProductionLotStatusExecuted
	l.ProducedAt = &at
	return nil
}

// ConsumptionLine registra el consumo real de un ingrediente para un lote de producción.
// Cada línea corresponde a una asignación FEFO efectiva y referencia el movimiento generado.
type ConsumptionLine struct {
	ID              string
	ProductionLotID string
	IngredientID    string
	LotID           string
	MovementID      string
	Quantity        decimal.Decimal
	Unit            string
	CreatedAt       time.Time
}
