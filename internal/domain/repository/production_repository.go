package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// PlanRepository es el puerto de planes de producción y sus líneas.
type PlanRepository interface {
	// Create persiste el plan con sus líneas. Devuelve ErrPlanAlreadyExists
	// (vía el constraint único tienda+fecha) si ya hay plan para ese día.
	Create(plan *entity.ProductionPlan, lines []*entity.PlanLine) error

	GetByID(id string) (*entity.ProductionPlan, error)
	GetByStoreAndDate(storeID string, date time.Time) (*entity.ProductionPlan, error)
	GetLines(planID string) ([]*entity.PlanLine, error)
	GetLineByID(lineID string) (*entity.PlanLine, error)

	// ListBetween devuelve los planes de una tienda dentro del rango de fechas inclusivo.
	ListBetween(storeID string, from, to time.Time) ([]*entity.ProductionPlan, error)

	// UpdateStatus cambia el estado del plan (DRAFT -> LOCKED).
	UpdateStatus(planID, status string) error
}

// ProductionLotRepository es el puerto de lotes de producción.
type ProductionLotRepository interface {
	Create(lot *entity.ProductionLot) error
	GetByID(id string) (*entity.ProductionLot, error)

	// GetForUpdate carga el lote bloqueando la fila (SELECT FOR UPDATE) para
	// serializar ejecuciones concurrentes del mismo lote.
	GetForUpdate(id string) (*entity.ProductionLot, error)

	// MarkExecuted persiste la transición DRAFT -> EXECUTED.
	MarkExecuted(id string, producedAt time.Time) error

	ListByPlan(planID string) ([]*entity.ProductionLot, error)
}

// ConsumptionRepository es el puerto de líneas de consumo (trazabilidad aval).
type ConsumptionRepository interface {
	Create(line *entity.ConsumptionLine) error
	ListByProductionLot(productionLotID string) ([]*entity.ConsumptionLine, error)
	CountByProductionLot(productionLotID string) (int, error)
}

// SalesRepository es el puerto del histórico de ventas (insumo del planificador).
type SalesRepository interface {
	Create(sale *entity.Sale) error

	// TotalsByRecipe agrega cantidades vendidas por receta en el período
	// (join venta -> menú -> receta). Clave: recipeID.
	TotalsByRecipe(storeID string, from, to time.Time) (map[string]decimal.Decimal, error)
}
