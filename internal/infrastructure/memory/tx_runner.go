package memory

import (
	"context"

	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// StockTxRunner ejecuta la función directamente sobre los repositorios en
// memoria. No hay rollback: los casos de uso escriben solo cuando toda la
// validación previa pasó (asignar primero, persistir después), así que la
// ausencia de transacción real no rompe el todo-o-nada en tests.
type StockTxRunner struct {
	movRepo repository.MovementRepository
	lotRepo repository.LotRepository
}

// NewStockTxRunner construye el runner en memoria.
func NewStockTxRunner(movRepo repository.MovementRepository, lotRepo repository.LotRepository) *StockTxRunner {
	return &StockTxRunner{movRepo: movRepo, lotRepo: lotRepo}
}

// Run ejecuta fn con los repositorios en memoria.
func (r *StockTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
) error) error {
	return fn(r.movRepo, r.lotRepo)
}

// ProductionTxRunner es el equivalente para la ejecución de producción.
type ProductionTxRunner struct {
	movRepo     repository.MovementRepository
	lotRepo     repository.LotRepository
	prodLotRepo repository.ProductionLotRepository
	consRepo    repository.ConsumptionRepository
	planRepo    repository.PlanRepository
}

// NewProductionTxRunner construye el runner en memoria.
func NewProductionTxRunner(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
	prodLotRepo repository.ProductionLotRepository,
	consRepo repository.ConsumptionRepository,
	planRepo repository.PlanRepository,
) *ProductionTxRunner {
	return &ProductionTxRunner{
		movRepo:     movRepo,
		lotRepo:     lotRepo,
		prodLotRepo: prodLotRepo,
		consRepo:    consRepo,
		planRepo:    planRepo,
	}
}

// Run ejecuta fn con los repositorios en memoria.
func (r *ProductionTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
	prodLotRepo repository.ProductionLotRepository,
	consRepo repository.ConsumptionRepository,
	planRepo repository.PlanRepository,
) error) error {
	return fn(r.movRepo, r.lotRepo, r.prodLotRepo, r.consRepo, r.planRepo)
}
