package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/catering-pro/internal/application/production"
	"github.com/tu-usuario/catering-pro/internal/application/stock"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and production.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*ProductionTxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	lotRepo := NewLotRepository(tx)

	if err := fn(movRepo, lotRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ProductionTxRunner ejecuta la ejecución de producción en una sola transacción:
// movimientos de consumo, líneas de consumo, transición del lote y bloqueo del plan
// se confirman juntos o no se confirman.
type ProductionTxRunner struct {
	pool *pgxpool.Pool
}

// NewProductionTxRunner construye el runner con el pool.
func NewProductionTxRunner(pool *pgxpool.Pool) *ProductionTxRunner {
	return &ProductionTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *ProductionTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
	prodLotRepo repository.ProductionLotRepository,
	consRepo repository.ConsumptionRepository,
	planRepo repository.PlanRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	lotRepo := NewLotRepository(tx)
	prodLotRepo := NewProductionLotRepository(tx)
	consRepo := NewConsumptionRepository(tx)
	planRepo := NewPlanRepository(tx)

	if err := fn(movRepo, lotRepo, prodLotRepo, consRepo, planRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
