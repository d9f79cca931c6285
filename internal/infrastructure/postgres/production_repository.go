package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

var (
	_ repository.PlanRepository          = (*PlanRepo)(nil)
	_ repository.ProductionLotRepository = (*ProductionLotRepo)(nil)
	_ repository.ConsumptionRepository   = (*ConsumptionRepo)(nil)
	_ repository.SalesRepository         = (*SalesRepo)(nil)
)

// PlanRepo implementación de planes de producción sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste el plan con sus líneas. El constraint único (tienda, fecha)
// se traduce a ErrPlanAlreadyExists.
func (r *PlanRepo) Create(plan *entity.ProductionPlan, lines []*entity.PlanLine) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_plans (id, store_id, plan_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.StoreID, plan.PlanDate, plan.Status, plan.CreatedAt, plan.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPlanAlreadyExists
		}
		return fmt.Errorf("create plan: %w", err)
	}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO plan_lines (id, plan_id, recipe_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, plan.ID, line.RecipeID, line.Quantity, line.Unit); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("create plan line: %w", err)
		}
	}
	return nil
}

func (r *PlanRepo) GetByID(id string) (*entity.ProductionPlan, error) {
	query := `
		SELECT id, store_id, plan_date, status, created_at, updated_at
		FROM production_plans WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *PlanRepo) GetByStoreAndDate(storeID string, date time.Time) (*entity.ProductionPlan, error) {
	query := `
		SELECT id, store_id, plan_date, status, created_at, updated_at
		FROM production_plans WHERE store_id = $1 AND plan_date = $2::date`
	return r.scanOne(r.q.QueryRow(context.Background(), query, storeID, date))
}

func (r *PlanRepo) GetLines(planID string) ([]*entity.PlanLine, error) {
	query := `
		SELECT id, plan_id, recipe_id, quantity, unit
		FROM plan_lines WHERE plan_id = $1 ORDER BY recipe_id ASC`
	rows, err := r.q.Query(context.Background(), query, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PlanLine
	for rows.Next() {
		var l entity.PlanLine
		if err := rows.Scan(&l.ID, &l.PlanID, &l.RecipeID, &l.Quantity, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan plan line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *PlanRepo) GetLineByID(lineID string) (*entity.PlanLine, error) {
	query := `SELECT id, plan_id, recipe_id, quantity, unit FROM plan_lines WHERE id = $1`
	var l entity.PlanLine
	err := r.q.QueryRow(context.Background(), query, lineID).Scan(
		&l.ID, &l.PlanID, &l.RecipeID, &l.Quantity, &l.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan line: %w", err)
	}
	return &l, nil
}

// ListBetween devuelve planes de la tienda en el rango inclusivo de fechas.
func (r *PlanRepo) ListBetween(storeID string, from, to time.Time) ([]*entity.ProductionPlan, error) {
	query := `
		SELECT id, store_id, plan_date, status, created_at, updated_at
		FROM production_plans
		WHERE store_id = $1 AND plan_date >= $2::date AND plan_date <= $3::date
		ORDER BY plan_date ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionPlan
	for rows.Next() {
		var p entity.ProductionPlan
		if err := rows.Scan(&p.ID, &p.StoreID, &p.PlanDate, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PlanRepo) UpdateStatus(planID, status string) error {
	query := `UPDATE production_plans SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, planID, status)
	if err != nil {
		return fmt.Errorf("update plan status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlanRepo) scanOne(row pgx.Row) (*entity.ProductionPlan, error) {
	var p entity.ProductionPlan
	err := row.Scan(&p.ID, &p.StoreID, &p.PlanDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// ProductionLotRepo implementación de lotes de producción sobre PostgreSQL.
type ProductionLotRepo struct {
	q Querier
}

// NewProductionLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionLotRepository(q Querier) *ProductionLotRepo {
	return &ProductionLotRepo{q: q}
}

func (r *ProductionLotRepo) Create(lot *entity.ProductionLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_lots (id, store_id, plan_line_id, recipe_id, quantity, unit, status, produced_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	planLineID := (*string)(nil)
	if lot.PlanLineID != "" {
		planLineID = &lot.PlanLineID
	}
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.StoreID, planLineID, lot.RecipeID, lot.Quantity, lot.Unit,
		lot.Status, lot.ProducedAt, lot.CreatedAt)
	if err != nil {
		return fmt.Errorf("create production lot: %w", err)
	}
	return nil
}

func (r *ProductionLotRepo) GetByID(id string) (*entity.ProductionLot, error) {
	query := `
		SELECT id, store_id, plan_line_id, recipe_id, quantity, unit, status, produced_at, created_at
		FROM production_lots WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para serializar
// ejecuciones concurrentes. Solo tiene sentido dentro de una transacción.
func (r *ProductionLotRepo) GetForUpdate(id string) (*entity.ProductionLot, error) {
	query := `
		SELECT id, store_id, plan_line_id, recipe_id, quantity, unit, status, produced_at, created_at
		FROM production_lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// MarkExecuted persiste la transición DRAFT -> EXECUTED. El WHERE sobre el
// estado actual hace la transición idempotente-negativa también a nivel SQL.
func (r *ProductionLotRepo) MarkExecuted(id string, producedAt time.Time) error {
	query := `
		UPDATE production_lots SET status = $2, produced_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.ProductionLotStatusExecuted, producedAt, entity.ProductionLotStatusDraft)
	if err != nil {
		return fmt.Errorf("mark executed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductionAlreadyExecuted
	}
	return nil
}

func (r *ProductionLotRepo) ListByPlan(planID string) ([]*entity.ProductionLot, error) {
	query := `
		SELECT pl.id, pl.store_id, pl.plan_line_id, pl.recipe_id, pl.quantity, pl.unit, pl.status, pl.produced_at, pl.created_at
		FROM production_lots pl
		JOIN plan_lines l ON l.id = pl.plan_line_id
		WHERE l.plan_id = $1
		ORDER BY pl.id ASC`
	rows, err := r.q.Query(context.Background(), query, planID)
	if err != nil {
		return nil, fmt.Errorf("list production lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionLot
	for rows.Next() {
		var l entity.ProductionLot
		var planLineID *string
		if err := rows.Scan(&l.ID, &l.StoreID, &planLineID, &l.RecipeID, &l.Quantity,
			&l.Unit, &l.Status, &l.ProducedAt, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production lot: %w", err)
		}
		if planLineID != nil {
			l.PlanLineID = *planLineID
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *ProductionLotRepo) scanOne(row pgx.Row) (*entity.ProductionLot, error) {
	var l entity.ProductionLot
	var planLineID *string
	err := row.Scan(&l.ID, &l.StoreID, &planLineID, &l.RecipeID, &l.Quantity,
		&l.Unit, &l.Status, &l.ProducedAt, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production lot: %w", err)
	}
	if planLineID != nil {
		l.PlanLineID = *planLineID
	}
	return &l, nil
}

// ConsumptionRepo implementación de líneas de consumo sobre PostgreSQL.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

func (r *ConsumptionRepo) Create(line *entity.ConsumptionLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_lines (id, production_lot_id, ingredient_id, lot_id, movement_id, quantity, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProductionLotID, line.IngredientID, line.LotID,
		line.MovementID, line.Quantity, line.Unit, line.CreatedAt)
	if err != nil {
		return fmt.Errorf("create consumption line: %w", err)
	}
	return nil
}

func (r *ConsumptionRepo) ListByProductionLot(productionLotID string) ([]*entity.ConsumptionLine, error) {
	query := `
		SELECT id, production_lot_id, ingredient_id, lot_id, movement_id, quantity, unit, created_at
		FROM consumption_lines WHERE production_lot_id = $1
		ORDER BY ingredient_id ASC, lot_id ASC`
	rows, err := r.q.Query(context.Background(), query, productionLotID)
	if err != nil {
		return nil, fmt.Errorf("list consumption lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConsumptionLine
	for rows.Next() {
		var l entity.ConsumptionLine
		if err := rows.Scan(&l.ID, &l.ProductionLotID, &l.IngredientID, &l.LotID,
			&l.MovementID, &l.Quantity, &l.Unit, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *ConsumptionRepo) CountByProductionLot(productionLotID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM consumption_lines WHERE production_lot_id = $1`
	if err := r.q.QueryRow(context.Background(), query, productionLotID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count consumption lines: %w", err)
	}
	return count, nil
}

// SalesRepo implementación del histórico de ventas sobre PostgreSQL.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

func (r *SalesRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, store_id, menu_id, quantity, sold_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.StoreID, sale.MenuID, sale.Quantity, sale.SoldAt)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// TotalsByRecipe agrega cantidades vendidas por receta (join venta -> menú).
func (r *SalesRepo) TotalsByRecipe(storeID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT m.recipe_id, COALESCE(SUM(s.quantity), 0)
		FROM sales s
		JOIN menus m ON m.id = s.menu_id
		WHERE s.store_id = $1 AND s.sold_at >= $2 AND s.sold_at <= $3
		  AND m.recipe_id IS NOT NULL
		GROUP BY m.recipe_id`
	rows, err := r.q.Query(context.Background(), query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("totals by recipe: %w", err)
	}
	defer rows.Close()
	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var recipeID string
		var total decimal.Decimal
		if err := rows.Scan(&recipeID, &total); err != nil {
			return nil, fmt.Errorf("scan sales total: %w", err)
		}
		totals[recipeID] = total
	}
	return totals, rows.Err()
}
