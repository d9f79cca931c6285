package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento inmutable y devuelve su ID.
func (r *MovementRepo) Append(movement *entity.StockMovement) (string, error) {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, type, store_id, ingredient_id, lot_id, quantity, unit, ts, external_ref, comment, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	lotID := (*string)(nil)
	if movement.LotID != "" {
		lotID = &movement.LotID
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.StoreID, movement.IngredientID, lotID,
		movement.Quantity, movement.Unit, movement.Timestamp, movement.ExternalRef,
		movement.Comment, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return "", fmt.Errorf("append stock movement: %w", err)
	}
	return movement.ID, nil
}

// SumAvailable suma las cantidades firmadas de (tienda, ingrediente).
func (r *MovementRepo) SumAvailable(storeID, ingredientID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE store_id = $1 AND ingredient_id = $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, storeID, ingredientID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum available: %w", err)
	}
	return total, nil
}

// SumAvailableForLot suma las cantidades firmadas de un lote concreto.
func (r *MovementRepo) SumAvailableForLot(storeID, ingredientID, lotID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE store_id = $1 AND ingredient_id = $2 AND lot_id = $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, storeID, ingredientID, lotID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum available for lot: %w", err)
	}
	return total, nil
}

// AvailableByLot devuelve el saldo firmado por lote de (tienda, ingrediente).
func (r *MovementRepo) AvailableByLot(storeID, ingredientID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT lot_id, COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE store_id = $1 AND ingredient_id = $2 AND lot_id IS NOT NULL
		GROUP BY lot_id`
	rows, err := r.q.Query(context.Background(), query, storeID, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("available by lot: %w", err)
	}
	defer rows.Close()
	byLot := make(map[string]decimal.Decimal)
	for rows.Next() {
		var lotID string
		var total decimal.Decimal
		if err := rows.Scan(&lotID, &total); err != nil {
			return nil, fmt.Errorf("scan lot balance: %w", err)
		}
		byLot[lotID] = total
	}
	return byLot, rows.Err()
}

// ListByIngredient lista movimientos para auditoría, más recientes primero.
func (r *MovementRepo) ListByIngredient(storeID, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, type, store_id, ingredient_id, lot_id, quantity, unit, ts, external_ref, comment, created_at, created_by
		FROM stock_movements WHERE store_id = $1 AND ingredient_id = $2`
	args := []any{storeID, ingredientID}
	pos := 3
	if from != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY ts DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by ingredient: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountAll cuenta los movimientos del libro.
func (r *MovementRepo) CountAll() (int, error) {
	var count int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_movements`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var lotID, createdBy *string
	if err := row.Scan(&m.ID, &m.Type, &m.StoreID, &m.IngredientID, &lotID,
		&m.Quantity, &m.Unit, &m.Timestamp, &m.ExternalRef, &m.Comment,
		&m.CreatedAt, &createdBy); err != nil {
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if lotID != nil {
		m.LotID = *lotID
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
