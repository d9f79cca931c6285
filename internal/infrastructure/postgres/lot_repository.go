package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de lotes de trazabilidad sobre PostgreSQL.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste el lote. La clave natural (tienda, ingrediente, proveedor,
// código de lote) está protegida por constraint único.
func (r *LotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lots (id, store_id, ingredient_id, supplier_id, lot_code, expiry_date, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	supplierID := (*string)(nil)
	if lot.SupplierID != "" {
		supplierID = &lot.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.StoreID, lot.IngredientID, supplierID, lot.LotCode,
		lot.ExpiryDate, lot.Unit, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. nil si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `
		SELECT id, store_id, ingredient_id, supplier_id, lot_code, expiry_date, unit, created_at
		FROM lots WHERE id = $1`
	lot, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// ListByIngredient devuelve los lotes ordenados por fecha de creación ascendente.
func (r *LotRepo) ListByIngredient(storeID, ingredientID string) ([]*entity.Lot, error) {
	return r.listByIngredient(storeID, ingredientID, "")
}

// ListByIngredientForUpdate lee los mismos lotes con FOR UPDATE. En READ
// COMMITTED la suma de movimientos no ve escrituras sin confirmar: sin este
// bloqueo dos transacciones concurrentes calculan el mismo disponible y ambas
// consumen. El lock sobre las filas de lots serializa las salidas por
// (tienda, ingrediente) hasta el COMMIT.
func (r *LotRepo) ListByIngredientForUpdate(storeID, ingredientID string) ([]*entity.Lot, error) {
	return r.listByIngredient(storeID, ingredientID, " FOR UPDATE")
}

func (r *LotRepo) listByIngredient(storeID, ingredientID, lock string) ([]*entity.Lot, error) {
	query := `
		SELECT id, store_id, ingredient_id, supplier_id, lot_code, expiry_date, unit, created_at
		FROM lots WHERE store_id = $1 AND ingredient_id = $2
		ORDER BY created_at ASC, id ASC` + lock
	rows, err := r.q.Query(context.Background(), query, storeID, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var lot entity.Lot
		var supplierID *string
		if err := rows.Scan(&lot.ID, &lot.StoreID, &lot.IngredientID, &supplierID,
			&lot.LotCode, &lot.ExpiryDate, &lot.Unit, &lot.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		if supplierID != nil {
			lot.SupplierID = *supplierID
		}
		list = append(list, &lot)
	}
	return list, rows.Err()
}

// FindByNaturalKey localiza un lote por su clave natural. nil si no existe.
func (r *LotRepo) FindByNaturalKey(storeID, ingredientID, supplierID, lotCode string) (*entity.Lot, error) {
	query := `
		SELECT id, store_id, ingredient_id, supplier_id, lot_code, expiry_date, unit, created_at
		FROM lots
		WHERE store_id = $1 AND ingredient_id = $2
		  AND COALESCE(supplier_id, '') = $3 AND lot_code = $4`
	lot, err := r.scanOne(r.q.QueryRow(context.Background(), query, storeID, ingredientID, supplierID, lotCode))
	if err != nil {
		return nil, fmt.Errorf("find lot by natural key: %w", err)
	}
	return lot, nil
}

func (r *LotRepo) scanOne(row pgx.Row) (*entity.Lot, error) {
	var lot entity.Lot
	var supplierID *string
	err := row.Scan(&lot.ID, &lot.StoreID, &lot.IngredientID, &supplierID,
		&lot.LotCode, &lot.ExpiryDate, &lot.Unit, &lot.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if supplierID != nil {
		lot.SupplierID = *supplierID
	}
	return &lot, nil
}
