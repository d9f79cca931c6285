package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden con sus líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_orders (id, store_id, supplier_id, status, target_date, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(context.Background(), query,
		order.ID, order.StoreID, order.SupplierID, order.Status,
		order.TargetDate, order.Reference, order.CreatedAt, order.UpdatedAt); err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO purchase_order_lines (id, order_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, order.ID, line.IngredientID, line.Quantity, line.Unit); err != nil {
			return fmt.Errorf("create purchase order line: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, store_id, supplier_id, status, target_date, reference, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.StoreID, &o.SupplierID, &o.Status, &o.TargetDate,
		&o.Reference, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) GetLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, ingredient_id, quantity, unit
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY ingredient_id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.IngredientID, &l.Quantity, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// PurchasesTotal valora las líneas de órdenes del período al costo unitario del ingrediente.
func (r *PurchaseOrderRepo) PurchasesTotal(from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.quantity * i.unit_cost), 0)
		FROM purchase_order_lines l
		JOIN purchase_orders o ON o.id = l.order_id
		JOIN ingredients i ON i.id = l.ingredient_id
		WHERE o.created_at >= $1 AND o.created_at <= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("purchases total: %w", err)
	}
	return total, nil
}
