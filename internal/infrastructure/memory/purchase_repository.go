package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// PurchaseOrderRepository implementación en memoria de órdenes de compra.
// Necesita los ingredientes para valorar las líneas al costo unitario.
type PurchaseOrderRepository struct {
	mu          sync.RWMutex
	orders      []entity.PurchaseOrder
	lines       []entity.PurchaseOrderLine
	ingredients *IngredientRepository
}

// NewPurchaseOrderRepository construye el repositorio en memoria.
func NewPurchaseOrderRepository(ingredients *IngredientRepository) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{ingredients: ingredients}
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

func (r *PurchaseOrderRepository) Create(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, *order)
	for _, line := range lines {
		r.lines = append(r.lines, *line)
	}
	return nil
}

func (r *PurchaseOrderRepository) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (r *PurchaseOrderRepository) GetLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.PurchaseOrderLine, 0)
	for i := range r.lines {
		if r.lines[i].OrderID == orderID {
			l := r.lines[i]
			out = append(out, &l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IngredientID < out[j].IngredientID })
	return out, nil
}

// PurchasesTotal valora las líneas de órdenes creadas en el período al costo
// unitario actual del ingrediente.
func (r *PurchaseOrderRepository) PurchasesTotal(from, to time.Time) (decimal.Decimal, error) {
	r.mu.RLock()
	orders := make([]entity.PurchaseOrder, len(r.orders))
	copy(orders, r.orders)
	lines := make([]entity.PurchaseOrderLine, len(r.lines))
	copy(lines, r.lines)
	r.mu.RUnlock()

	fromD, toD := dateOnly(from), dateOnly(to)
	inPeriod := make(map[string]bool)
	for _, o := range orders {
		d := dateOnly(o.CreatedAt)
		if !d.Before(fromD) && !d.After(toD) {
			inPeriod[o.ID] = true
		}
	}

	total := decimal.Zero
	for _, line := range lines {
		if !inPeriod[line.OrderID] {
			continue
		}
		ingredient, err := r.ingredients.GetByID(line.IngredientID)
		if err != nil {
			return decimal.Zero, err
		}
		if ingredient == nil {
			continue
		}
		total = total.Add(line.Quantity.Mul(ingredient.UnitCost))
	}
	return total, nil
}
