package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PlanRepository implementación en memoria de planes de producción.
type PlanRepository struct {
	mu    sync.RWMutex
	plans []entity.ProductionPlan
	lines []entity.PlanLine
}

// NewPlanRepository construye el repositorio en memoria.
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

var _ repository.PlanRepository = (*PlanRepository)(nil)

// Create persiste el plan con sus líneas. Aplica la unicidad (tienda, fecha).
func (r *PlanRepository) Create(plan *entity.ProductionPlan, lines []*entity.PlanLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		p := &r.plans[i]
		if p.StoreID == plan.StoreID && sameDate(p.PlanDate, plan.PlanDate) {
			return domain.ErrPlanAlreadyExists
		}
	}
	r.plans = append(r.plans, *plan)
	for _, line := range lines {
		r.lines = append(r.lines, *line)
	}
	return nil
}

func (r *PlanRepository) GetByID(id string) (*entity.ProductionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.plans {
		if r.plans[i].ID == id {
			p := r.plans[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PlanRepository) GetByStoreAndDate(storeID string, date time.Time) (*entity.ProductionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.plans {
		p := &r.plans[i]
		if p.StoreID == storeID && sameDate(p.PlanDate, date) {
			found := *p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *PlanRepository) GetLines(planID string) ([]*entity.PlanLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.PlanLine, 0)
	for i := range r.lines {
		if r.lines[i].PlanID == planID {
			l := r.lines[i]
			out = append(out, &l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecipeID < out[j].RecipeID })
	return out, nil
}

func (r *PlanRepository) GetLineByID(lineID string) (*entity.PlanLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.lines {
		if r.lines[i].ID == lineID {
			l := r.lines[i]
			return &l, nil
		}
	}
	return nil, nil
}

// ListBetween devuelve los planes de una tienda en el rango inclusivo [from, to].
func (r *PlanRepository) ListBetween(storeID string, from, to time.Time) ([]*entity.ProductionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fromD, toD := dateOnly(from), dateOnly(to)
	out := make([]*entity.ProductionPlan, 0)
	for i := range r.plans {
		p := r.plans[i]
		if p.StoreID != storeID {
			continue
		}
		d := dateOnly(p.PlanDate)
		if d.Before(fromD) || d.After(toD) {
			continue
		}
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PlanDate.Equal(out[j].PlanDate) {
			return out[i].PlanDate.Before(out[j].PlanDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlanRepository) UpdateStatus(planID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.plans {
		if r.plans[i].ID == planID {
			r.plans[i].Status = status
			r.plans[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrNotFound
}

// ProductionLotRepository implementación en memoria de lotes de producción.
// Necesita las líneas de plan para resolver la pertenencia lote -> plan.
type ProductionLotRepository struct {
	mu    sync.RWMutex
	lots  []entity.ProductionLot
	plans *PlanRepository
}

// NewProductionLotRepository construye el repositorio en memoria.
func NewProductionLotRepository(plans *PlanRepository) *ProductionLotRepository {
	return &ProductionLotRepository{plans: plans}
}

var _ repository.ProductionLotRepository = (*ProductionLotRepository)(nil)

func (r *ProductionLotRepository) Create(lot *entity.ProductionLot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lots = append(r.lots, *lot)
	return nil
}

func (r *ProductionLotRepository) GetByID(id string) (*entity.ProductionLot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.lots {
		if r.lots[i].ID == id {
			l := r.lots[i]
			return &l, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: la serialización de ejecuciones
// concurrentes la da el mutex del repositorio.
func (r *ProductionLotRepository) GetForUpdate(id string) (*entity.ProductionLot, error) {
	return r.GetByID(id)
}

func (r *ProductionLotRepository) MarkExecuted(id string, producedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.lots {
		if r.lots[i].ID == id {
			if r.lots[i].Status == entity.ProductionLotStatusExecuted {
				return domain.ErrProductionAlreadyExecuted
			}
			r.lots[i].Status = entity.ProductionLotStatusExecuted
			at := producedAt
			r.lots[i].ProducedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListByPlan resuelve la pertenencia lote -> plan vía la línea de plan.
func (r *ProductionLotRepository) ListByPlan(planID string) ([]*entity.ProductionLot, error) {
	lines, err := r.plans.GetLines(planID)
	if err != nil {
		return nil, err
	}
	lineIDs := make(map[string]bool, len(lines))
	for _, line := range lines {
		lineIDs[line.ID] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.ProductionLot, 0)
	for i := range r.lots {
		if lineIDs[r.lots[i].PlanLineID] {
			l := r.lots[i]
			out = append(out, &l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ConsumptionRepository implementación en memoria de líneas de consumo.
type ConsumptionRepository struct {
	mu    sync.RWMutex
	lines []entity.ConsumptionLine
}

// NewConsumptionRepository construye el repositorio en memoria.
func NewConsumptionRepository() *ConsumptionRepository {
	return &ConsumptionRepository{}
}

var _ repository.ConsumptionRepository = (*ConsumptionRepository)(nil)

func (r *ConsumptionRepository) Create(line *entity.ConsumptionLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, *line)
	return nil
}

func (r *ConsumptionRepository) ListByProductionLot(productionLotID string) ([]*entity.ConsumptionLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.ConsumptionLine, 0)
	for i := range r.lines {
		if r.lines[i].ProductionLotID == productionLotID {
			l := r.lines[i]
			out = append(out, &l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IngredientID != out[j].IngredientID {
			return out[i].IngredientID < out[j].IngredientID
		}
		return out[i].LotID < out[j].LotID
	})
	return out, nil
}

func (r *ConsumptionRepository) CountByProductionLot(productionLotID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for i := range r.lines {
		if r.lines[i].ProductionLotID == productionLotID {
			count++
		}
	}
	return count, nil
}

// SalesRepository implementación en memoria del histórico de ventas.
// Necesita los menús para resolver la receta de cada venta.
type SalesRepository struct {
	mu    sync.RWMutex
	sales []entity.Sale
	menus *MenuRepository
}

// NewSalesRepository construye el repositorio en memoria.
func NewSalesRepository(menus *MenuRepository) *SalesRepository {
	return &SalesRepository{menus: menus}
}

var _ repository.SalesRepository = (*SalesRepository)(nil)

func (r *SalesRepository) Create(sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, *sale)
	return nil
}

// TotalsByRecipe agrega cantidades vendidas por receta en el período inclusivo.
func (r *SalesRepository) TotalsByRecipe(storeID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	r.mu.RLock()
	sales := make([]entity.Sale, len(r.sales))
	copy(sales, r.sales)
	r.mu.RUnlock()

	fromD, toD := dateOnly(from), dateOnly(to)
	totals := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		if sale.StoreID != storeID {
			continue
		}
		d := dateOnly(sale.SoldAt)
		if d.Before(fromD) || d.After(toD) {
			continue
		}
		menu, err := r.menus.GetByID(sale.MenuID)
		if err != nil {
			return nil, err
		}
		if menu == nil || menu.RecipeID == "" {
			continue
		}
		totals[menu.RecipeID] = totals[menu.RecipeID].Add(sale.Quantity)
	}
	return totals, nil
}
