package production

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// Coeficientes de ajuste exógeno del planificador.
// Tabla simple, fácil de extender sin reescribir el algoritmo.
var eventCoefficients = map[string]float64{
	"CHAMPIONS_LEAGUE":    1.20,
	"NATIONAL_TEAM_MATCH": 1.20,
}

// Heurística explícita (y por tanto testeable) de clasificación de recetas.
// El referencial no tiene campo "tipo": se clasifica por el nombre.
var (
	coldRecipeKeywords     = []string{"salade", "bowl", "wrap", "froid", "ensalada"}
	snackingRecipeKeywords = []string{"snack", "snacking", "partage", "apero", "chips", "pizza", "nuggets"}
)

// PlannerUseCase genera un ProductionPlan (DRAFT) y sus líneas a partir de:
//   - el histórico de ventas sobre un período
//   - modificadores exógenos opacos (meteo, eventos, previsiones)
//
// El planificador NUNCA toca el libro de movimientos. Determinista:
// mismas entradas => mismo plan.
type PlannerUseCase struct {
	storeRepo  repository.StoreRepository
	planRepo   repository.PlanRepository
	salesRepo  repository.SalesRepository
	recipeRepo repository.RecipeRepository
}

// NewPlannerUseCase construye el caso de uso.
func NewPlannerUseCase(
	storeRepo repository.StoreRepository,
	planRepo repository.PlanRepository,
	salesRepo repository.SalesRepository,
	recipeRepo repository.RecipeRepository,
) *PlannerUseCase {
	return &PlannerUseCase{
		storeRepo:  storeRepo,
		planRepo:   planRepo,
		salesRepo:  salesRepo,
		recipeRepo: recipeRepo,
	}
}

// Plan genera el plan de producción de (tienda, fecha).
//
// Reglas:
//   - Un solo plan por (tienda, fecha): si ya existe, ErrPlanAlreadyExists.
//   - Sin ventas históricas ni previsión => plan vacío pero válido.
//   - Cantidades redondeadas y acotadas a >= 0.
func (uc *PlannerUseCase) Plan(ctx context.Context, in dto.PlanRequest) (*dto.PlanResponse, error) {
	if in.StoreID == "" || in.PlanDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.HistoryTo.Before(in.HistoryFrom) {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.planRepo.GetByStoreAndDate(in.StoreID, in.PlanDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPlanAlreadyExists
	}

	// 1) Base histórica: media diaria por receta sobre el período (inclusivo).
	// La media se divide por el número de días del período aunque haya días
	// sin ventas, para mantener el cálculo determinista.
	base, err := uc.dailyMeanByRecipe(in.StoreID, in.HistoryFrom, in.HistoryTo)
	if err != nil {
		return nil, err
	}

	// 2) La previsión externa, si llega, tiene prioridad sobre el histórico.
	for recipeID, qty := range in.Forecast {
		base[recipeID] = decimal.NewFromFloat(qty)
	}

	// 3) Clasificación por nombre para los ajustes dirigidos.
	names, err := uc.recipeNames(base)
	if err != nil {
		return nil, err
	}

	// 4) Ajustes exógenos.
	final := applyAdjustments(base, names, in.Weather, in.Events)

	// 5) Generación del plan con líneas en orden estable.
	now := time.Now().UTC()
	plan := &entity.ProductionPlan{
		ID:        uuid.New().String(),
		StoreID:   in.StoreID,
		PlanDate:  in.PlanDate,
		Status:    entity.PlanStatusDraft,
		CreatedAt: now,
	}

	recipeIDs := make([]string, 0, len(final))
	for id := range final {
		recipeIDs = append(recipeIDs, id)
	}
	sort.Strings(recipeIDs)

	lines := make([]*entity.PlanLine, 0, len(recipeIDs))
	lineDTOs := make([]dto.PlanLineDTO, 0, len(recipeIDs))
	for _, recipeID := range recipeIDs {
		qty := smartRound(final[recipeID])
		if qty.LessThan(decimal.Zero) {
			qty = decimal.Zero
		}
		line := &entity.PlanLine{
			ID:       uuid.New().String(),
			PlanID:   plan.ID,
			RecipeID: recipeID,
			Quantity: qty,
			Unit:     entity.UnitPiece,
		}
		lines = append(lines, line)
		lineDTOs = append(lineDTOs, dto.PlanLineDTO{RecipeID: recipeID, Quantity: qty, Unit: line.Unit})
	}

	if err := uc.planRepo.Create(plan, lines); err != nil {
		return nil, err
	}
	return &dto.PlanResponse{PlanID: plan.ID, Status: plan.Status, Lines: lineDTOs}, nil
}

// GetPlan devuelve un plan existente con sus líneas.
func (uc *PlannerUseCase) GetPlan(_ context.Context, planID string) (*dto.PlanDetailResponse, error) {
	if planID == "" {
		return nil, domain.ErrInvalidInput
	}
	plan, err := uc.planRepo.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.planRepo.GetLines(plan.ID)
	if err != nil {
		return nil, err
	}
	lineDTOs := make([]dto.PlanLineDTO, 0, len(lines))
	for _, l := range lines {
		lineDTOs = append(lineDTOs, dto.PlanLineDTO{RecipeID: l.RecipeID, Quantity: l.Quantity, Unit: l.Unit})
	}
	return &dto.PlanDetailResponse{
		PlanID:   plan.ID,
		StoreID:  plan.StoreID,
		PlanDate: plan.PlanDate,
		Status:   plan.Status,
		Lines:    lineDTOs,
	}, nil
}

func (uc *PlannerUseCase) dailyMeanByRecipe(storeID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	days := int(to.Sub(from).Hours()/24) + 1
	if days <= 0 {
		return map[string]decimal.Decimal{}, nil
	}
	totals, err := uc.salesRepo.TotalsByRecipe(storeID, from, to)
	if err != nil {
		return nil, err
	}
	mean := make(map[string]decimal.Decimal, len(totals))
	nbDays := decimal.NewFromInt(int64(days))
	for recipeID, total := range totals {
		mean[recipeID] = total.Div(nbDays)
	}
	return mean, nil
}

func (uc *PlannerUseCase) recipeNames(base map[string]decimal.Decimal) (map[string]string, error) {
	if len(base) == 0 {
		return map[string]string{}, nil
	}
	ids := make([]string, 0, len(base))
	for id := range base {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return uc.recipeRepo.GetNamesByIDs(ids)
}

// applyAdjustments aplica las reglas exógenas:
//   - precipitation_mm > 5   : -10% global (lluvia)
//   - temperature_max >= 25  : +15% recetas frías
//   - evento deportivo       : +20% recetas snacking/partage (producto de coeficientes)
func applyAdjustments(
	base map[string]decimal.Decimal,
	names map[string]string,
	weather map[string]float64,
	events []string,
) map[string]decimal.Decimal {
	globalCoef := decimal.NewFromInt(1)
	if weather["precipitation_mm"] > 5.0 {
		globalCoef = decimal.NewFromFloat(0.90)
	}
	coldCoef := decimal.NewFromInt(1)
	if weather["temperature_max"] >= 25.0 {
		coldCoef = decimal.NewFromFloat(1.15)
	}
	snackCoef := decimal.NewFromInt(1)
	for _, ev := range events {
		if c, ok := eventCoefficients[ev]; ok {
			snackCoef = snackCoef.Mul(decimal.NewFromFloat(c))
		}
	}

	out := make(map[string]decimal.Decimal, len(base))
	for recipeID, qty := range base {
		q := qty.Mul(globalCoef)
		name := strings.ToLower(names[recipeID])
		if matchesAny(name, coldRecipeKeywords) {
			q = q.Mul(coldCoef)
		}
		if matchesAny(name, snackingRecipeKeywords) {
			q = q.Mul(snackCoef)
		}
		if q.LessThan(decimal.Zero) {
			q = decimal.Zero
		}
		out[recipeID] = q
	}
	return out
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// smartRound evita flotantes absurdos en las cantidades planificadas:
//   - < 1  : dos decimales
//   - >= 1 : a la unidad más cercana
func smartRound(v decimal.Decimal) decimal.Decimal {
	if v.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if v.LessThan(decimal.NewFromInt(1)) {
		return v.Round(2)
	}
	return v.Round(0)
}
