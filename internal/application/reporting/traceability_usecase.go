package reporting

import (
	"context"

	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// PDFGenerator produce el documento HACCP imprimible del informe de trazabilidad.
type PDFGenerator interface {
	GenerateTraceability(report *dto.TraceabilityReportDTO) ([]byte, error)
}

// TraceabilityUseCase reconstruye la trazabilidad aval de un lote de producción:
// qué lotes de ingrediente se consumieron, de qué proveedor y con qué caducidad.
// Todo se deriva de las líneas de consumo escritas en la ejecución.
type TraceabilityUseCase struct {
	prodLotRepo    repository.ProductionLotRepository
	consRepo       repository.ConsumptionRepository
	lotRepo        repository.LotRepository
	ingredientRepo repository.IngredientRepository
	supplierRepo   repository.SupplierRepository
	storeRepo      repository.StoreRepository
	recipeRepo     repository.RecipeRepository
	pdfGen         PDFGenerator
}

// NewTraceabilityUseCase construye el caso de uso.
func NewTraceabilityUseCase(
	prodLotRepo repository.ProductionLotRepository,
	consRepo repository.ConsumptionRepository,
	lotRepo repository.LotRepository,
	ingredientRepo repository.IngredientRepository,
	supplierRepo repository.SupplierRepository,
	storeRepo repository.StoreRepository,
	recipeRepo repository.RecipeRepository,
	pdfGen PDFGenerator,
) *TraceabilityUseCase {
	return &TraceabilityUseCase{
		prodLotRepo:    prodLotRepo,
		consRepo:       consRepo,
		lotRepo:        lotRepo,
		ingredientRepo: ingredientRepo,
		supplierRepo:   supplierRepo,
		storeRepo:      storeRepo,
		recipeRepo:     recipeRepo,
		pdfGen:         pdfGen,
	}
}

// Report reconstruye el informe de trazabilidad de un lote de producción.
// Solo los lotes EXECUTED tienen consumos; un lote DRAFT produce informe vacío.
func (uc *TraceabilityUseCase) Report(ctx context.Context, productionLotID string) (*dto.TraceabilityReportDTO, error) {
	if productionLotID == "" {
		return nil, domain.ErrInvalidInput
	}
	prodLot, err := uc.prodLotRepo.GetByID(productionLotID)
	if err != nil {
		return nil, err
	}
	if prodLot == nil {
		return nil, domain.ErrNotFound
	}

	report := &dto.TraceabilityReportDTO{
		ProductionLotID: prodLot.ID,
		ProducedAt:      prodLot.ProducedAt,
		Quantity:        prodLot.Quantity,
		Unit:            prodLot.Unit,
	}
	if store, err := uc.storeRepo.GetByID(prodLot.StoreID); err != nil {
		return nil, err
	} else if store != nil {
		report.StoreName = store.Name
	}
	if recipe, err := uc.recipeRepo.GetByID(prodLot.RecipeID); err != nil {
		return nil, err
	} else if recipe != nil {
		report.RecipeName = recipe.Name
	}

	consumptions, err := uc.consRepo.ListByProductionLot(productionLotID)
	if err != nil {
		return nil, err
	}
	report.Lines = make([]dto.TraceabilityLineDTO, 0, len(consumptions))
	for _, cons := range consumptions {
		line := dto.TraceabilityLineDTO{
			Quantity: cons.Quantity,
			Unit:     cons.Unit,
		}
		if ingredient, err := uc.ingredientRepo.GetByID(cons.IngredientID); err != nil {
			return nil, err
		} else if ingredient != nil {
			line.IngredientName = ingredient.Name
		}
		lot, err := uc.lotRepo.GetByID(cons.LotID)
		if err != nil {
			return nil, err
		}
		if lot != nil {
			line.LotCode = lot.LotCode
			line.ExpiryDate = lot.ExpiryDate
			if supplier, err := uc.supplierRepo.GetByID(lot.SupplierID); err != nil {
				return nil, err
			} else if supplier != nil {
				line.SupplierName = supplier.Name
			}
		}
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}

// PDF genera el documento HACCP del informe.
func (uc *TraceabilityUseCase) PDF(ctx context.Context, productionLotID string) ([]byte, error) {
	report, err := uc.Report(ctx, productionLotID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateTraceability(report)
}
