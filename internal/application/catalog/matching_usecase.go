package catalog

import (
	"context"

	"github.com/tu-usuario/catering-pro/internal/application/dto"
	"github.com/tu-usuario/catering-pro/internal/domain/catalog"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// MatchingUseCase resuelve libellés de catálogos de proveedor hacia el
// referencial interno de ingredientes (importación de catálogos).
type MatchingUseCase struct {
	ingredientRepo repository.IngredientRepository
}

// NewMatchingUseCase construye el caso de uso.
func NewMatchingUseCase(ingredientRepo repository.IngredientRepository) *MatchingUseCase {
	return &MatchingUseCase{ingredientRepo: ingredientRepo}
}

// MatchLabels indexa el referencial actual (nombres + alias) y matchea cada
// libellé recibido. El resultado conserva el orden de entrada.
func (uc *MatchingUseCase) MatchLabels(_ context.Context, labels []string) ([]dto.MatchedLabelDTO, error) {
	ingredients, err := uc.ingredientRepo.ListActive()
	if err != nil {
		return nil, err
	}
	aliases, err := uc.ingredientRepo.ListAliases()
	if err != nil {
		return nil, err
	}

	ings := make([]entity.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		ings = append(ings, *i)
	}
	als := make([]entity.IngredientAlias, 0, len(aliases))
	for _, a := range aliases {
		als = append(als, *a)
	}
	matcher := catalog.NewMatcher(ings, als)

	out := make([]dto.MatchedLabelDTO, 0, len(labels))
	for _, label := range labels {
		id, ok := matcher.Match(label)
		out = append(out, dto.MatchedLabelDTO{Label: label, IngredientID: id, Matched: ok})
	}
	return out, nil
}
