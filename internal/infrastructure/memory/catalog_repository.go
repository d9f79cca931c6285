package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// StoreRepository implementación en memoria del referencial de tiendas.
type StoreRepository struct {
	mu     sync.RWMutex
	stores []entity.Store
}

// NewStoreRepository construye el repositorio en memoria.
func NewStoreRepository() *StoreRepository {
	return &StoreRepository{}
}

var _ repository.StoreRepository = (*StoreRepository)(nil)

func (r *StoreRepository) Create(store *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores = append(r.stores, *store)
	return nil
}

func (r *StoreRepository) GetByID(id string) (*entity.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.stores {
		if r.stores[i].ID == id {
			s := r.stores[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *StoreRepository) List() ([]*entity.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Store, 0, len(r.stores))
	for i := range r.stores {
		s := r.stores[i]
		out = append(out, &s)
	}
	return out, nil
}

// SupplierRepository implementación en memoria del referencial de proveedores.
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers []entity.Supplier
}

// NewSupplierRepository construye el repositorio en memoria.
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{}
}

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

func (r *SupplierRepository) Create(supplier *entity.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers = append(r.suppliers, *supplier)
	return nil
}

func (r *SupplierRepository) GetByID(id string) (*entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.suppliers {
		if r.suppliers[i].ID == id {
			s := r.suppliers[i]
			return &s, nil
		}
	}
	return nil, nil
}

// ListActive devuelve los proveedores activos ordenados por nombre.
func (r *SupplierRepository) ListActive() ([]*entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Supplier, 0)
	for i := range r.suppliers {
		if r.suppliers[i].Active {
			s := r.suppliers[i]
			out = append(out, &s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// IngredientRepository implementación en memoria del referencial de ingredientes.
type IngredientRepository struct {
	mu          sync.RWMutex
	ingredients []entity.Ingredient
	aliases     []entity.IngredientAlias
}

// NewIngredientRepository construye el repositorio en memoria.
func NewIngredientRepository() *IngredientRepository {
	return &IngredientRepository{}
}

var _ repository.IngredientRepository = (*IngredientRepository)(nil)

func (r *IngredientRepository) Create(ingredient *entity.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ingredients = append(r.ingredients, *ingredient)
	return nil
}

func (r *IngredientRepository) GetByID(id string) (*entity.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.ingredients {
		if r.ingredients[i].ID == id {
			ing := r.ingredients[i]
			return &ing, nil
		}
	}
	return nil, nil
}

func (r *IngredientRepository) ListActive() ([]*entity.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Ingredient, 0)
	for i := range r.ingredients {
		if r.ingredients[i].Active {
			ing := r.ingredients[i]
			out = append(out, &ing)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *IngredientRepository) ListAliases() ([]*entity.IngredientAlias, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.IngredientAlias, 0, len(r.aliases))
	for i := range r.aliases {
		a := r.aliases[i]
		out = append(out, &a)
	}
	return out, nil
}

// AddAlias registra un alias de libellé proveedor (solo en memoria, soporte de tests).
func (r *IngredientRepository) AddAlias(alias *entity.IngredientAlias) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases = append(r.aliases, *alias)
}

// RecipeRepository implementación en memoria de recetas y BOM.
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes []entity.Recipe
	lines   []entity.RecipeLine
}

// NewRecipeRepository construye el repositorio en memoria.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{}
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)

func (r *RecipeRepository) Create(recipe *entity.Recipe, lines []*entity.RecipeLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.recipes {
		if r.recipes[i].ID == recipe.ID {
			return domain.ErrDuplicate
		}
	}
	r.recipes = append(r.recipes, *recipe)
	for _, line := range lines {
		r.lines = append(r.lines, *line)
	}
	return nil
}

func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.recipes {
		if r.recipes[i].ID == id {
			rec := r.recipes[i]
			return &rec, nil
		}
	}
	return nil, nil
}

// GetLines devuelve la BOM ordenada por ingrediente.
func (r *RecipeRepository) GetLines(recipeID string) ([]*entity.RecipeLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.RecipeLine, 0)
	for i := range r.lines {
		if r.lines[i].RecipeID == recipeID {
			l := r.lines[i]
			out = append(out, &l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IngredientID < out[j].IngredientID })
	return out, nil
}

func (r *RecipeRepository) GetNamesByIDs(ids []string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		for i := range r.recipes {
			if r.recipes[i].ID == id {
				names[id] = r.recipes[i].Name
				break
			}
		}
	}
	return names, nil
}

// MenuRepository implementación en memoria de menús vendibles.
type MenuRepository struct {
	mu    sync.RWMutex
	menus []entity.Menu
}

// NewMenuRepository construye el repositorio en memoria.
func NewMenuRepository() *MenuRepository {
	return &MenuRepository{}
}

var _ repository.MenuRepository = (*MenuRepository)(nil)

func (r *MenuRepository) Create(menu *entity.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus = append(r.menus, *menu)
	return nil
}

func (r *MenuRepository) GetByID(id string) (*entity.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.menus {
		if r.menus[i].ID == id {
			m := r.menus[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MenuRepository) ListByStore(storeID string) ([]*entity.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Menu, 0)
	for i := range r.menus {
		if r.menus[i].StoreID == storeID {
			m := r.menus[i]
			out = append(out, &m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
