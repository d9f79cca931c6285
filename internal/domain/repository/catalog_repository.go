package repository

import "github.com/tu-usuario/catering-pro/internal/domain/entity"

// StoreRepository es el puerto del referencial de tiendas.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	List() ([]*entity.Store, error)
}

// SupplierRepository es el puerto del referencial de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)

	// ListActive devuelve los proveedores activos ordenados por nombre.
	ListActive() ([]*entity.Supplier, error)
}

// IngredientRepository es el puerto del referencial de ingredientes.
// El motor de stock lo consume en lectura; las escrituras llegan del CRUD de catálogo.
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	ListActive() ([]*entity.Ingredient, error)
	ListAliases() ([]*entity.IngredientAlias, error)
}

// RecipeRepository es el puerto de recetas y sus líneas (BOM).
type RecipeRepository interface {
	Create(recipe *entity.Recipe, lines []*entity.RecipeLine) error
	GetByID(id string) (*entity.Recipe, error)

	// GetLines devuelve la BOM ordenada por ingrediente (orden estable).
	GetLines(recipeID string) ([]*entity.RecipeLine, error)

	// GetNamesByIDs devuelve nombre por ID para clasificación del planificador.
	GetNamesByIDs(ids []string) (map[string]string, error)
}

// MenuRepository es el puerto de menús vendibles.
type MenuRepository interface {
	Create(menu *entity.Menu) error
	GetByID(id string) (*entity.Menu, error)
	ListByStore(storeID string) ([]*entity.Menu, error)
}
