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

var (
	_ repository.StoreRepository      = (*StoreRepo)(nil)
	_ repository.SupplierRepository   = (*SupplierRepo)(nil)
	_ repository.IngredientRepository = (*IngredientRepo)(nil)
	_ repository.RecipeRepository     = (*RecipeRepo)(nil)
	_ repository.MenuRepository       = (*MenuRepo)(nil)
)

// StoreRepo implementación del referencial de tiendas sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func (r *StoreRepo) Create(store *entity.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stores (id, name, type, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Type, store.Active, store.CreatedAt, store.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT id, name, type, active, created_at, updated_at FROM stores WHERE id = $1`
	var s entity.Store
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Type, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

func (r *StoreRepo) List() ([]*entity.Store, error) {
	query := `SELECT id, name, type, active, created_at, updated_at FROM stores ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SupplierRepo implementación del referencial de proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	query := `
		INSERT INTO suppliers (id, name, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.Email, supplier.Active,
		supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT id, name, email, active, created_at, updated_at FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ListActive devuelve los proveedores activos ordenados por nombre.
func (r *SupplierRepo) ListActive() ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, email, active, created_at, updated_at
		FROM suppliers WHERE active = TRUE ORDER BY name ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// IngredientRepo implementación del referencial de ingredientes sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ingredients (id, name, unit, unit_cost, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.UnitCost,
		ingredient.Active, ingredient.CreatedAt, ingredient.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT id, name, unit, unit_cost, active, created_at, updated_at FROM ingredients WHERE id = $1`
	var ing entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ing.ID, &ing.Name, &ing.Unit, &ing.UnitCost, &ing.Active, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &ing, nil
}

func (r *IngredientRepo) ListActive() ([]*entity.Ingredient, error) {
	query := `
		SELECT id, name, unit, unit_cost, active, created_at, updated_at
		FROM ingredients WHERE active = TRUE ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var ing entity.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.UnitCost, &ing.Active,
			&ing.CreatedAt, &ing.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}

// ListAliases devuelve los alias de libellé proveedor en orden estable.
func (r *IngredientRepo) ListAliases() ([]*entity.IngredientAlias, error) {
	query := `SELECT id, ingredient_id, label, created_at FROM ingredient_aliases ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer rows.Close()
	var list []*entity.IngredientAlias
	for rows.Next() {
		var a entity.IngredientAlias
		if err := rows.Scan(&a.ID, &a.IngredientID, &a.Label, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// RecipeRepo implementación de recetas y BOM sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la receta con sus líneas.
func (r *RecipeRepo) Create(recipe *entity.Recipe, lines []*entity.RecipeLine) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	query := `INSERT INTO recipes (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.Name, recipe.CreatedAt, recipe.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		lineQuery := `
			INSERT INTO recipe_lines (id, recipe_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, recipe.ID, line.IngredientID, line.Quantity, line.Unit); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("create recipe line: %w", err)
		}
	}
	return nil
}

func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `SELECT id, name, created_at, updated_at FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

// GetLines devuelve la BOM ordenada por ingrediente.
func (r *RecipeRepo) GetLines(recipeID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, recipe_id, ingredient_id, quantity, unit
		FROM recipe_lines WHERE recipe_id = $1 ORDER BY ingredient_id ASC`
	rows, err := r.q.Query(context.Background(), query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.IngredientID, &l.Quantity, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetNamesByIDs devuelve nombre por ID (clasificación del planificador).
func (r *RecipeRepo) GetNamesByIDs(ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	query := `SELECT id, name FROM recipes WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get recipe names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan recipe name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// MenuRepo implementación de menús vendibles sobre PostgreSQL.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

func (r *MenuRepo) Create(menu *entity.Menu) error {
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}
	query := `
		INSERT INTO menus (id, store_id, recipe_id, name, description, price, orderable, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	recipeID := (*string)(nil)
	if menu.RecipeID != "" {
		recipeID = &menu.RecipeID
	}
	_, err := r.q.Exec(context.Background(), query,
		menu.ID, menu.StoreID, recipeID, menu.Name, menu.Description,
		menu.Price, menu.Orderable, menu.Active, menu.CreatedAt, menu.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}

func (r *MenuRepo) GetByID(id string) (*entity.Menu, error) {
	query := `
		SELECT id, store_id, recipe_id, name, description, price, orderable, active, created_at, updated_at
		FROM menus WHERE id = $1`
	var m entity.Menu
	var recipeID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.StoreID, &recipeID, &m.Name, &m.Description,
		&m.Price, &m.Orderable, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	if recipeID != nil {
		m.RecipeID = *recipeID
	}
	return &m, nil
}

func (r *MenuRepo) ListByStore(storeID string) ([]*entity.Menu, error) {
	query := `
		SELECT id, store_id, recipe_id, name, description, price, orderable, active, created_at, updated_at
		FROM menus WHERE store_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()
	var list []*entity.Menu
	for rows.Next() {
		var m entity.Menu
		var recipeID *string
		if err := rows.Scan(&m.ID, &m.StoreID, &recipeID, &m.Name, &m.Description,
			&m.Price, &m.Orderable, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		if recipeID != nil {
			m.RecipeID = *recipeID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
