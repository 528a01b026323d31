package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"food-order-system/internal/database"
	"food-order-system/internal/errs"
	"food-order-system/internal/models"
)

// Repository is the catalog persistence port.
type Repository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch *models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateMenu(ctx context.Context, menu *models.Menu) error
	ListMenus(ctx context.Context, filter models.MenuFilter) ([]models.Menu, error)
	GetMenu(ctx context.Context, id int64) (*models.Menu, error)
	UpdateMenu(ctx context.Context, id int64, patch *models.MenuPatch) (*models.Menu, error)
	SoftDeleteMenu(ctx context.Context, id int64) error
}

// PostgresRepository is the pgx-backed catalog store.
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates the catalog store.
func NewPostgresRepository(db *database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateCategory inserts a category.
func (r *PostgresRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRow(ctx, database.InsertCategorySQL,
		category.Name, category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to create category", err)
	}
	return nil
}

// ListCategories returns all categories ordered by name.
func (r *PostgresRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, database.ListCategoriesSQL)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to list categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, errs.Wrap(errs.Internal, "failed to scan category", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to read categories", err)
	}
	return categories, nil
}

// GetCategory loads one category.
func (r *PostgresRepository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx, database.GetCategoryByIDSQL, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.E(errs.NotFound, "category not found")
		}
		return nil, errs.Wrap(errs.Internal, "failed to load category", err)
	}
	return &c, nil
}

// UpdateCategory applies the present patch fields.
func (r *PostgresRepository) UpdateCategory(ctx context.Context, id int64, patch *models.CategoryPatch) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx, database.UpdateCategorySQL,
		id, patch.Name, patch.Description,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.E(errs.NotFound, "category not found")
		}
		return nil, errs.Wrap(errs.Internal, "failed to update category", err)
	}
	return &c, nil
}

// DeleteCategory hard-deletes a category. Deletion is restricted while menu
// items still reference it.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteCategorySQL, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errs.E(errs.Conflict, "category still has menu items")
		}
		return errs.Wrap(errs.Internal, "failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.E(errs.NotFound, "category not found")
	}
	return nil
}

// CreateMenu inserts a menu item.
func (r *PostgresRepository) CreateMenu(ctx context.Context, menu *models.Menu) error {
	err := r.db.QueryRow(ctx, database.InsertMenuSQL,
		menu.Name, menu.Description, menu.Price, menu.CategoryID,
		menu.IsAvailable, menu.Stock, menu.ImageURL,
	).Scan(&menu.ID, &menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errs.E(errs.InvalidInput, "category does not exist")
		}
		return errs.Wrap(errs.Internal, "failed to create menu", err)
	}
	return nil
}

// ListMenus returns active menu items matching the filter, newest first.
func (r *PostgresRepository) ListMenus(ctx context.Context, filter models.MenuFilter) ([]models.Menu, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, name, description, price, category_id, is_available, stock, image_url,
		       created_at, updated_at, deleted_at
		FROM menus WHERE deleted_at IS NULL`)

	args := []any{}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		fmt.Fprintf(&query, " AND category_id = $%d", len(args))
	}
	if filter.IsAvailable != nil {
		args = append(args, *filter.IsAvailable)
		fmt.Fprintf(&query, " AND is_available = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		fmt.Fprintf(&query, " AND name ILIKE $%d", len(args))
	}
	query.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to list menus", err)
	}
	defer rows.Close()

	menus := []models.Menu{}
	for rows.Next() {
		var m models.Menu
		if err := scanMenu(rows, &m); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.Internal, "failed to read menus", err)
	}
	return menus, nil
}

// GetMenu loads one active menu item.
func (r *PostgresRepository) GetMenu(ctx context.Context, id int64) (*models.Menu, error) {
	var m models.Menu
	err := scanMenu(r.db.QueryRow(ctx, database.GetMenuByIDSQL, id), &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMenu applies the present patch fields to an active menu item.
func (r *PostgresRepository) UpdateMenu(ctx context.Context, id int64, patch *models.MenuPatch) (*models.Menu, error) {
	var m models.Menu
	err := scanMenu(r.db.QueryRow(ctx, database.UpdateMenuSQL,
		id, patch.Name, patch.Description, patch.Price, patch.CategoryID,
		patch.IsAvailable, patch.Stock, patch.ImageURL), &m)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, errs.E(errs.InvalidInput, "category does not exist")
		}
		return nil, err
	}
	return &m, nil
}

// SoftDeleteMenu marks a menu item deleted without removing the row, so
// existing order lines keep their reference.
func (r *PostgresRepository) SoftDeleteMenu(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, database.SoftDeleteMenuSQL, id)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to delete menu", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.E(errs.NotFound, "menu not found")
	}
	return nil
}

func scanMenu(row pgx.Row, m *models.Menu) error {
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.CategoryID,
		&m.IsAvailable, &m.Stock, &m.ImageURL,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.E(errs.NotFound, "menu not found")
		}
		return errs.Wrap(errs.Internal, "failed to scan menu", err)
	}
	return nil
}
