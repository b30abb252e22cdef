package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/tableside/pkg/database"
	menudomain "github.com/ghuser/tableside/services/menu/domain"
	"github.com/ghuser/tableside/services/menu/domain/models"
)

// MenuRepository implements repositories.MenuRepository against PostgreSQL.
type MenuRepository struct {
	db *database.Database
}

// NewMenuRepository returns a MenuRepository backed by the given pool.
func NewMenuRepository(db *database.Database) *MenuRepository {
	return &MenuRepository{db: db}
}

// CreateMenuItem inserts the item and all of its recipe requirements in one
// transaction. A failed requirement insert rolls back the item as well.
func (r *MenuRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO menu_items (id, category_id, name, description, price) VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.CategoryID, item.Name, item.Description, item.Price)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return menudomain.ErrCategoryNotFound
			}
			return fmt.Errorf("insert menu item: %w", err)
		}

		for _, req := range item.Requirements {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_requirements (id, menu_item_id, ingredient_id, quantity) VALUES ($1, $2, $3, $4)`,
				req.ID, req.MenuItemID, req.IngredientID, req.Quantity); err != nil {
				return fmt.Errorf("insert recipe requirement: %w", err)
			}
		}
		return nil
	})
}

// GetMenuItem retrieves a menu item with its requirements.
func (r *MenuRepository) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, category_id, name, description, price FROM menu_items WHERE id = $1`, id)

	var item models.MenuItem
	if err := row.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menudomain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("query menu item: %w", err)
	}

	reqs, err := r.requirementsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Requirements = reqs
	return &item, nil
}

// FindAllMenuItems returns every menu item with requirements attached.
func (r *MenuRepository) FindAllMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, category_id, name, description, price FROM menu_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.MenuItem
	byID := make(map[uuid.UUID]*models.MenuItem)
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, &item)
		byID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reqRows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, menu_item_id, ingredient_id, quantity FROM recipe_requirements`)
	if err != nil {
		return nil, fmt.Errorf("query recipe requirements: %w", err)
	}
	defer reqRows.Close() //nolint:errcheck

	for reqRows.Next() {
		var req models.RecipeRequirement
		if err := reqRows.Scan(&req.ID, &req.MenuItemID, &req.IngredientID, &req.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe requirement: %w", err)
		}
		if item, ok := byID[req.MenuItemID]; ok {
			item.Requirements = append(item.Requirements, req)
		}
	}
	return items, reqRows.Err()
}

// DeleteMenuItem removes a menu item; requirements cascade in the schema.
func (r *MenuRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return menudomain.ErrMenuItemNotFound
	}
	return nil
}

// ListCategories returns all categories ordered by name.
func (r *MenuRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CreateCategory persists a new category.
func (r *MenuRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	if _, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *MenuRepository) requirementsFor(ctx context.Context, menuItemID uuid.UUID) ([]models.RecipeRequirement, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, menu_item_id, ingredient_id, quantity FROM recipe_requirements WHERE menu_item_id = $1`,
		menuItemID)
	if err != nil {
		return nil, fmt.Errorf("query recipe requirements: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []models.RecipeRequirement
	for rows.Next() {
		var req models.RecipeRequirement
		if err := rows.Scan(&req.ID, &req.MenuItemID, &req.IngredientID, &req.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe requirement: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
