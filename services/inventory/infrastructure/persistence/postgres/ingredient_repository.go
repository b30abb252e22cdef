package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/database"
	invdomain "github.com/ghuser/tableside/services/inventory/domain"
	"github.com/ghuser/tableside/services/inventory/domain/models"
)

// IngredientRepository implements repositories.IngredientRepository against PostgreSQL.
type IngredientRepository struct {
	db *database.Database
}

// NewIngredientRepository returns an IngredientRepository backed by the given pool.
func NewIngredientRepository(db *database.Database) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// Save persists a new ingredient. Returns ErrIngredientExists on unique
// constraint violations.
func (r *IngredientRepository) Save(ctx context.Context, ing *models.Ingredient) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO ingredients (id, name, unit, stock_quantity) VALUES ($1, $2, $3, $4)`,
		ing.ID, ing.Name, ing.Unit, ing.StockQuantity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return invdomain.ErrIngredientExists
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID retrieves an ingredient by ID. Returns ErrIngredientNotFound if absent.
func (r *IngredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, name, unit, stock_quantity FROM ingredients WHERE id = $1`, id)
	ing, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invdomain.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("query ingredient: %w", err)
	}
	return ing, nil
}

// FindAll returns all ingredients ordered by name.
func (r *IngredientRepository) FindAll(ctx context.Context) ([]*models.Ingredient, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, name, unit, stock_quantity FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Update persists a stock quantity change.
func (r *IngredientRepository) Update(ctx context.Context, ing *models.Ingredient) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE ingredients SET name = $2, unit = $3, stock_quantity = $4 WHERE id = $1`,
		ing.ID, ing.Name, ing.Unit, ing.StockQuantity)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return invdomain.ErrIngredientNotFound
	}
	return nil
}

// Delete removes an ingredient by ID.
func (r *IngredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return invdomain.ErrIngredientNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row rowScanner) (*models.Ingredient, error) {
	var (
		ing   models.Ingredient
		stock decimal.Decimal
	)
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Unit, &stock); err != nil {
		return nil, err
	}
	ing.StockQuantity = stock
	return &ing, nil
}
