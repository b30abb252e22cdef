package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/tableside/services/inventory/domain/models"
)

// IngredientRepository is the persistence interface for the Ingredient aggregate.
// The domain layer owns this interface; infrastructure implements it.
type IngredientRepository interface {
	Save(ctx context.Context, ing *models.Ingredient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	FindAll(ctx context.Context) ([]*models.Ingredient, error)

	// Update persists a stock quantity change to an existing Ingredient.
	Update(ctx context.Context, ing *models.Ingredient) error

	Delete(ctx context.Context, id uuid.UUID) error
}
