package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/tableside/services/menu/domain/models"
)

// MenuRepository is the persistence interface for categories and menu items.
// The domain layer owns this interface; infrastructure implements it.
type MenuRepository interface {
	// CreateMenuItem persists the item together with all of its recipe
	// requirements in a single transaction, or nothing at all.
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error

	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)

	// FindAllMenuItems returns every item with its requirements attached.
	FindAllMenuItems(ctx context.Context) ([]*models.MenuItem, error)

	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
}
