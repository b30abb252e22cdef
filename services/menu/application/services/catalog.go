package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/tableside/services/menu/domain/models"
	"github.com/ghuser/tableside/services/menu/domain/repositories"
)

// Catalog serves the read-mostly registry of categories and menu items.
type Catalog struct {
	repo repositories.MenuRepository
}

// NewCatalog returns a Catalog backed by the given repository.
func NewCatalog(repo repositories.MenuRepository) *Catalog {
	return &Catalog{repo: repo}
}

// ListCategories returns all categories.
func (c *Catalog) ListCategories(ctx context.Context) ([]*models.Category, error) {
	cats, err := c.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ListMenuItems returns every menu item with its recipe requirements.
func (c *Catalog) ListMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	items, err := c.repo.FindAllMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem returns one menu item by ID.
func (c *Catalog) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := c.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// DeleteMenuItem removes a menu item and its requirements. Orders keep their
// own name and price snapshots, so history survives the deletion.
func (c *Catalog) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if err := c.repo.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
