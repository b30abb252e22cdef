// Package memory holds the in-memory menu repository used by tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	menudomain "github.com/ghuser/tableside/services/menu/domain"
	"github.com/ghuser/tableside/services/menu/domain/models"
)

// MenuRepository implements repositories.MenuRepository in memory.
type MenuRepository struct {
	mu         sync.RWMutex
	items      map[uuid.UUID]models.MenuItem
	categories map[uuid.UUID]models.Category
}

// NewMenuRepository returns an empty in-memory repository.
func NewMenuRepository() *MenuRepository {
	return &MenuRepository{
		items:      make(map[uuid.UUID]models.MenuItem),
		categories: make(map[uuid.UUID]models.Category),
	}
}

func (r *MenuRepository) CreateMenuItem(_ context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[item.CategoryID]; !ok {
		return menudomain.ErrCategoryNotFound
	}
	cp := *item
	cp.Requirements = append([]models.RecipeRequirement(nil), item.Requirements...)
	r.items[item.ID] = cp
	return nil
}

func (r *MenuRepository) GetMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, menudomain.ErrMenuItemNotFound
	}
	cp := item
	cp.Requirements = append([]models.RecipeRequirement(nil), item.Requirements...)
	return &cp, nil
}

func (r *MenuRepository) FindAllMenuItems(_ context.Context) ([]*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		cp := item
		cp.Requirements = append([]models.RecipeRequirement(nil), item.Requirements...)
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MenuRepository) DeleteMenuItem(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return menudomain.ErrMenuItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MenuRepository) ListCategories(_ context.Context) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MenuRepository) CreateCategory(_ context.Context, c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = *c
	return nil
}
