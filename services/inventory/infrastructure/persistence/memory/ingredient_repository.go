// Package memory holds in-memory repository implementations used by tests
// and by the testing environment, where no Postgres instance is available.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	invdomain "github.com/ghuser/tableside/services/inventory/domain"
	"github.com/ghuser/tableside/services/inventory/domain/models"
)

// IngredientRepository implements repositories.IngredientRepository in memory.
type IngredientRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Ingredient
}

// NewIngredientRepository returns an empty in-memory repository.
func NewIngredientRepository() *IngredientRepository {
	return &IngredientRepository{items: make(map[uuid.UUID]models.Ingredient)}
}

func (r *IngredientRepository) Save(_ context.Context, ing *models.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == ing.Name {
			return invdomain.ErrIngredientExists
		}
	}
	r.items[ing.ID] = *ing
	return nil
}

func (r *IngredientRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ing, ok := r.items[id]
	if !ok {
		return nil, invdomain.ErrIngredientNotFound
	}
	out := ing
	return &out, nil
}

func (r *IngredientRepository) FindAll(_ context.Context) ([]*models.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Ingredient, 0, len(r.items))
	for _, ing := range r.items {
		c := ing
		out = append(out, &c)
	}
	return out, nil
}

func (r *IngredientRepository) Update(_ context.Context, ing *models.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[ing.ID]; !ok {
		return invdomain.ErrIngredientNotFound
	}
	r.items[ing.ID] = *ing
	return nil
}

func (r *IngredientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return invdomain.ErrIngredientNotFound
	}
	delete(r.items, id)
	return nil
}
