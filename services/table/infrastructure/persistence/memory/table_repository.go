// Package memory holds the in-memory table repository used by tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	tabledomain "github.com/ghuser/tableside/services/table/domain"
	"github.com/ghuser/tableside/services/table/domain/models"
)

// TableRepository implements repositories.TableRepository in memory.
type TableRepository struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]models.Table
}

// NewTableRepository returns an empty in-memory repository.
func NewTableRepository() *TableRepository {
	return &TableRepository{tables: make(map[uuid.UUID]models.Table)}
}

func (r *TableRepository) Save(_ context.Context, table *models.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tables {
		if t.Number == table.Number {
			return tabledomain.ErrTableExists
		}
	}
	r.tables[table.ID] = *table
	return nil
}

func (r *TableRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, tabledomain.ErrTableNotFound
	}
	cp := t
	return &cp, nil
}

func (r *TableRepository) FindAll(_ context.Context) ([]*models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Table, 0, len(r.tables))
	for _, t := range r.tables {
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *TableRepository) Update(_ context.Context, table *models.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[table.ID]; !ok {
		return tabledomain.ErrTableNotFound
	}
	r.tables[table.ID] = *table
	return nil
}

func (r *TableRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; !ok {
		return tabledomain.ErrTableNotFound
	}
	delete(r.tables, id)
	return nil
}
