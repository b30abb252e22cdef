// Package repositories declares the persistence ports for the table context.
package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/tableside/services/table/domain/models"
)

// TableRepository is the persistence port for dining tables.
// Implementations return domain sentinel errors (ErrTableNotFound,
// ErrTableExists) so callers can match with errors.Is().
type TableRepository interface {
	// Save persists a new table. Returns ErrTableExists when the table
	// number is already taken.
	Save(ctx context.Context, table *models.Table) error

	// GetByID retrieves a table by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)

	// FindAll returns every table ordered by number.
	FindAll(ctx context.Context) ([]*models.Table, error)

	// Update persists status, cleaning deadline, and capacity changes.
	Update(ctx context.Context, table *models.Table) error

	// Delete removes a table by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
