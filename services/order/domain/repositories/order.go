// Package repositories declares the persistence ports for the order context.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/tableside/services/order/domain/models"
)

// OrderRepository is the persistence port for orders.
// Implementations return domain sentinel errors (ErrOrderNotFound,
// ErrNoActiveOrder, ErrConsistencyViolation) so callers can match with
// errors.Is().
type OrderRepository interface {
	// Create persists a new order with its lines.
	Create(ctx context.Context, order *models.Order) error

	// GetByID retrieves an order with its lines.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// Update persists line and status changes.
	Update(ctx context.Context, order *models.Order) error

	// ActiveForTable returns the table's unpaid order, or ErrNoActiveOrder.
	ActiveForTable(ctx context.Context, tableID uuid.UUID) (*models.Order, error)

	// MarkPaid persists the paid order and releases its table in one
	// atomic step. tableStatus and cleaningUntil describe the state the
	// table moves to. Returns ErrConsistencyViolation when the table is
	// not occupied, leaving both records untouched.
	MarkPaid(ctx context.Context, order *models.Order, tableStatus string, cleaningUntil *time.Time) error
}
