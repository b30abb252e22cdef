// Package memory holds the in-memory order repository used by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	orderdomain "github.com/ghuser/tableside/services/order/domain"
	"github.com/ghuser/tableside/services/order/domain/models"
)

// ReleaseTableFunc applies the table side of a payment together with the
// order update, mirroring the single transaction the SQL implementation
// uses. Tests pass a closure over the in-memory table repository.
type ReleaseTableFunc func(ctx context.Context, tableID uuid.UUID, status string, cleaningUntil *time.Time) error

// OrderRepository implements repositories.OrderRepository in memory.
type OrderRepository struct {
	mu      sync.RWMutex
	orders  map[uuid.UUID]models.Order
	release ReleaseTableFunc
}

// NewOrderRepository returns an empty in-memory repository. release may be
// nil when no test exercises MarkPaid.
func NewOrderRepository(release ReleaseTableFunc) *OrderRepository {
	return &OrderRepository{
		orders:  make(map[uuid.UUID]models.Order),
		release: release,
	}
}

func (r *OrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, orderdomain.ErrOrderNotFound
	}
	cp := copyOrder(&o)
	return &cp, nil
}

func (r *OrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return orderdomain.ErrOrderNotFound
	}
	r.orders[order.ID] = copyOrder(order)
	return nil
}

// ActiveForTable returns the table's unpaid order. Two active orders for one
// table can only mean corrupted state and surface as ErrConsistencyViolation,
// matching the SQL implementation.
func (r *OrderRepository) ActiveForTable(_ context.Context, tableID uuid.UUID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *models.Order
	for _, o := range r.orders {
		if o.TableID != tableID || !o.Active() {
			continue
		}
		if found != nil {
			return nil, orderdomain.ErrConsistencyViolation
		}
		cp := copyOrder(&o)
		found = &cp
	}
	if found == nil {
		return nil, orderdomain.ErrNoActiveOrder
	}
	return found, nil
}

// MarkPaid stores the paid order and releases its table through the
// configured closure. The release runs first; when it fails, the order is
// left untouched so both records stay consistent.
func (r *OrderRepository) MarkPaid(ctx context.Context, order *models.Order, tableStatus string, cleaningUntil *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return orderdomain.ErrOrderNotFound
	}
	if r.release != nil {
		if err := r.release(ctx, order.TableID, tableStatus, cleaningUntil); err != nil {
			return err
		}
	}
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func copyOrder(o *models.Order) models.Order {
	cp := *o
	cp.Lines = append([]models.OrderLine(nil), o.Lines...)
	return cp
}
