package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/tableside/pkg/cache"
	"github.com/ghuser/tableside/pkg/logger"
	menumodels "github.com/ghuser/tableside/services/menu/domain/models"
	"github.com/ghuser/tableside/services/order/domain/models"
	"github.com/ghuser/tableside/services/order/domain/repositories"
	tablemodels "github.com/ghuser/tableside/services/table/domain/models"
)

// FloorGate is what the engine needs from the table registry: seat and
// release tables, and serialize work per table.
type FloorGate interface {
	TryOpenOrder(ctx context.Context, tableID uuid.UUID) (*tablemodels.Table, error)
	RollbackOpen(ctx context.Context, tableID uuid.UUID) error
	WithTableLock(id uuid.UUID, fn func() error) error
	ReleaseTarget(now time.Time) (tablemodels.Status, *time.Time)
	NotifyReleased(ctx context.Context, table *tablemodels.Table)
	Get(ctx context.Context, id uuid.UUID) (*tablemodels.Table, error)
}

// MenuReader resolves menu items so lines can snapshot name and price.
type MenuReader interface {
	GetMenuItem(ctx context.Context, id uuid.UUID) (*menumodels.MenuItem, error)
}

// Engine drives the order lifecycle: open against a free table, compose
// lines, serve, and settle. Settling releases the table in the same
// transaction as the order update.
type Engine struct {
	repo   repositories.OrderRepository
	gate   FloorGate
	menu   MenuReader
	orders *cache.ActiveOrderCache // nil in tests; caching is best-effort
	log    logger.Logger
	now    func() time.Time
}

// NewEngine returns an Engine wired to the given floor gate and menu.
func NewEngine(repo repositories.OrderRepository, gate FloorGate, menu MenuReader, orders *cache.ActiveOrderCache, log logger.Logger) *Engine {
	return &Engine{
		repo:   repo,
		gate:   gate,
		menu:   menu,
		orders: orders,
		log:    log,
		now:    time.Now,
	}
}

// Open seats a party and creates their order. The table flips to occupied
// first; if persisting the order then fails, the seating is rolled back so
// the table is not stranded in occupied with no order.
func (e *Engine) Open(ctx context.Context, tableID uuid.UUID) (*models.Order, error) {
	table, err := e.gate.TryOpenOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}

	order := models.NewOrder(table.ID)
	if err := e.repo.Create(ctx, order); err != nil {
		if rbErr := e.gate.RollbackOpen(ctx, table.ID); rbErr != nil {
			e.log.ErrorContext(ctx, "failed to roll back table after order create failure",
				"table_id", table.ID, "error", rbErr)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	e.cacheActive(ctx, order)
	return order, nil
}

// Get retrieves an order with its lines.
func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return e.repo.GetByID(ctx, id)
}

// ActiveOrderForTable returns the table's unpaid order. Reads through the
// Redis cache; a miss falls back to the repository and warms the cache.
func (e *Engine) ActiveOrderForTable(ctx context.Context, tableID uuid.UUID) (*models.Order, error) {
	if e.orders != nil {
		cached, err := e.orders.Get(ctx, tableID)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			e.log.WarnContext(ctx, "active order cache read failed", "table_id", tableID, "error", err)
		}
	}

	order, err := e.repo.ActiveForTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	e.cacheActive(ctx, order)
	return order, nil
}

// AddLine puts a menu item on the order, snapshotting its current name and
// price.
func (e *Engine) AddLine(ctx context.Context, orderID, menuItemID uuid.UUID, quantity int) (*models.Order, error) {
	order, err := e.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item, err := e.menu.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if err := order.AddLine(item.ID, item.Name, item.Price, quantity); err != nil {
		return nil, err
	}
	if err := e.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	e.cacheActive(ctx, order)
	return order, nil
}

// RemoveLine drops a line from an open order.
func (e *Engine) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*models.Order, error) {
	order, err := e.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveLine(lineID); err != nil {
		return nil, err
	}
	if err := e.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	e.cacheActive(ctx, order)
	return order, nil
}

// MarkServed records that the food is out.
func (e *Engine) MarkServed(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := e.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkServed(e.now()); err != nil {
		return nil, err
	}
	if err := e.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	e.cacheActive(ctx, order)
	return order, nil
}

// CompletePayment settles the order and releases its table, atomically.
// Runs under the table lock so it serializes with seatings of the same
// table. An empty order cannot be paid and keeps its table.
func (e *Engine) CompletePayment(ctx context.Context, orderID uuid.UUID, method string) (*models.Order, error) {
	pm, err := models.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}

	order, err := e.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var paid *models.Order
	err = e.gate.WithTableLock(order.TableID, func() error {
		o, err := e.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		now := e.now()
		if err := o.CompletePayment(pm, now); err != nil {
			return err
		}
		status, until := e.gate.ReleaseTarget(now)
		if err := e.repo.MarkPaid(ctx, o, string(status), until); err != nil {
			return err
		}
		paid = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.dropActive(ctx, paid.TableID)

	table, err := e.gate.Get(ctx, paid.TableID)
	if err != nil {
		e.log.WarnContext(ctx, "paid order's table not found for release notification",
			"table_id", paid.TableID, "error", err)
		return paid, nil
	}
	e.gate.NotifyReleased(ctx, table)
	return paid, nil
}

func (e *Engine) cacheActive(ctx context.Context, order *models.Order) {
	if e.orders == nil || !order.Active() {
		return
	}
	if err := e.orders.Set(ctx, toCached(order)); err != nil {
		e.log.WarnContext(ctx, "active order cache write failed", "order_id", order.ID, "error", err)
	}
}

func (e *Engine) dropActive(ctx context.Context, tableID uuid.UUID) {
	if e.orders == nil {
		return
	}
	if err := e.orders.Delete(ctx, tableID); err != nil {
		e.log.WarnContext(ctx, "active order cache delete failed", "table_id", tableID, "error", err)
	}
}

func toCached(order *models.Order) *cache.CachedOrder {
	lines := make([]cache.CachedOrderLine, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = cache.CachedOrderLine{
			ID:         l.ID,
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		}
	}
	return &cache.CachedOrder{
		ID:       order.ID,
		TableID:  order.TableID,
		Status:   string(order.Status),
		Total:    order.Total,
		OpenedAt: order.OpenedAt,
		Lines:    lines,
	}
}

func fromCached(c *cache.CachedOrder) *models.Order {
	lines := make([]models.OrderLine, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = models.OrderLine{
			ID:         l.ID,
			OrderID:    c.ID,
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			UnitPrice:  l.UnitPrice,
			Quantity:   l.Quantity,
		}
	}
	return &models.Order{
		ID:       c.ID,
		TableID:  c.TableID,
		Status:   models.Status(c.Status),
		Total:    c.Total,
		OpenedAt: c.OpenedAt,
		Lines:    lines,
	}
}
