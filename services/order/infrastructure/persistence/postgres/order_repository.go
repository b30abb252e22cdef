package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/tableside/pkg/database"
	"github.com/ghuser/tableside/pkg/events"
	orderdomain "github.com/ghuser/tableside/services/order/domain"
	domainevents "github.com/ghuser/tableside/services/order/domain/events"
	"github.com/ghuser/tableside/services/order/domain/models"
)

// OrderRepository implements repositories.OrderRepository against PostgreSQL.
type OrderRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewOrderRepository returns an OrderRepository backed by the given pool and
// event bus. The bus publishes order lifecycle events within the same
// transaction as the row changes.
func NewOrderRepository(database *database.Database, bus *events.EventBus) *OrderRepository {
	return &OrderRepository{db: database, bus: bus}
}

// Create persists a new order with its lines and publishes an
// OrderOpenedEvent within the same transaction. A partial unique index on
// unpaid orders per table backstops the application-level lock; a violation
// surfaces as ErrConsistencyViolation.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, table_id, status, total, payment_method, opened_at, served_at, paid_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			order.ID, order.TableID, order.Status, order.Total,
			paymentMethodValue(order.PaymentMethod), order.OpenedAt, order.ServedAt, order.PaidAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return orderdomain.ErrConsistencyViolation
			}
			return fmt.Errorf("insert order: %w", err)
		}

		if err := insertLines(ctx, tx, order); err != nil {
			return err
		}

		if r.bus != nil {
			if err := r.publishOpened(tx, order); err != nil {
				return fmt.Errorf("publish order opened: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an order with its lines. Returns ErrOrderNotFound if not found.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, table_id, status, total, payment_method, opened_at, served_at, paid_at
		 FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orderdomain.ErrOrderNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update persists line and status changes. Lines are replaced wholesale,
// which keeps removals simple at the cost of rewriting a handful of rows.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $2, total = $3, payment_method = $4, served_at = $5, paid_at = $6
			 WHERE id = $1`,
			order.ID, order.Status, order.Total,
			paymentMethodValue(order.PaymentMethod), order.ServedAt, order.PaidAt)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return orderdomain.ErrOrderNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
			return fmt.Errorf("clear order lines: %w", err)
		}
		return insertLines(ctx, tx, order)
	})
}

// ActiveForTable returns the table's unpaid order, or ErrNoActiveOrder. The
// partial unique index guarantees at most one; should a second row ever
// appear anyway, the mismatch surfaces as ErrConsistencyViolation rather
// than an arbitrary pick.
func (r *OrderRepository) ActiveForTable(ctx context.Context, tableID uuid.UUID) (*models.Order, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, table_id, status, total, payment_method, opened_at, served_at, paid_at
		 FROM orders WHERE table_id = $1 AND status <> 'paid' LIMIT 2`, tableID)
	if err != nil {
		return nil, fmt.Errorf("query active order: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query active order: %w", err)
		}
		return nil, orderdomain.ErrNoActiveOrder
	}
	order, err := scanOrder(rows)
	if err != nil {
		return nil, err
	}
	if rows.Next() {
		return nil, orderdomain.ErrConsistencyViolation
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query active order: %w", err)
	}
	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid settles the order and releases its table in one transaction, and
// publishes an OrderPaidEvent within it. The table update is conditional on
// the table still being occupied; zero rows affected means the two records
// disagree and the whole transaction rolls back with ErrConsistencyViolation.
func (r *OrderRepository) MarkPaid(ctx context.Context, order *models.Order, tableStatus string, cleaningUntil *time.Time) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $2, total = $3, payment_method = $4, served_at = $5, paid_at = $6
			 WHERE id = $1 AND status <> 'paid'`,
			order.ID, order.Status, order.Total,
			paymentMethodValue(order.PaymentMethod), order.ServedAt, order.PaidAt)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return orderdomain.ErrAlreadyPaid
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE restaurant_tables SET status = $2, cleaning_until = $3
			 WHERE id = $1 AND status = 'occupied'`,
			order.TableID, tableStatus, cleaningUntil)
		if err != nil {
			return fmt.Errorf("release table: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return orderdomain.ErrConsistencyViolation
		}

		if r.bus != nil {
			if err := r.publishPaid(tx, order); err != nil {
				return fmt.Errorf("publish order paid: %w", err)
			}
		}
		return nil
	})
}

func (r *OrderRepository) publishOpened(tx *sql.Tx, order *models.Order) error {
	event := domainevents.OrderOpenedEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		TableID:    order.TableID,
		OccurredAt: order.OpenedAt,
	}
	return publish(r.bus, tx, domainevents.TopicOrderOpened, event.EventID, event)
}

func (r *OrderRepository) publishPaid(tx *sql.Tx, order *models.Order) error {
	event := domainevents.OrderPaidEvent{
		EventID:    uuid.New(),
		Version:    1,
		OrderID:    order.ID,
		TableID:    order.TableID,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	}
	if order.PaymentMethod != nil {
		event.PaymentMethod = string(*order.PaymentMethod)
	}
	if order.PaidAt != nil {
		event.OccurredAt = *order.PaidAt
	}
	return publish(r.bus, tx, domainevents.TopicOrderPaid, event.EventID, event)
}

func publish(bus *events.EventBus, tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

func insertLines(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	for _, l := range order.Lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_lines (id, order_id, menu_item_id, name, unit_price, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, l.OrderID, l.MenuItemID, l.Name, l.UnitPrice, l.Quantity); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) loadLines(ctx context.Context, order *models.Order) error {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, order_id, menu_item_id, name, unit_price, quantity
		 FROM order_lines WHERE order_id = $1`, order.ID)
	if err != nil {
		return fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.MenuItemID, &l.Name, &l.UnitPrice, &l.Quantity); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	// table_id goes NULL when the table is deleted after the order is paid.
	var tableID uuid.NullUUID
	var method sql.NullString
	var servedAt, paidAt sql.NullTime
	if err := row.Scan(&o.ID, &tableID, &o.Status, &o.Total, &method, &o.OpenedAt, &servedAt, &paidAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.TableID = tableID.UUID
	if method.Valid {
		m := models.PaymentMethod(method.String)
		o.PaymentMethod = &m
	}
	if servedAt.Valid {
		o.ServedAt = &servedAt.Time
	}
	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}
	return &o, nil
}

func paymentMethodValue(m *models.PaymentMethod) any {
	if m == nil {
		return nil
	}
	return string(*m)
}
