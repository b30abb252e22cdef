package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics published by the order context.
const (
	// TopicOrderOpened is published when a new order is persisted.
	TopicOrderOpened = "order.opened"
	// TopicOrderPaid is published within the payment transaction, so the
	// reporting feed sees exactly the orders that committed.
	TopicOrderPaid = "order.paid"
)

// OrderOpenedEvent is published after a new order is persisted.
type OrderOpenedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OrderID    uuid.UUID `json:"order_id"`
	TableID    uuid.UUID `json:"table_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderPaidEvent is published after an order is settled and its table
// released.
type OrderPaidEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	Version       int             `json:"version"`
	OrderID       uuid.UUID       `json:"order_id"`
	TableID       uuid.UUID       `json:"table_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
