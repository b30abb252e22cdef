package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderdomain "github.com/ghuser/tableside/services/order/domain"
)

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusOpen means the order accepts line changes.
	StatusOpen Status = "open"
	// StatusServed means the food has been brought out; lines are frozen
	// but payment is still pending.
	StatusServed Status = "served"
	// StatusPaid is terminal.
	StatusPaid Status = "paid"
)

// PaymentMethod is how an order was settled.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod validates a wire-level payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	default:
		return "", orderdomain.ErrInvalidPaymentMethod
	}
}

// OrderLine is one menu item on an order. Name and UnitPrice are snapshots
// taken when the line was added, so later menu edits never change what the
// guest owes.
type OrderLine struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// Subtotal is UnitPrice times Quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the aggregate root for a table's bill. Total is derived from the
// lines and recomputed on every mutation.
type Order struct {
	ID            uuid.UUID
	TableID       uuid.UUID
	Status        Status
	Total         decimal.Decimal
	PaymentMethod *PaymentMethod
	OpenedAt      time.Time
	ServedAt      *time.Time
	PaidAt        *time.Time
	Lines         []OrderLine
}

// NewOrder opens an empty order for the given table.
func NewOrder(tableID uuid.UUID) *Order {
	return &Order{
		ID:       uuid.New(),
		TableID:  tableID,
		Status:   StatusOpen,
		Total:    decimal.Zero,
		OpenedAt: time.Now().UTC(),
	}
}

// AddLine adds a menu item to an open order, snapshotting name and price.
// Adding an item that is already on the order increments that line's
// quantity; the original price snapshot is kept.
func (o *Order) AddLine(menuItemID uuid.UUID, name string, unitPrice decimal.Decimal, quantity int) error {
	if err := o.requireOpen(); err != nil {
		return err
	}
	if quantity <= 0 {
		return orderdomain.ErrInvalidQuantity
	}

	for i := range o.Lines {
		if o.Lines[i].MenuItemID == menuItemID {
			o.Lines[i].Quantity += quantity
			o.recomputeTotal()
			return nil
		}
	}

	o.Lines = append(o.Lines, OrderLine{
		ID:         uuid.New(),
		OrderID:    o.ID,
		MenuItemID: menuItemID,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
	})
	o.recomputeTotal()
	return nil
}

// RemoveLine drops a line from an open order.
func (o *Order) RemoveLine(lineID uuid.UUID) error {
	if err := o.requireOpen(); err != nil {
		return err
	}
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			o.recomputeTotal()
			return nil
		}
	}
	return orderdomain.ErrLineNotFound
}

// MarkServed freezes the order's lines once the food is out. Serving an
// already served order is a no-op; the first timestamp stands.
func (o *Order) MarkServed(now time.Time) error {
	switch o.Status {
	case StatusPaid:
		return orderdomain.ErrAlreadyPaid
	case StatusServed:
		return nil
	}
	o.Status = StatusServed
	t := now
	o.ServedAt = &t
	return nil
}

// FinalizeSale freezes the bill for settlement: the total is recomputed from
// the lines one last time. An empty order cannot be finalized and a paid
// order is already settled.
func (o *Order) FinalizeSale() error {
	if o.Status == StatusPaid {
		return orderdomain.ErrAlreadyPaid
	}
	if len(o.Lines) == 0 {
		return orderdomain.ErrEmptyOrder
	}
	o.recomputeTotal()
	return nil
}

// CompletePayment finalizes and settles the order. Works from open or
// served; an order paid before serving records its served timestamp here so
// every paid order carries one.
func (o *Order) CompletePayment(method PaymentMethod, now time.Time) error {
	if err := o.FinalizeSale(); err != nil {
		return err
	}
	o.Status = StatusPaid
	o.PaymentMethod = &method
	t := now
	if o.ServedAt == nil {
		o.ServedAt = &t
	}
	o.PaidAt = &t
	return nil
}

// Active reports whether the order still holds its table.
func (o *Order) Active() bool {
	return o.Status != StatusPaid
}

func (o *Order) requireOpen() error {
	switch o.Status {
	case StatusPaid:
		return orderdomain.ErrAlreadyPaid
	case StatusServed:
		return orderdomain.ErrOrderNotOpen
	}
	return nil
}

func (o *Order) recomputeTotal() {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	o.Total = total
}
