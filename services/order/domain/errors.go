// Package domain holds order-context domain errors.
package domain

import "errors"

// Sentinel errors for the order bounded context. Handlers map these to HTTP
// status codes in pkg/errhttp; always wrap with fmt.Errorf("...: %w", err)
// so errors.Is() matching keeps working.
var (
	// ErrOrderNotFound is returned when an order ID does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotOpen is returned when lines are changed on an order that is
	// no longer open.
	ErrOrderNotOpen = errors.New("order is not open")

	// ErrEmptyOrder is returned when payment is attempted on an order with
	// no lines.
	ErrEmptyOrder = errors.New("order has no lines")

	// ErrAlreadyPaid is returned when a paid order is paid again.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrInvalidQuantity is returned for non-positive line quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidPaymentMethod is returned for unknown payment methods.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrLineNotFound is returned when a line ID is not on the order.
	ErrLineNotFound = errors.New("order line not found")

	// ErrNoActiveOrder is returned when a table has no unpaid order.
	ErrNoActiveOrder = errors.New("no active order for table")

	// ErrConsistencyViolation is returned when the order and table states
	// disagree, e.g. a payment finds the table not occupied.
	ErrConsistencyViolation = errors.New("order and table state are inconsistent")
)
