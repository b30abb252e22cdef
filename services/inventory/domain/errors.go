package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrIngredientNotFound indicates the requested ingredient does not exist.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrIngredientExists indicates an ingredient with the same name already exists.
	ErrIngredientExists = errors.New("ingredient already exists")

	// ErrInvalidQuantity indicates a zero or negative quantity was supplied.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidIngredient indicates the ingredient violates domain constraints.
	ErrInvalidIngredient = errors.New("invalid ingredient")

	// ErrInsufficientStock indicates a requested quantity exceeds available stock.
	// Reservation failures carry an *InsufficientStockError with the details.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a failed stock reservation with enough detail
// for a precise user-facing message. It matches ErrInsufficientStock under
// errors.Is().
type InsufficientStockError struct {
	IngredientName string
	Requested      decimal.Decimal
	Available      decimal.Decimal
	Unit           string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %s %s, available %s %s",
		e.IngredientName, e.Requested, e.Unit, e.Available, e.Unit)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
