package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is the stock-tracked aggregate of the inventory bounded context.
// StockQuantity is mutated only through the stock ledger or Restock; it never
// goes negative.
type Ingredient struct {
	ID            uuid.UUID
	Name          string
	Unit          string // e.g. kg, liters, pcs
	StockQuantity decimal.Decimal
}

// NewIngredient constructs a valid Ingredient with a generated ID.
func NewIngredient(name, unit string, stock decimal.Decimal) (*Ingredient, error) {
	if name == "" {
		return nil, fmt.Errorf("ingredient name must not be empty")
	}
	if unit == "" {
		return nil, fmt.Errorf("ingredient unit must not be empty")
	}
	if stock.IsNegative() {
		return nil, fmt.Errorf("ingredient stock must not be negative")
	}
	return &Ingredient{
		ID:            uuid.New(),
		Name:          name,
		Unit:          unit,
		StockQuantity: stock,
	}, nil
}

// CanSupply reports whether qty is available in stock. No side effect.
func (i *Ingredient) CanSupply(qty decimal.Decimal) bool {
	return qty.LessThanOrEqual(i.StockQuantity)
}

// Restock increases stock by delta. No upper bound.
func (i *Ingredient) Restock(delta decimal.Decimal) error {
	if !delta.IsPositive() {
		return fmt.Errorf("restock delta must be positive, got %s", delta)
	}
	i.StockQuantity = i.StockQuantity.Add(delta)
	return nil
}
