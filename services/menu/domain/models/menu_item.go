package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeRequirement binds a menu item to an ingredient quantity one unit of
// the item consumes. The quantity is validated against available stock when
// the requirement is accepted into the recipe, not per sale.
type RecipeRequirement struct {
	ID           uuid.UUID
	MenuItemID   uuid.UUID
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// MenuItem is the catalog aggregate: a priced dish in one category owning
// zero or more recipe requirements.
type MenuItem struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Description  string
	Price        decimal.Decimal
	Requirements []RecipeRequirement
}

// NewMenuItem constructs a valid MenuItem with a generated ID and no
// requirements yet; requirements are attached by the recipe builder commit.
func NewMenuItem(categoryID uuid.UUID, name, description string, price decimal.Decimal) (*MenuItem, error) {
	if name == "" {
		return nil, fmt.Errorf("menu item name must not be empty")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("menu item name must not exceed 100 characters")
	}
	if len(description) > 500 {
		return nil, fmt.Errorf("menu item description must not exceed 500 characters")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("menu item price must not be negative")
	}
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("menu item category must be set")
	}
	return &MenuItem{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Price:       price,
	}, nil
}
