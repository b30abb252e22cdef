package domain

import "errors"

// Sentinel errors for the menu domain. Use errors.Is() to check these.
var (
	// ErrMenuItemNotFound indicates the requested menu item does not exist.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidMenuItem indicates the menu item violates domain constraints.
	ErrInvalidMenuItem = errors.New("invalid menu item")

	// ErrInvalidQuantity indicates a recipe requirement quantity is zero or negative.
	ErrInvalidQuantity = errors.New("invalid requirement quantity")

	// ErrRequirementNotFound indicates a pending requirement index is out of range.
	ErrRequirementNotFound = errors.New("recipe requirement not found")
)
