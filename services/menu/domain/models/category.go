package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Category groups menu items on the card.
type Category struct {
	ID   uuid.UUID
	Name string
}

// NewCategory constructs a valid Category with a generated ID.
func NewCategory(name string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("category name must not exceed 100 characters")
	}
	return &Category{ID: uuid.New(), Name: name}, nil
}
