package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/locking"
	invdomain "github.com/ghuser/tableside/services/inventory/domain"
	"github.com/ghuser/tableside/services/inventory/domain/models"
	"github.com/ghuser/tableside/services/inventory/domain/repositories"
)

// StockLedger coordinates ingredient stock. Reserve is a validation gate, not
// a running decrement: recipe requirements are checked against stock at
// authoring time and stock is only mutated by Restock or administrative edits.
//
// Check-then-decide sequences are serialized per ingredient so two concurrent
// reservations cannot both pass against the same remaining quantity.
type StockLedger struct {
	repo  repositories.IngredientRepository
	locks *locking.KeyedMutex
}

// NewStockLedger returns a StockLedger backed by the given repository.
func NewStockLedger(repo repositories.IngredientRepository) *StockLedger {
	return &StockLedger{
		repo:  repo,
		locks: locking.NewKeyedMutex(),
	}
}

// CheckAvailable reports whether qty of the ingredient is in stock.
// No side effect.
func (l *StockLedger) CheckAvailable(ctx context.Context, ingredientID uuid.UUID, qty decimal.Decimal) (bool, error) {
	ing, err := l.repo.GetByID(ctx, ingredientID)
	if err != nil {
		return false, fmt.Errorf("check ingredient: %w", err)
	}
	return ing.CanSupply(qty), nil
}

// Reserve validates that qty of the ingredient is available. On failure it
// returns an *invdomain.InsufficientStockError carrying the requested and
// available quantities plus the unit. The check is serialized per ingredient.
func (l *StockLedger) Reserve(ctx context.Context, ingredientID uuid.UUID, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: %s", invdomain.ErrInvalidQuantity, qty)
	}
	return l.locks.Do(ingredientID, func() error {
		ing, err := l.repo.GetByID(ctx, ingredientID)
		if err != nil {
			return fmt.Errorf("reserve ingredient: %w", err)
		}
		if !ing.CanSupply(qty) {
			return &invdomain.InsufficientStockError{
				IngredientName: ing.Name,
				Requested:      qty,
				Available:      ing.StockQuantity,
				Unit:           ing.Unit,
			}
		}
		return nil
	})
}

// Restock increases the ingredient's stock by delta.
func (l *StockLedger) Restock(ctx context.Context, ingredientID uuid.UUID, delta decimal.Decimal) (*models.Ingredient, error) {
	if !delta.IsPositive() {
		return nil, fmt.Errorf("%w: %s", invdomain.ErrInvalidQuantity, delta)
	}
	var out *models.Ingredient
	err := l.locks.Do(ingredientID, func() error {
		ing, err := l.repo.GetByID(ctx, ingredientID)
		if err != nil {
			return fmt.Errorf("restock ingredient: %w", err)
		}
		if err := ing.Restock(delta); err != nil {
			return fmt.Errorf("%w: %s", invdomain.ErrInvalidQuantity, delta)
		}
		if err := l.repo.Update(ctx, ing); err != nil {
			return fmt.Errorf("save ingredient: %w", err)
		}
		out = ing
		return nil
	})
	return out, err
}

// Create registers a new ingredient with an initial stock quantity.
func (l *StockLedger) Create(ctx context.Context, name, unit string, stock decimal.Decimal) (*models.Ingredient, error) {
	ing, err := models.NewIngredient(name, unit, stock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidIngredient, err)
	}
	if err := l.repo.Save(ctx, ing); err != nil {
		return nil, fmt.Errorf("save ingredient: %w", err)
	}
	return ing, nil
}

// List returns all ingredients with their stock quantities.
func (l *StockLedger) List(ctx context.Context) ([]*models.Ingredient, error) {
	ings, err := l.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ings, nil
}

// Delete removes an ingredient from the inventory.
func (l *StockLedger) Delete(ctx context.Context, id uuid.UUID) error {
	if err := l.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
