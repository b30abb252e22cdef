package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	menudomain "github.com/ghuser/tableside/services/menu/domain"
	"github.com/ghuser/tableside/services/menu/domain/models"
	"github.com/ghuser/tableside/services/menu/domain/repositories"
)

// StockChecker validates requirement quantities against available stock.
// Satisfied by the inventory context's StockLedger.
type StockChecker interface {
	Reserve(ctx context.Context, ingredientID uuid.UUID, qty decimal.Decimal) error
}

// PendingRequirement is a not-yet-committed recipe entry in a draft.
type PendingRequirement struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// Draft holds the transient requirement set while a menu item is being
// authored. Nothing in a draft is persisted until Commit.
type Draft struct {
	pending []PendingRequirement
}

// Requirements returns a copy of the pending entries in insertion order.
func (d *Draft) Requirements() []PendingRequirement {
	out := make([]PendingRequirement, len(d.pending))
	copy(out, d.pending)
	return out
}

// RecipeBuilder assembles candidate recipes, validating each addition against
// the stock ledger before acceptance, and commits menu items all-or-nothing.
type RecipeBuilder struct {
	stock StockChecker
	repo  repositories.MenuRepository
}

// NewRecipeBuilder returns a RecipeBuilder wired with the given stock checker
// and menu repository.
func NewRecipeBuilder(stock StockChecker, repo repositories.MenuRepository) *RecipeBuilder {
	return &RecipeBuilder{stock: stock, repo: repo}
}

// NewDraft starts an empty authoring session.
func (b *RecipeBuilder) NewDraft() *Draft {
	return &Draft{}
}

// AddRequirement validates and appends a pending requirement to the draft.
// A rejected addition leaves the pending set unchanged. Duplicate ingredient
// entries are allowed and validated independently, not merged.
func (b *RecipeBuilder) AddRequirement(ctx context.Context, d *Draft, ingredientID uuid.UUID, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: %s", menudomain.ErrInvalidQuantity, qty)
	}
	if err := b.stock.Reserve(ctx, ingredientID, qty); err != nil {
		return fmt.Errorf("validate requirement: %w", err)
	}
	d.pending = append(d.pending, PendingRequirement{IngredientID: ingredientID, Quantity: qty})
	return nil
}

// RemoveRequirement withdraws the pending entry at index.
func (b *RecipeBuilder) RemoveRequirement(d *Draft, index int) error {
	if index < 0 || index >= len(d.pending) {
		return fmt.Errorf("%w: index %d", menudomain.ErrRequirementNotFound, index)
	}
	d.pending = append(d.pending[:index], d.pending[index+1:]...)
	return nil
}

// Commit re-validates every pending requirement and persists the menu item
// together with its requirements in one transaction. Any failure leaves
// nothing persisted; the draft is untouched and can be corrected and
// re-committed.
func (b *RecipeBuilder) Commit(ctx context.Context, d *Draft, categoryID uuid.UUID, name, description string, price decimal.Decimal) (*models.MenuItem, error) {
	item, err := models.NewMenuItem(categoryID, name, description, price)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", menudomain.ErrInvalidMenuItem, err)
	}

	// Stock may have dropped between AddRequirement and Commit; every entry is
	// checked again before anything is written.
	for _, p := range d.pending {
		if err := b.stock.Reserve(ctx, p.IngredientID, p.Quantity); err != nil {
			return nil, fmt.Errorf("validate requirement: %w", err)
		}
		item.Requirements = append(item.Requirements, models.RecipeRequirement{
			ID:           uuid.New(),
			MenuItemID:   item.ID,
			IngredientID: p.IngredientID,
			Quantity:     p.Quantity,
		})
	}

	if err := b.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("commit menu item: %w", err)
	}
	return item, nil
}
