package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewIngredient(t *testing.T) {
	t.Run("valid ingredient", func(t *testing.T) {
		ing, err := NewIngredient("Tomatoes", "kg", decimal.NewFromInt(10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ing.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Fatal("expected non-zero UUID")
		}
		if ing.Name != "Tomatoes" || ing.Unit != "kg" {
			t.Fatalf("unexpected fields: %+v", ing)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		if _, err := NewIngredient("", "kg", decimal.Zero); err == nil {
			t.Fatal("expected error for empty name")
		}
	})

	t.Run("rejects empty unit", func(t *testing.T) {
		if _, err := NewIngredient("Salt", "", decimal.Zero); err == nil {
			t.Fatal("expected error for empty unit")
		}
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		if _, err := NewIngredient("Salt", "kg", decimal.NewFromInt(-1)); err == nil {
			t.Fatal("expected error for negative stock")
		}
	})
}

func TestIngredient_CanSupply(t *testing.T) {
	ing, _ := NewIngredient("Cheese", "kg", decimal.RequireFromString("5"))

	if !ing.CanSupply(decimal.RequireFromString("5")) {
		t.Fatal("expected full stock to be suppliable")
	}
	if ing.CanSupply(decimal.RequireFromString("5.01")) {
		t.Fatal("expected quantity above stock to be rejected")
	}
}

func TestIngredient_Restock(t *testing.T) {
	ing, _ := NewIngredient("Flour", "kg", decimal.NewFromInt(20))

	if err := ing.Restock(decimal.RequireFromString("2.5")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ing.StockQuantity.Equal(decimal.RequireFromString("22.5")) {
		t.Fatalf("expected 22.5, got %s", ing.StockQuantity)
	}

	if err := ing.Restock(decimal.NewFromInt(-1)); err == nil {
		t.Fatal("expected error for negative delta")
	}
	if !ing.StockQuantity.Equal(decimal.RequireFromString("22.5")) {
		t.Fatalf("stock must be unchanged after rejected restock, got %s", ing.StockQuantity)
	}
}
