package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	orderdomain "github.com/ghuser/tableside/services/order/domain"
	"github.com/ghuser/tableside/services/order/domain/models"
)

func TestOrderRepository_ActiveForTable(t *testing.T) {
	ctx := context.Background()
	tableID := uuid.New()

	t.Run("no active order", func(t *testing.T) {
		repo := NewOrderRepository(nil)
		if _, err := repo.ActiveForTable(ctx, tableID); !errors.Is(err, orderdomain.ErrNoActiveOrder) {
			t.Fatalf("expected ErrNoActiveOrder, got %v", err)
		}
	})

	t.Run("returns the single active order", func(t *testing.T) {
		repo := NewOrderRepository(nil)
		order := models.NewOrder(tableID)
		_ = repo.Create(ctx, order)

		got, err := repo.ActiveForTable(ctx, tableID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != order.ID {
			t.Fatalf("expected order %s, got %s", order.ID, got.ID)
		}
	})

	t.Run("two active orders for one table is a consistency violation", func(t *testing.T) {
		repo := NewOrderRepository(nil)
		_ = repo.Create(ctx, models.NewOrder(tableID))
		_ = repo.Create(ctx, models.NewOrder(tableID))

		if _, err := repo.ActiveForTable(ctx, tableID); !errors.Is(err, orderdomain.ErrConsistencyViolation) {
			t.Fatalf("expected ErrConsistencyViolation, got %v", err)
		}
	})
}
