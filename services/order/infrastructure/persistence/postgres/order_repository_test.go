package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/config"
	"github.com/ghuser/tableside/pkg/database"
	"github.com/ghuser/tableside/pkg/logger"
	"github.com/ghuser/tableside/services/order/domain/models"
	tablemodels "github.com/ghuser/tableside/services/table/domain/models"
	tablepg "github.com/ghuser/tableside/services/table/infrastructure/persistence/postgres"
)

// Integration tests — skipped unless DATABASE_URL points at a migrated database.
func TestOrderRepositoryIntegration(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	log := logger.New(&config.Config{LogLevel: "error"})
	pool, err := database.NewPool(ctx, dbURL, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	t.Run("DeleteTable_KeepsPaidOrderHistory", func(t *testing.T) {
		tableRepo := tablepg.NewTableRepository(pool)
		orderRepo := NewOrderRepository(pool, nil)

		table, err := tablemodels.NewTable(int(time.Now().UnixNano()%1_000_000)+1000, 4)
		if err != nil {
			t.Fatalf("new table: %v", err)
		}
		if err := tableRepo.Save(ctx, table); err != nil {
			t.Fatalf("save table: %v", err)
		}

		order := models.NewOrder(table.ID)
		_ = order.AddLine(uuid.New(), "Tomato Soup", decimal.RequireFromString("4.50"), 2)
		if err := orderRepo.Create(ctx, order); err != nil {
			t.Fatalf("create order: %v", err)
		}
		defer func() {
			_, _ = pool.DB().ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, order.ID)
			_, _ = pool.DB().ExecContext(ctx, `DELETE FROM restaurant_tables WHERE id = $1`, table.ID)
		}()

		if err := table.Occupy(); err != nil {
			t.Fatalf("occupy: %v", err)
		}
		if err := tableRepo.Update(ctx, table); err != nil {
			t.Fatalf("update table: %v", err)
		}

		if err := order.CompletePayment(models.PaymentCash, time.Now()); err != nil {
			t.Fatalf("complete payment: %v", err)
		}
		if err := orderRepo.MarkPaid(ctx, order, string(tablemodels.StatusFree), nil); err != nil {
			t.Fatalf("mark paid: %v", err)
		}

		// Settled history must not pin the table to the floor.
		if err := tableRepo.Delete(ctx, table.ID); err != nil {
			t.Fatalf("expected table delete to succeed after payment, got %v", err)
		}

		got, err := orderRepo.GetByID(ctx, order.ID)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if got.Status != models.StatusPaid {
			t.Fatalf("expected paid order, got %s", got.Status)
		}
		if got.TableID != uuid.Nil {
			t.Fatalf("expected table reference cleared after delete, got %s", got.TableID)
		}
		if got.ServedAt == nil {
			t.Fatal("expected the persisted order to carry a served timestamp")
		}
	})
}
