package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/config"
	"github.com/ghuser/tableside/pkg/logger"
	menusvcs "github.com/ghuser/tableside/services/menu/application/services"
	menumodels "github.com/ghuser/tableside/services/menu/domain/models"
	menumemory "github.com/ghuser/tableside/services/menu/infrastructure/persistence/memory"
	orderdomain "github.com/ghuser/tableside/services/order/domain"
	"github.com/ghuser/tableside/services/order/domain/models"
	ordermemory "github.com/ghuser/tableside/services/order/infrastructure/persistence/memory"
	tablesvcs "github.com/ghuser/tableside/services/table/application/services"
	tabledomain "github.com/ghuser/tableside/services/table/domain"
	tablemodels "github.com/ghuser/tableside/services/table/domain/models"
	tablememory "github.com/ghuser/tableside/services/table/infrastructure/persistence/memory"
)

type engineFixture struct {
	engine    *Engine
	registry  *tablesvcs.Registry
	tableRepo *tablememory.TableRepository
	orderRepo *ordermemory.OrderRepository
	menuRepo  *menumemory.MenuRepository
	category  *menumodels.Category
	ctx       context.Context
}

func newEngineFixture(t *testing.T, cleaning time.Duration) *engineFixture {
	t.Helper()
	ctx := context.Background()
	log := logger.New(&config.Config{LogLevel: "error"})

	tableRepo := tablememory.NewTableRepository()
	registry := tablesvcs.NewRegistry(tableRepo, nil, log, cleaning, nil)

	menuRepo := menumemory.NewMenuRepository()
	cat, err := menumodels.NewCategory("Main Course")
	if err != nil {
		t.Fatalf("new category: %v", err)
	}
	if err := menuRepo.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}
	catalog := menusvcs.NewCatalog(menuRepo)

	// Mirrors the conditional table update the SQL MarkPaid performs.
	release := func(ctx context.Context, tableID uuid.UUID, status string, until *time.Time) error {
		tbl, err := tableRepo.GetByID(ctx, tableID)
		if err != nil {
			return err
		}
		if tbl.Status != tablemodels.StatusOccupied {
			return orderdomain.ErrConsistencyViolation
		}
		tbl.Status = tablemodels.Status(status)
		tbl.CleaningUntil = until
		return tableRepo.Update(ctx, tbl)
	}
	orderRepo := ordermemory.NewOrderRepository(release)

	return &engineFixture{
		engine:    NewEngine(orderRepo, registry, catalog, nil, log),
		registry:  registry,
		tableRepo: tableRepo,
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		category:  cat,
		ctx:       ctx,
	}
}

func (f *engineFixture) table(t *testing.T, number int) uuid.UUID {
	t.Helper()
	tbl, err := f.registry.Create(f.ctx, number, 4)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return tbl.ID
}

func (f *engineFixture) menuItem(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	item, err := menumodels.NewMenuItem(f.category.ID, name, "", decimal.RequireFromString(price))
	if err != nil {
		t.Fatalf("new menu item: %v", err)
	}
	if err := f.menuRepo.CreateMenuItem(f.ctx, item); err != nil {
		t.Fatalf("create menu item: %v", err)
	}
	return item.ID
}

func TestEngine_Open(t *testing.T) {
	t.Run("occupies the table and opens an empty order", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)

		order, err := f.engine.Open(f.ctx, tableID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != models.StatusOpen || len(order.Lines) != 0 {
			t.Fatalf("expected empty open order, got %+v", order)
		}

		tbl, _ := f.tableRepo.GetByID(f.ctx, tableID)
		if tbl.Status != tablemodels.StatusOccupied {
			t.Fatalf("expected occupied table, got %s", tbl.Status)
		}
	})

	t.Run("rejects an occupied table", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)
		if _, err := f.engine.Open(f.ctx, tableID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := f.engine.Open(f.ctx, tableID); !errors.Is(err, tabledomain.ErrTableNotFree) {
			t.Fatalf("expected ErrTableNotFree, got %v", err)
		}
	})

	t.Run("concurrent opens on one table produce one order", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)

		const workers = 8
		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.engine.Open(f.ctx, tableID)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
			} else if !errors.Is(err, tabledomain.ErrTableNotFree) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if wins != 1 {
			t.Fatalf("expected exactly one open to win, got %d", wins)
		}
	})
}

func TestEngine_AddLine(t *testing.T) {
	f := newEngineFixture(t, 0)
	tableID := f.table(t, 1)
	soup := f.menuItem(t, "Tomato Soup", "4.50")
	pizza := f.menuItem(t, "Margherita", "6.00")

	order, err := f.engine.Open(f.ctx, tableID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := f.engine.AddLine(f.ctx, order.ID, soup, 2); err != nil {
		t.Fatalf("add soup: %v", err)
	}
	got, err := f.engine.AddLine(f.ctx, order.ID, pizza, 1)
	if err != nil {
		t.Fatalf("add pizza: %v", err)
	}

	if want := decimal.RequireFromString("15.00"); !got.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got.Total)
	}

	t.Run("snapshot survives a menu price change", func(t *testing.T) {
		// Reprice soup by replacing the catalog entry.
		if err := f.menuRepo.DeleteMenuItem(f.ctx, soup); err != nil {
			t.Fatalf("delete menu item: %v", err)
		}
		stored, err := f.engine.Get(f.ctx, order.ID)
		if err != nil {
			t.Fatalf("get order: %v", err)
		}
		if want := decimal.RequireFromString("15.00"); !stored.Total.Equal(want) {
			t.Fatalf("expected total to keep the snapshot %s, got %s", want, stored.Total)
		}
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		if _, err := f.engine.AddLine(f.ctx, order.ID, pizza, 0); !errors.Is(err, orderdomain.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		if _, err := f.engine.AddLine(f.ctx, uuid.New(), pizza, 1); !errors.Is(err, orderdomain.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestEngine_RemoveLine(t *testing.T) {
	f := newEngineFixture(t, 0)
	tableID := f.table(t, 1)
	soup := f.menuItem(t, "Tomato Soup", "4.50")

	order, _ := f.engine.Open(f.ctx, tableID)
	updated, err := f.engine.AddLine(f.ctx, order.ID, soup, 1)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}

	got, err := f.engine.RemoveLine(f.ctx, order.ID, updated.Lines[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Lines) != 0 || !got.Total.IsZero() {
		t.Fatalf("expected empty order after removal, got %+v", got)
	}

	if _, err := f.engine.RemoveLine(f.ctx, order.ID, uuid.New()); !errors.Is(err, orderdomain.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestEngine_CompletePayment(t *testing.T) {
	t.Run("settles the order and frees the table", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)
		soup := f.menuItem(t, "Tomato Soup", "4.50")

		order, _ := f.engine.Open(f.ctx, tableID)
		_, _ = f.engine.AddLine(f.ctx, order.ID, soup, 2)

		paid, err := f.engine.CompletePayment(f.ctx, order.ID, "card")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if paid.Status != models.StatusPaid || paid.PaymentMethod == nil || *paid.PaymentMethod != models.PaymentCard {
			t.Fatalf("expected paid card order, got %+v", paid)
		}
		if paid.ServedAt == nil {
			t.Fatal("expected paying an open order to record the served timestamp")
		}

		tbl, _ := f.tableRepo.GetByID(f.ctx, tableID)
		if tbl.Status != tablemodels.StatusFree {
			t.Fatalf("expected free table, got %s", tbl.Status)
		}
	})

	t.Run("releases into the cleaning window when configured", func(t *testing.T) {
		f := newEngineFixture(t, 15*time.Minute)
		tableID := f.table(t, 1)
		soup := f.menuItem(t, "Tomato Soup", "4.50")

		order, _ := f.engine.Open(f.ctx, tableID)
		_, _ = f.engine.AddLine(f.ctx, order.ID, soup, 1)

		if _, err := f.engine.CompletePayment(f.ctx, order.ID, "cash"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tbl, _ := f.tableRepo.GetByID(f.ctx, tableID)
		if tbl.Status != tablemodels.StatusCleaning || tbl.CleaningUntil == nil {
			t.Fatalf("expected cleaning table with deadline, got %s %v", tbl.Status, tbl.CleaningUntil)
		}
	})

	t.Run("empty order keeps its table", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)

		order, _ := f.engine.Open(f.ctx, tableID)
		if _, err := f.engine.CompletePayment(f.ctx, order.ID, "cash"); !errors.Is(err, orderdomain.ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}

		tbl, _ := f.tableRepo.GetByID(f.ctx, tableID)
		if tbl.Status != tablemodels.StatusOccupied {
			t.Fatalf("expected table to stay occupied, got %s", tbl.Status)
		}
	})

	t.Run("double payment", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)
		soup := f.menuItem(t, "Tomato Soup", "4.50")

		order, _ := f.engine.Open(f.ctx, tableID)
		_, _ = f.engine.AddLine(f.ctx, order.ID, soup, 1)
		_, _ = f.engine.CompletePayment(f.ctx, order.ID, "cash")

		if _, err := f.engine.CompletePayment(f.ctx, order.ID, "card"); !errors.Is(err, orderdomain.ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		if _, err := f.engine.CompletePayment(f.ctx, uuid.New(), "check"); !errors.Is(err, orderdomain.ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("table freed behind the order's back", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)
		soup := f.menuItem(t, "Tomato Soup", "4.50")

		order, _ := f.engine.Open(f.ctx, tableID)
		_, _ = f.engine.AddLine(f.ctx, order.ID, soup, 1)

		// Corrupt the pairing: the table is freed while the order stays open.
		tbl, _ := f.tableRepo.GetByID(f.ctx, tableID)
		tbl.Status = tablemodels.StatusFree
		_ = f.tableRepo.Update(f.ctx, tbl)

		if _, err := f.engine.CompletePayment(f.ctx, order.ID, "cash"); !errors.Is(err, orderdomain.ErrConsistencyViolation) {
			t.Fatalf("expected ErrConsistencyViolation, got %v", err)
		}

		stored, _ := f.engine.Get(f.ctx, order.ID)
		if stored.Status == models.StatusPaid {
			t.Fatal("order must not be marked paid when the release fails")
		}
	})

	t.Run("table can be reseated after payment", func(t *testing.T) {
		f := newEngineFixture(t, 0)
		tableID := f.table(t, 1)
		soup := f.menuItem(t, "Tomato Soup", "4.50")

		first, _ := f.engine.Open(f.ctx, tableID)
		_, _ = f.engine.AddLine(f.ctx, first.ID, soup, 1)
		if _, err := f.engine.CompletePayment(f.ctx, first.ID, "cash"); err != nil {
			t.Fatalf("pay first order: %v", err)
		}

		second, err := f.engine.Open(f.ctx, tableID)
		if err != nil {
			t.Fatalf("reopen table: %v", err)
		}
		if second.ID == first.ID {
			t.Fatal("expected a fresh order for the new sitting")
		}
	})
}

func TestEngine_ActiveOrderForTable(t *testing.T) {
	f := newEngineFixture(t, 0)
	tableID := f.table(t, 1)
	soup := f.menuItem(t, "Tomato Soup", "4.50")

	if _, err := f.engine.ActiveOrderForTable(f.ctx, tableID); !errors.Is(err, orderdomain.ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder before opening, got %v", err)
	}

	order, _ := f.engine.Open(f.ctx, tableID)
	got, err := f.engine.ActiveOrderForTable(f.ctx, tableID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("expected order %s, got %s", order.ID, got.ID)
	}

	_, _ = f.engine.AddLine(f.ctx, order.ID, soup, 1)
	if _, err := f.engine.CompletePayment(f.ctx, order.ID, "cash"); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := f.engine.ActiveOrderForTable(f.ctx, tableID); !errors.Is(err, orderdomain.ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder after payment, got %v", err)
	}
}

func TestEngine_MarkServed(t *testing.T) {
	f := newEngineFixture(t, 0)
	tableID := f.table(t, 1)
	soup := f.menuItem(t, "Tomato Soup", "4.50")

	order, _ := f.engine.Open(f.ctx, tableID)
	_, _ = f.engine.AddLine(f.ctx, order.ID, soup, 1)

	served, err := f.engine.MarkServed(f.ctx, order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if served.Status != models.StatusServed || served.ServedAt == nil {
		t.Fatalf("expected served order, got %+v", served)
	}

	// Lines are frozen once served, but payment still goes through.
	if _, err := f.engine.AddLine(f.ctx, order.ID, soup, 1); !errors.Is(err, orderdomain.ErrOrderNotOpen) {
		t.Fatalf("expected ErrOrderNotOpen, got %v", err)
	}
	if _, err := f.engine.CompletePayment(f.ctx, order.ID, "card"); err != nil {
		t.Fatalf("pay served order: %v", err)
	}
}
