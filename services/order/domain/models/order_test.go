package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderdomain "github.com/ghuser/tableside/services/order/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrder_AddLine(t *testing.T) {
	t.Run("computes total from snapshots", func(t *testing.T) {
		o := NewOrder(uuid.New())
		soup := uuid.New()
		pizza := uuid.New()

		if err := o.AddLine(soup, "Tomato Soup", price("4.50"), 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := o.AddLine(pizza, "Margherita", price("6.00"), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if want := price("15.00"); !o.Total.Equal(want) {
			t.Fatalf("expected total %s, got %s", want, o.Total)
		}
	})

	t.Run("merges repeated items into one line", func(t *testing.T) {
		o := NewOrder(uuid.New())
		soup := uuid.New()
		_ = o.AddLine(soup, "Tomato Soup", price("4.50"), 1)
		_ = o.AddLine(soup, "Tomato Soup", price("4.50"), 2)

		if len(o.Lines) != 1 {
			t.Fatalf("expected 1 merged line, got %d", len(o.Lines))
		}
		if o.Lines[0].Quantity != 3 {
			t.Fatalf("expected quantity 3, got %d", o.Lines[0].Quantity)
		}
		if want := price("13.50"); !o.Total.Equal(want) {
			t.Fatalf("expected total %s, got %s", want, o.Total)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := NewOrder(uuid.New())
		if err := o.AddLine(uuid.New(), "Soup", price("4.50"), 0); !errors.Is(err, orderdomain.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("rejects served order", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 1)
		_ = o.MarkServed(time.Now())
		if err := o.AddLine(uuid.New(), "Pizza", price("6.00"), 1); !errors.Is(err, orderdomain.ErrOrderNotOpen) {
			t.Fatalf("expected ErrOrderNotOpen, got %v", err)
		}
	})

	t.Run("rejects paid order", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 1)
		_ = o.CompletePayment(PaymentCash, time.Now())
		if err := o.AddLine(uuid.New(), "Pizza", price("6.00"), 1); !errors.Is(err, orderdomain.ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
	})

}

func TestOrder_RemoveLine(t *testing.T) {
	o := NewOrder(uuid.New())
	soup := uuid.New()
	pizza := uuid.New()
	_ = o.AddLine(soup, "Tomato Soup", price("4.50"), 1)
	_ = o.AddLine(pizza, "Margherita", price("6.00"), 1)

	if err := o.RemoveLine(o.Lines[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Lines) != 1 || o.Lines[0].MenuItemID != pizza {
		t.Fatalf("expected only the pizza line to remain, got %+v", o.Lines)
	}
	if want := price("6.00"); !o.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, o.Total)
	}

	if err := o.RemoveLine(uuid.New()); !errors.Is(err, orderdomain.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestOrder_MarkServed(t *testing.T) {
	o := NewOrder(uuid.New())
	_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 1)
	now := time.Now()

	if err := o.MarkServed(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != StatusServed || o.ServedAt == nil {
		t.Fatalf("expected served with timestamp, got %s %v", o.Status, o.ServedAt)
	}

	// Serving twice is a no-op and keeps the first timestamp.
	first := *o.ServedAt
	if err := o.MarkServed(now.Add(time.Minute)); err != nil {
		t.Fatalf("unexpected error on double serve: %v", err)
	}
	if !o.ServedAt.Equal(first) {
		t.Fatalf("expected served timestamp %v to stand, got %v", first, *o.ServedAt)
	}

	_ = o.CompletePayment(PaymentCard, now)
	if err := o.MarkServed(now); !errors.Is(err, orderdomain.ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestOrder_FinalizeSale(t *testing.T) {
	t.Run("rejects an empty order", func(t *testing.T) {
		o := NewOrder(uuid.New())
		if err := o.FinalizeSale(); !errors.Is(err, orderdomain.ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("rejects a paid order", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 1)
		_ = o.CompletePayment(PaymentCash, time.Now())
		if err := o.FinalizeSale(); !errors.Is(err, orderdomain.ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
	})

	t.Run("recomputes the total from lines", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 2)
		o.Total = price("1.00")
		if err := o.FinalizeSale(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := price("9.00"); !o.Total.Equal(want) {
			t.Fatalf("expected total %s, got %s", want, o.Total)
		}
	})
}

func TestOrder_CompletePayment(t *testing.T) {
	t.Run("settles an open order", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 2)
		now := time.Now()

		if err := o.CompletePayment(PaymentCash, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != StatusPaid || o.PaidAt == nil || o.PaymentMethod == nil || *o.PaymentMethod != PaymentCash {
			t.Fatalf("expected paid cash order, got %+v", o)
		}
		// Paying straight from open counts as serving, so every paid order
		// carries a served timestamp for the service-time reports.
		if o.ServedAt == nil || !o.ServedAt.Equal(now) {
			t.Fatalf("expected served timestamp %v, got %v", now, o.ServedAt)
		}
	})

	t.Run("settles a served order keeping its served timestamp", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 1)
		served := time.Now()
		_ = o.MarkServed(served)
		if err := o.CompletePayment(PaymentCard, served.Add(10*time.Minute)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ServedAt == nil || !o.ServedAt.Equal(served) {
			t.Fatalf("expected served timestamp %v to stand, got %v", served, o.ServedAt)
		}
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		o := NewOrder(uuid.New())
		if err := o.CompletePayment(PaymentCash, time.Now()); !errors.Is(err, orderdomain.ErrEmptyOrder) {
			t.Fatalf("expected ErrEmptyOrder, got %v", err)
		}
	})

	t.Run("rejects double payment", func(t *testing.T) {
		o := NewOrder(uuid.New())
		_ = o.AddLine(uuid.New(), "Soup", price("4.50"), 1)
		_ = o.CompletePayment(PaymentCash, time.Now())
		if err := o.CompletePayment(PaymentCard, time.Now()); !errors.Is(err, orderdomain.ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
	})
}

func TestParsePaymentMethod(t *testing.T) {
	if m, err := ParsePaymentMethod("cash"); err != nil || m != PaymentCash {
		t.Fatalf("expected cash, got %v %v", m, err)
	}
	if m, err := ParsePaymentMethod("card"); err != nil || m != PaymentCard {
		t.Fatalf("expected card, got %v %v", m, err)
	}
	if _, err := ParsePaymentMethod("check"); !errors.Is(err, orderdomain.ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}
