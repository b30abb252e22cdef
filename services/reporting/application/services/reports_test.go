package services

import (
	"context"
	"testing"

	"github.com/ghuser/tableside/services/reporting/domain"
)

// stubReader records the paging values the service hands down.
type stubReader struct {
	topLimit   int
	feedLimit  int
	feedOffset int
}

func (s *stubReader) TopSellers(_ context.Context, _ domain.Range, limit int) ([]domain.TopSeller, error) {
	s.topLimit = limit
	return nil, nil
}

func (s *stubReader) RevenueByCategory(context.Context, domain.Range) ([]domain.CategoryRevenue, error) {
	return nil, nil
}

func (s *stubReader) ServiceStats(context.Context, domain.Range) (domain.ServiceStats, error) {
	return domain.ServiceStats{}, nil
}

func (s *stubReader) PaidOrders(_ context.Context, _ domain.Range, limit, offset int) ([]domain.PaidOrderSummary, error) {
	s.feedLimit = limit
	s.feedOffset = offset
	return nil, nil
}

func TestReports_TopSellersLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default on zero", limit: 0, want: 5},
		{name: "default on negative", limit: -3, want: 5},
		{name: "passes through", limit: 10, want: 10},
		{name: "caps at max", limit: 100, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubReader{}
			svc := NewReports(stub)
			if _, err := svc.TopSellers(context.Background(), domain.Range{}, tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stub.topLimit != tt.want {
				t.Fatalf("expected limit %d, got %d", tt.want, stub.topLimit)
			}
		})
	}
}

func TestReports_PaidOrdersPaging(t *testing.T) {
	stub := &stubReader{}
	svc := NewReports(stub)

	if _, err := svc.PaidOrders(context.Background(), domain.Range{}, 0, -5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.feedLimit != 50 || stub.feedOffset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", stub.feedLimit, stub.feedOffset)
	}

	if _, err := svc.PaidOrders(context.Background(), domain.Range{}, 1000, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.feedLimit != 200 || stub.feedOffset != 30 {
		t.Fatalf("expected 200/30, got %d/%d", stub.feedLimit, stub.feedOffset)
	}
}
