package services

import (
	"context"
	"fmt"

	"github.com/ghuser/tableside/services/reporting/domain"
	"github.com/ghuser/tableside/services/reporting/domain/repositories"
)

const (
	defaultTopSellers = 5
	maxTopSellers     = 20
	defaultFeedLimit  = 50
	maxFeedLimit      = 200
)

// Reports serves the management reports. It sanitizes paging inputs and
// delegates the aggregation to the reader.
type Reports struct {
	reader repositories.Reader
}

// NewReports returns a Reports service backed by the given reader.
func NewReports(reader repositories.Reader) *Reports {
	return &Reports{reader: reader}
}

// TopSellers returns the best-selling items. A non-positive limit falls back
// to the default of 5; limits above 20 are capped.
func (s *Reports) TopSellers(ctx context.Context, rng domain.Range, limit int) ([]domain.TopSeller, error) {
	if limit <= 0 {
		limit = defaultTopSellers
	}
	if limit > maxTopSellers {
		limit = maxTopSellers
	}
	out, err := s.reader.TopSellers(ctx, rng, limit)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	return out, nil
}

// RevenueByCategory returns revenue grouped by menu category.
func (s *Reports) RevenueByCategory(ctx context.Context, rng domain.Range) ([]domain.CategoryRevenue, error) {
	out, err := s.reader.RevenueByCategory(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("revenue by category: %w", err)
	}
	return out, nil
}

// ServiceStats returns serving throughput for the range.
func (s *Reports) ServiceStats(ctx context.Context, rng domain.Range) (domain.ServiceStats, error) {
	stats, err := s.reader.ServiceStats(ctx, rng)
	if err != nil {
		return domain.ServiceStats{}, fmt.Errorf("service stats: %w", err)
	}
	return stats, nil
}

// PaidOrders returns the settled-orders feed with sanitized paging.
func (s *Reports) PaidOrders(ctx context.Context, rng domain.Range, limit, offset int) ([]domain.PaidOrderSummary, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.reader.PaidOrders(ctx, rng, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("paid orders: %w", err)
	}
	return out, nil
}
