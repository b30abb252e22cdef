// Package repositories declares the read port for the reporting context.
package repositories

import (
	"context"

	"github.com/ghuser/tableside/services/reporting/domain"
)

// Reader aggregates paid orders into reports. The PostgreSQL implementation
// pushes the aggregation into SQL.
type Reader interface {
	// TopSellers returns the best-selling line items by quantity.
	TopSellers(ctx context.Context, r domain.Range, limit int) ([]domain.TopSeller, error)

	// RevenueByCategory returns revenue grouped by menu category.
	RevenueByCategory(ctx context.Context, r domain.Range) ([]domain.CategoryRevenue, error)

	// ServiceStats returns serving throughput for the range.
	ServiceStats(ctx context.Context, r domain.Range) (domain.ServiceStats, error)

	// PaidOrders returns the settled-orders feed, newest first.
	PaidOrders(ctx context.Context, r domain.Range, limit, offset int) ([]domain.PaidOrderSummary, error)
}
