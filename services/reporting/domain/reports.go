// Package domain holds the read models served by the reporting context.
// Reporting is a pure read side over paid orders; it owns no aggregates and
// never writes.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopSeller is one row of the best-selling items report. Grouping is by the
// snapshotted line name, so items deleted from the menu still report.
type TopSeller struct {
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// CategoryRevenue is one row of the revenue-per-category report.
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ServiceStats summarizes kitchen throughput: how many paid orders were
// served and how long seating-to-serving took on average.
type ServiceStats struct {
	OrdersServed          int     `json:"orders_served"`
	AverageServiceMinutes float64 `json:"average_service_minutes"`
}

// PaidOrderSummary is one row of the settled-orders feed.
type PaidOrderSummary struct {
	OrderID       uuid.UUID       `json:"order_id"`
	TableNumber   int             `json:"table_number"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	PaidAt        time.Time       `json:"paid_at"`
}

// Range bounds a report by payment time. A zero From means unbounded past;
// a zero To means up to now.
type Range struct {
	From time.Time
	To   time.Time
}
