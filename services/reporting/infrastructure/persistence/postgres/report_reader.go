package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/tableside/pkg/database"
	"github.com/ghuser/tableside/services/reporting/domain"
)

// ReportReader implements repositories.Reader against PostgreSQL, pushing
// all aggregation into SQL.
type ReportReader struct {
	db *database.Database
}

// NewReportReader returns a ReportReader backed by the given pool.
func NewReportReader(db *database.Database) *ReportReader {
	return &ReportReader{db: db}
}

// TopSellers groups paid order lines by their snapshotted name, so items
// later removed from the menu still count.
func (r *ReportReader) TopSellers(ctx context.Context, rng domain.Range, limit int) ([]domain.TopSeller, error) {
	from, to := rangeBounds(rng)
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT ol.name, SUM(ol.quantity), SUM(ol.unit_price * ol.quantity)
		 FROM order_lines ol
		 JOIN orders o ON o.id = ol.order_id
		 WHERE o.status = 'paid' AND o.paid_at >= $1 AND o.paid_at < $2
		 GROUP BY ol.name
		 ORDER BY SUM(ol.quantity) DESC, SUM(ol.unit_price * ol.quantity) DESC
		 LIMIT $3`,
		from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query top sellers: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.TopSeller
	for rows.Next() {
		var s domain.TopSeller
		if err := rows.Scan(&s.Name, &s.QuantitySold, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan top seller: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RevenueByCategory attributes line revenue to the menu item's category.
// Lines whose menu item was deleted fall into "uncategorized".
func (r *ReportReader) RevenueByCategory(ctx context.Context, rng domain.Range) ([]domain.CategoryRevenue, error) {
	from, to := rangeBounds(rng)
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT COALESCE(c.name, 'uncategorized'), SUM(ol.unit_price * ol.quantity)
		 FROM order_lines ol
		 JOIN orders o ON o.id = ol.order_id
		 LEFT JOIN menu_items mi ON mi.id = ol.menu_item_id
		 LEFT JOIN categories c ON c.id = mi.category_id
		 WHERE o.status = 'paid' AND o.paid_at >= $1 AND o.paid_at < $2
		 GROUP BY c.name
		 ORDER BY SUM(ol.unit_price * ol.quantity) DESC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("query revenue by category: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CategoryRevenue
	for rows.Next() {
		var c domain.CategoryRevenue
		if err := rows.Scan(&c.Category, &c.Revenue); err != nil {
			return nil, fmt.Errorf("scan category revenue: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ServiceStats averages seating-to-serving time over paid orders that were
// marked served.
func (r *ReportReader) ServiceStats(ctx context.Context, rng domain.Range) (domain.ServiceStats, error) {
	from, to := rangeBounds(rng)
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(EXTRACT(EPOCH FROM (served_at - opened_at))) / 60, 0)
		 FROM orders
		 WHERE status = 'paid' AND served_at IS NOT NULL AND paid_at >= $1 AND paid_at < $2`,
		from, to)

	var stats domain.ServiceStats
	if err := row.Scan(&stats.OrdersServed, &stats.AverageServiceMinutes); err != nil {
		return domain.ServiceStats{}, fmt.Errorf("scan service stats: %w", err)
	}
	return stats, nil
}

// PaidOrders returns the settled-orders feed, newest first. Deleted tables
// report number 0.
func (r *ReportReader) PaidOrders(ctx context.Context, rng domain.Range, limit, offset int) ([]domain.PaidOrderSummary, error) {
	from, to := rangeBounds(rng)
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT o.id, COALESCE(t.number, 0), o.total, COALESCE(o.payment_method, ''), o.paid_at
		 FROM orders o
		 LEFT JOIN restaurant_tables t ON t.id = o.table_id
		 WHERE o.status = 'paid' AND o.paid_at >= $1 AND o.paid_at < $2
		 ORDER BY o.paid_at DESC
		 LIMIT $3 OFFSET $4`,
		from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query paid orders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.PaidOrderSummary
	for rows.Next() {
		var s domain.PaidOrderSummary
		if err := rows.Scan(&s.OrderID, &s.TableNumber, &s.Total, &s.PaymentMethod, &s.PaidAt); err != nil {
			return nil, fmt.Errorf("scan paid order: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// rangeBounds maps a Range's zero values to concrete SQL bounds.
func rangeBounds(rng domain.Range) (time.Time, time.Time) {
	from := rng.From
	to := rng.To
	if to.IsZero() {
		to = time.Now().UTC()
	}
	return from, to
}
