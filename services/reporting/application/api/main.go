package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/reporting/application/handlers"
	appsvcs "github.com/ghuser/tableside/services/reporting/application/services"
)

// ReportingRoutes registers the report endpoints on the provided chi router.
func ReportingRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	h := handlers.NewReportHandlers(svcs)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/top-sellers", h.TopSellers)
		r.Get("/revenue-by-category", h.RevenueByCategory)
		r.Get("/service-stats", h.ServiceStats)
		r.Get("/paid-orders", h.PaidOrders)
	})
	return svcs
}
