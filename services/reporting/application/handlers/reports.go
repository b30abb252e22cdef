package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ghuser/tableside/pkg/errhttp"
	"github.com/ghuser/tableside/pkg/httpx"
	appsvcs "github.com/ghuser/tableside/services/reporting/application/services"
	"github.com/ghuser/tableside/services/reporting/domain"
)

// ReportHandlers serves the management reports.
type ReportHandlers struct {
	svc *appsvcs.Services
}

// NewReportHandlers returns handlers backed by the given services.
func NewReportHandlers(svc *appsvcs.Services) *ReportHandlers {
	return &ReportHandlers{svc: svc}
}

// TopSellers returns the best-selling items.
//
//	@Summary	Top-selling items
//	@Tags		reports
//	@Produce	json
//	@Param		from	query	string	false	"Range start (RFC3339)"
//	@Param		to		query	string	false	"Range end (RFC3339)"
//	@Param		limit	query	int		false	"Row limit, default 5, max 20"
//	@Success	200	{array}	domain.TopSeller
//	@Router		/reports/top-sellers [get]
func (h *ReportHandlers) TopSellers(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.svc.Reports.TopSellers(r.Context(), rng, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if out == nil {
		out = []domain.TopSeller{}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// RevenueByCategory returns revenue grouped by menu category.
//
//	@Summary	Revenue by category
//	@Tags		reports
//	@Produce	json
//	@Param		from	query	string	false	"Range start (RFC3339)"
//	@Param		to		query	string	false	"Range end (RFC3339)"
//	@Success	200	{array}	domain.CategoryRevenue
//	@Router		/reports/revenue-by-category [get]
func (h *ReportHandlers) RevenueByCategory(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Reports.RevenueByCategory(r.Context(), rng)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if out == nil {
		out = []domain.CategoryRevenue{}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ServiceStats returns serving throughput.
//
//	@Summary	Service statistics
//	@Tags		reports
//	@Produce	json
//	@Param		from	query	string	false	"Range start (RFC3339)"
//	@Param		to		query	string	false	"Range end (RFC3339)"
//	@Success	200	{object}	domain.ServiceStats
//	@Router		/reports/service-stats [get]
func (h *ReportHandlers) ServiceStats(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	stats, err := h.svc.Reports.ServiceStats(r.Context(), rng)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

// PaidOrders returns the settled-orders feed.
//
//	@Summary	Paid orders feed
//	@Tags		reports
//	@Produce	json
//	@Param		from	query	string	false	"Range start (RFC3339)"
//	@Param		to		query	string	false	"Range end (RFC3339)"
//	@Param		limit	query	int		false	"Row limit, default 50, max 200"
//	@Param		offset	query	int		false	"Row offset"
//	@Success	200	{array}	domain.PaidOrderSummary
//	@Router		/reports/paid-orders [get]
func (h *ReportHandlers) PaidOrders(w http.ResponseWriter, r *http.Request) {
	rng, ok := parseRange(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	out, err := h.svc.Reports.PaidOrders(r.Context(), rng, limit, offset)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if out == nil {
		out = []domain.PaidOrderSummary{}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// parseRange reads optional RFC3339 from/to query parameters.
func parseRange(w http.ResponseWriter, r *http.Request) (domain.Range, bool) {
	var rng domain.Range
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid 'from' timestamp")
			return rng, false
		}
		rng.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid 'to' timestamp")
			return rng, false
		}
		rng.To = t
	}
	return rng, true
}
