package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/order/application/handlers"
	appsvcs "github.com/ghuser/tableside/services/order/application/services"
)

// OrderRoutes registers the order lifecycle endpoints on the provided chi
// router. The floor gate and menu reader come from the table and menu
// contexts.
func OrderRoutes(r chi.Router, a *app.Application, gate appsvcs.FloorGate, menu appsvcs.MenuReader) *appsvcs.Services {
	svcs := appsvcs.New(a, gate, menu)
	h := handlers.NewOrderHandlers(svcs)
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.OpenOrder)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/lines", h.AddLine)
		r.Delete("/{id}/lines/{lineID}", h.RemoveLine)
		r.Post("/{id}/serve", h.ServeOrder)
		r.Post("/{id}/pay", h.PayOrder)
	})
	r.Get("/tables/{id}/order", h.ActiveOrder)
	return svcs
}
