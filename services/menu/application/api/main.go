package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/menu/application/handlers"
	appsvcs "github.com/ghuser/tableside/services/menu/application/services"
)

// MenuRoutes registers menu catalog endpoints on the provided chi router.
// The stock checker comes from the inventory context.
func MenuRoutes(r chi.Router, a *app.Application, stock appsvcs.StockChecker) *appsvcs.Services {
	svcs := appsvcs.New(a, stock)
	h := handlers.NewMenuHandlers(svcs)
	r.Get("/categories", h.ListCategories)
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", h.ListMenuItems)
		r.Post("/", h.CreateMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
	})
	return svcs
}
