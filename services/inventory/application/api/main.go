package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/tableside/services/inventory/application/services"
)

// InventoryRoutes registers ingredient endpoints on the provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	h := handlers.NewIngredientHandlers(svcs)
	r.Route("/ingredients", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/{id}/restock", h.Restock)
		r.Delete("/{id}", h.Delete)
	})
	return svcs
}
