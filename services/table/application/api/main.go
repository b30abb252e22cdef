package api

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/table/application/handlers"
	appsvcs "github.com/ghuser/tableside/services/table/application/services"
)

// TableRoutes registers floor management endpoints on the provided chi router.
// The returned services expose the registry to the order context.
func TableRoutes(r chi.Router, a *app.Application, cleaning time.Duration, scheduler appsvcs.CleaningScheduler) *appsvcs.Services {
	svcs := appsvcs.New(a, cleaning, scheduler)
	h := handlers.NewTableHandlers(svcs)
	r.Route("/tables", func(r chi.Router) {
		r.Get("/", h.ListTables)
		r.Post("/", h.CreateTable)
		r.Delete("/{id}", h.DeleteTable)
	})
	return svcs
}
