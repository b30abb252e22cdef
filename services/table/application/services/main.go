package services

import (
	"time"

	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/table/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Registry *Registry
}

// New wires the table services with infrastructure from the Application
// container. scheduler may be nil when no workflow engine is available; the
// sanitize pass then handles cleaning expiry on its own.
func New(a *app.Application, cleaning time.Duration, scheduler CleaningScheduler) *Services {
	repo := postgres.NewTableRepository(a.Db)
	return &Services{
		Registry: NewRegistry(repo, a.EventBus, a.Logger, cleaning, scheduler),
	}
}
