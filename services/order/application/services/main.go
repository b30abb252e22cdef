package services

import (
	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/pkg/cache"
	"github.com/ghuser/tableside/services/order/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Engine *Engine
}

// New wires the order services with infrastructure from the Application
// container. gate comes from the table context and menu from the menu
// context.
func New(a *app.Application, gate FloorGate, menu MenuReader) *Services {
	repo := postgres.NewOrderRepository(a.Db, a.EventBus)
	orders := cache.NewActiveOrderCache(a.Redis)
	return &Services{
		Engine: NewEngine(repo, gate, menu, orders, a.Logger),
	}
}
