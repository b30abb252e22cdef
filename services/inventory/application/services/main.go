package services

import (
	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Stock *StockLedger
}

// New wires the inventory services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewIngredientRepository(a.Db)
	return &Services{
		Stock: NewStockLedger(repo),
	}
}
