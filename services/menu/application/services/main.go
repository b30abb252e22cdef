package services

import (
	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/menu/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Recipes *RecipeBuilder
	Catalog *Catalog
}

// New wires the menu services with infrastructure from the Application
// container. The stock checker comes from the inventory context.
func New(a *app.Application, stock StockChecker) *Services {
	repo := postgres.NewMenuRepository(a.Db)
	return &Services{
		Recipes: NewRecipeBuilder(stock, repo),
		Catalog: NewCatalog(repo),
	}
}
