package services

import (
	"github.com/ghuser/tableside/pkg/app"
	"github.com/ghuser/tableside/services/reporting/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Reports *Reports
}

// New wires the reporting services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Reports: NewReports(postgres.NewReportReader(a.Db)),
	}
}
