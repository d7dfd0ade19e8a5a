package dashboard

import (
	"log/slog"

	httpadapter "drafthub/contexts/internal-ops/admin-dashboard-service/adapters/http"
	"drafthub/contexts/internal-ops/admin-dashboard-service/adapters/memory"
	"drafthub/contexts/internal-ops/admin-dashboard-service/application"
	"drafthub/contexts/internal-ops/admin-dashboard-service/ports"
)

// Module is the dashboard composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
