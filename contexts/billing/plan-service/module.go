package plan

import (
	"log/slog"

	httpadapter "drafthub/contexts/billing/plan-service/adapters/http"
	"drafthub/contexts/billing/plan-service/adapters/memory"
	"drafthub/contexts/billing/plan-service/application"
	"drafthub/contexts/billing/plan-service/ports"
)

// Module is the plan-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with the seeded
// standard catalog.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewSeededStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
