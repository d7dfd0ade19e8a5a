package project

import (
	"log/slog"

	httpadapter "drafthub/contexts/project-delivery/project-service/adapters/http"
	"drafthub/contexts/project-delivery/project-service/adapters/memory"
	"drafthub/contexts/project-delivery/project-service/application"
	"drafthub/contexts/project-delivery/project-service/ports"
)

// Module is the project-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Blobs      ports.BlobStore
	Gate       ports.SubscriptionGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Blobs:  deps.Blobs,
		Gate:   deps.Gate,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// persistence and an always-open subscription gate.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Blobs:      store,
		Gate:       memory.AllowAllGate{},
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
