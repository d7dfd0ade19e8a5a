package company

import (
	"log/slog"

	cryptoadapter "drafthub/contexts/tenant-management/company-service/adapters/crypto"
	httpadapter "drafthub/contexts/tenant-management/company-service/adapters/http"
	"drafthub/contexts/tenant-management/company-service/adapters/memory"
	"drafthub/contexts/tenant-management/company-service/application"
	"drafthub/contexts/tenant-management/company-service/ports"
)

// Module is the company-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Plans      ports.PlanCatalog
	Hasher     ports.PasswordHasher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Plans:  deps.Plans,
		Hasher: deps.Hasher,
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
// persistence and a seeded plan catalog.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Plans:      store,
		Hasher:     cryptoadapter.BcryptHasher{},
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
