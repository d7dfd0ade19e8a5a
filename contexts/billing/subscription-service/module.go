package subscription

import (
	"log/slog"

	httpadapter "drafthub/contexts/billing/subscription-service/adapters/http"
	"drafthub/contexts/billing/subscription-service/adapters/memory"
	"drafthub/contexts/billing/subscription-service/application"
	"drafthub/contexts/billing/subscription-service/application/workers"
	"drafthub/contexts/billing/subscription-service/ports"
)

// Module is the subscription-service composition root exposed to runtime
// wiring, including the background workers the runner schedules.
type Module struct {
	Handler       httpadapter.Handler
	Service       application.Service
	ExpirySweeper workers.ExpirySweeper
	OutboxRelay   workers.OutboxRelay
	Store         *memory.Store
	Gateway       *memory.StubGateway
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Plans      ports.PlanCatalog
	Gateway    ports.PaymentGateway
	Outbox     ports.OutboxRepository
	Publisher  ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	KeyID      string
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:    deps.Repository,
		Plans:   deps.Plans,
		Gateway: deps.Gateway,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, KeyID: deps.KeyID, Logger: deps.Logger},
		Service: service,
		ExpirySweeper: workers.ExpirySweeper{
			Repo:   deps.Repository,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with the seeded
// catalog and a deterministic stub gateway.
func NewInMemoryModule(publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewSeededStore()
	gateway := memory.NewStubGateway("")
	module := NewModule(Dependencies{
		Repository: store,
		Plans:      store,
		Gateway:    gateway,
		Outbox:     store,
		Publisher:  publisher,
		Clock:      store,
		IDGen:      store,
		KeyID:      "rzp_test_stub",
		Logger:     logger,
	})
	module.Store = store
	module.Gateway = gateway
	return module
}
