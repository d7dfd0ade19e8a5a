package auth

import (
	"log/slog"

	cryptoadapter "drafthub/contexts/identity-access/auth-service/adapters/crypto"
	httpadapter "drafthub/contexts/identity-access/auth-service/adapters/http"
	jwtadapter "drafthub/contexts/identity-access/auth-service/adapters/jwt"
	"drafthub/contexts/identity-access/auth-service/adapters/memory"
	"drafthub/contexts/identity-access/auth-service/application"
	"drafthub/contexts/identity-access/auth-service/ports"
)

// Module is the auth-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Hasher     ports.PasswordHasher
	Tokens     ports.TokenCodec
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Hasher: deps.Hasher,
		Tokens: deps.Tokens,
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
// persistence, bcrypt hashing, and a fixed signing secret.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Hasher:     cryptoadapter.BcryptHasher{},
		Tokens:     jwtadapter.NewCodec("drafthub-dev-secret"),
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
