package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	plan "drafthub/contexts/billing/plan-service"
	planpostgres "drafthub/contexts/billing/plan-service/adapters/postgres"
	subscription "drafthub/contexts/billing/subscription-service"
	"drafthub/contexts/billing/subscription-service/adapters/memory"
	subscriptionpostgres "drafthub/contexts/billing/subscription-service/adapters/postgres"
	razorpayadapter "drafthub/contexts/billing/subscription-service/adapters/razorpay"
	subscriptionworkers "drafthub/contexts/billing/subscription-service/application/workers"
	billingerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	subscriptionports "drafthub/contexts/billing/subscription-service/ports"
	auth "drafthub/contexts/identity-access/auth-service"
	cryptoadapter "drafthub/contexts/identity-access/auth-service/adapters/crypto"
	jwtadapter "drafthub/contexts/identity-access/auth-service/adapters/jwt"
	authpostgres "drafthub/contexts/identity-access/auth-service/adapters/postgres"
	dashboard "drafthub/contexts/internal-ops/admin-dashboard-service"
	dashboardpostgres "drafthub/contexts/internal-ops/admin-dashboard-service/adapters/postgres"
	project "drafthub/contexts/project-delivery/project-service"
	projectpostgres "drafthub/contexts/project-delivery/project-service/adapters/postgres"
	company "drafthub/contexts/tenant-management/company-service"
	companycrypto "drafthub/contexts/tenant-management/company-service/adapters/crypto"
	companypostgres "drafthub/contexts/tenant-management/company-service/adapters/postgres"
	"drafthub/internal/platform/blobstore"
	"drafthub/internal/platform/config"
	"drafthub/internal/platform/db"
	"drafthub/internal/platform/httpserver"
	"drafthub/internal/platform/messaging"
	"drafthub/internal/shared/accesspolicy"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	expirySweeper subscriptionworkers.ExpirySweeper
	outboxRelay   subscriptionworkers.OutboxRelay
	sweepEvery    time.Duration
	relayEvery    time.Duration
	sweepEnabled  bool
	relayEnabled  bool
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	authModule := auth.NewModule(auth.Dependencies{
		Repository: authpostgres.NewRepository(pg.DB, logger),
		Hasher:     cryptoadapter.BcryptHasher{},
		Tokens:     jwtadapter.NewCodec(cfg.JWTSecret),
		Clock:      authpostgres.SystemClock{},
		IDGen:      authpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	companyModule := company.NewModule(company.Dependencies{
		Repository: companypostgres.NewRepository(pg.DB, logger),
		Plans:      companypostgres.NewPlanCatalog(pg.DB),
		Hasher:     companycrypto.BcryptHasher{},
		Clock:      companypostgres.SystemClock{},
		IDGen:      companypostgres.UUIDGenerator{},
		Logger:     logger,
	})

	planModule := plan.NewModule(plan.Dependencies{
		Repository: planpostgres.NewRepository(pg.DB, logger),
		Clock:      planpostgres.SystemClock{},
		IDGen:      planpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	subscriptionRepo := subscriptionpostgres.NewRepository(pg.DB, logger)
	subscriptionModule := subscription.NewModule(subscription.Dependencies{
		Repository: subscriptionRepo,
		Plans:      subscriptionpostgres.NewPlanCatalog(pg.DB),
		Gateway:    buildPaymentGateway(cfg),
		Outbox:     subscriptionRepo,
		Publisher:  kafka,
		Clock:      subscriptionpostgres.SystemClock{},
		IDGen:      subscriptionpostgres.UUIDGenerator{},
		KeyID:      cfg.RazorpayKeyID,
		Logger:     logger,
	})

	blobs, err := blobstore.NewLocal(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	projectModule := project.NewModule(project.Dependencies{
		Repository: projectpostgres.NewRepository(pg.DB, logger),
		Blobs:      blobs,
		Gate:       subscriptionGate{service: subscriptionModule.Service},
		Clock:      projectpostgres.SystemClock{},
		IDGen:      projectpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	dashboardModule := dashboard.NewModule(dashboard.Dependencies{
		Repository: dashboardpostgres.NewRepository(pg.DB, logger),
		Clock:      dashboardpostgres.SystemClock{},
		Logger:     logger,
	})

	server := httpserver.New(
		authModule,
		companyModule,
		planModule,
		subscriptionModule,
		projectModule,
		dashboardModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := subscriptionpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		expirySweeper: subscriptionworkers.ExpirySweeper{
			Repo:   repo,
			Clock:  subscriptionpostgres.SystemClock{},
			Logger: logger,
		},
		outboxRelay: subscriptionworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     subscriptionpostgres.SystemClock{},
			Logger:    logger,
		},
		sweepEvery:   cfg.ExpirySweepInterval,
		relayEvery:   cfg.OutboxRelayInterval,
		sweepEnabled: cfg.EnableExpirySweeper,
		relayEnabled: cfg.EnableOutboxRelay,
		logger:       logger,
	}, nil
}

// buildPaymentGateway returns the real Razorpay client when credentials are
// configured and a deterministic stub otherwise, so local environments can
// exercise the full order/verify flow offline.
func buildPaymentGateway(cfg config.Config) subscriptionports.PaymentGateway {
	if strings.TrimSpace(cfg.RazorpayKeyID) != "" && strings.TrimSpace(cfg.RazorpayKeySecret) != "" {
		return razorpayadapter.NewGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	return memory.NewStubGateway("")
}

// subscriptionGate adapts the billing access check onto the project side's
// gate port without the project context importing billing errors.
type subscriptionGate struct {
	service interface {
		CheckAccess(ctx context.Context, principal accesspolicy.Principal) error
	}
}

func (g subscriptionGate) Allowed(ctx context.Context, principal accesspolicy.Principal) (bool, error) {
	err := g.service.CheckAccess(ctx, principal)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, billingerrors.ErrSubscriptionExpired),
		errors.Is(err, billingerrors.ErrCompanyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.sweepEnabled && !w.relayEnabled {
		w.logger.Info("worker app has nothing enabled, exiting",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"expiry_sweep_interval", w.sweepEvery.String(),
		"outbox_relay_interval", w.relayEvery.String(),
	)

	sweepTicks := tickerOrNever(w.sweepEnabled, w.sweepEvery)
	relayTicks := tickerOrNever(w.relayEnabled, w.relayEvery)
	defer sweepTicks.Stop()
	defer relayTicks.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sweepTicks.C:
			if err := w.expirySweeper.RunOnce(ctx); err != nil {
				return err
			}
		case <-relayTicks.C:
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// tickerOrNever returns a stopped-in-place ticker for disabled loops so the
// select above stays flat.
func tickerOrNever(enabled bool, every time.Duration) *time.Ticker {
	if !enabled {
		// A very long period stands in for "never"; the ticker is still
		// stopped on shutdown.
		return time.NewTicker(365 * 24 * time.Hour)
	}
	return time.NewTicker(every)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
