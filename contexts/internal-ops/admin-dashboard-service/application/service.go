package application

import (
	"context"
	"log/slog"
	"time"

	domainerrors "drafthub/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"drafthub/contexts/internal-ops/admin-dashboard-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) GetMetrics(ctx context.Context, principal accesspolicy.Principal) (ports.Metrics, error) {
	decision := accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})
	if !decision.Allowed {
		if decision.Reason == accesspolicy.DenyNotAuthenticated {
			return ports.Metrics{}, domainerrors.ErrUnauthenticated
		}
		return ports.Metrics{}, domainerrors.ErrForbidden
	}
	return s.Repo.Snapshot(ctx, s.now())
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
