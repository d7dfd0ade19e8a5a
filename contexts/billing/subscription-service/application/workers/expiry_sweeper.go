package workers

import (
	"context"
	"log/slog"
	"time"

	"drafthub/contexts/billing/subscription-service/application"
	"drafthub/contexts/billing/subscription-service/ports"
)

// ExpirySweeper persists the Expired status for companies whose paid window
// has ended. Reads already judge expiry lazily; the sweeper keeps the stored
// rows honest so listings and reports agree without recomputing.
type ExpirySweeper struct {
	Repo      ports.Repository
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (s ExpirySweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}

	limit := s.BatchSize
	if limit <= 0 {
		limit = 100
	}

	expired, err := s.Repo.ExpireCompanies(ctx, now, limit)
	if err != nil {
		logger.Error("subscription expiry sweep failed",
			"event", "subscription_expiry_sweep_failed",
			"module", "billing/subscription-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(expired) > 0 {
		logger.Info("subscription expiry sweep completed",
			"event", "subscription_expiry_sweep_completed",
			"module", "billing/subscription-service",
			"layer", "worker",
			"expired_count", len(expired),
		)
	}
	return nil
}
