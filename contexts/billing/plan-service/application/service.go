package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "drafthub/contexts/billing/plan-service/domain/errors"
	"drafthub/contexts/billing/plan-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreatePlan(ctx context.Context, principal accesspolicy.Principal, input ports.NewPlan) (ports.Plan, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})); err != nil {
		return ports.Plan{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Price <= 0 || input.MaxUsers <= 0 || input.StorageLimitGB <= 0 {
		return ports.Plan{}, domainerrors.ErrInvalidRequest
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = ports.DefaultCurrency
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Plan{}, err
	}
	plan := ports.Plan{
		ID:             id,
		Name:           input.Name,
		Price:          input.Price,
		Currency:       currency,
		MaxUsers:       input.MaxUsers,
		StorageLimitGB: input.StorageLimitGB,
		IsActive:       true,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.CreatePlan(ctx, plan); err != nil {
		return ports.Plan{}, err
	}

	resolveLogger(s.Logger).Info("plan created",
		"event", "plan_created",
		"module", "billing/plan-service",
		"layer", "application",
		"plan_id", plan.ID,
		"name", plan.Name,
	)
	return plan, nil
}

// UpdatePlan applies a partial update. Companies already subscribed keep the
// snapshot taken at order time; edits only affect future orders.
func (s Service) UpdatePlan(ctx context.Context, principal accesspolicy.Principal, planID string, patch ports.PlanPatch) (ports.Plan, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})); err != nil {
		return ports.Plan{}, err
	}
	if patch.Empty() {
		return ports.Plan{}, domainerrors.ErrInvalidRequest
	}

	plan, err := s.Repo.GetPlan(ctx, strings.TrimSpace(planID))
	if err != nil {
		return ports.Plan{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ports.Plan{}, domainerrors.ErrInvalidRequest
		}
		plan.Name = name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return ports.Plan{}, domainerrors.ErrInvalidRequest
		}
		plan.Price = *patch.Price
	}
	if patch.MaxUsers != nil {
		if *patch.MaxUsers <= 0 {
			return ports.Plan{}, domainerrors.ErrInvalidRequest
		}
		plan.MaxUsers = *patch.MaxUsers
	}
	if patch.StorageLimitGB != nil {
		if *patch.StorageLimitGB <= 0 {
			return ports.Plan{}, domainerrors.ErrInvalidRequest
		}
		plan.StorageLimitGB = *patch.StorageLimitGB
	}
	if patch.IsActive != nil {
		plan.IsActive = *patch.IsActive
	}

	if err := s.Repo.UpdatePlan(ctx, plan); err != nil {
		return ports.Plan{}, err
	}
	return plan, nil
}

func (s Service) ListPlans(ctx context.Context, principal accesspolicy.Principal) ([]ports.Plan, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})); err != nil {
		return nil, err
	}
	return s.Repo.ListPlans(ctx)
}

// ListActivePlans is the public pricing view; no principal required.
func (s Service) ListActivePlans(ctx context.Context) ([]ports.Plan, error) {
	return s.Repo.ListActivePlans(ctx)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func denyError(decision accesspolicy.Decision) error {
	if decision.Allowed {
		return nil
	}
	if decision.Reason == accesspolicy.DenyNotAuthenticated {
		return domainerrors.ErrUnauthenticated
	}
	return domainerrors.ErrForbidden
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
