package httpadapter

import (
	"context"
	"log/slog"

	"drafthub/contexts/billing/plan-service/application"
	"drafthub/contexts/billing/plan-service/ports"
	httptransport "drafthub/contexts/billing/plan-service/transport/http"
	"drafthub/internal/shared/accesspolicy"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePlanHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	req httptransport.CreatePlanRequest,
) (httptransport.CreatePlanResponse, error) {
	plan, err := h.Service.CreatePlan(ctx, principal, ports.NewPlan{
		Name:           req.Name,
		Price:          req.Price,
		Currency:       req.Currency,
		MaxUsers:       req.MaxUsers,
		StorageLimitGB: req.StorageLimitGB,
	})
	if err != nil {
		return httptransport.CreatePlanResponse{}, err
	}
	return httptransport.CreatePlanResponse{ID: plan.ID, Message: "Plan created successfully"}, nil
}

func (h Handler) UpdatePlanHandler(
	ctx context.Context,
	principal accesspolicy.Principal,
	planID string,
	req httptransport.UpdatePlanRequest,
) (httptransport.PlanPayload, error) {
	plan, err := h.Service.UpdatePlan(ctx, principal, planID, ports.PlanPatch{
		Name:           req.Name,
		Price:          req.Price,
		MaxUsers:       req.MaxUsers,
		StorageLimitGB: req.StorageLimitGB,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return httptransport.PlanPayload{}, err
	}
	return planPayload(plan), nil
}

func (h Handler) ListPlansHandler(ctx context.Context, principal accesspolicy.Principal) ([]httptransport.PlanPayload, error) {
	plans, err := h.Service.ListPlans(ctx, principal)
	if err != nil {
		return nil, err
	}
	return planPayloads(plans), nil
}

func (h Handler) ListActivePlansHandler(ctx context.Context) ([]httptransport.PlanPayload, error) {
	plans, err := h.Service.ListActivePlans(ctx)
	if err != nil {
		return nil, err
	}
	return planPayloads(plans), nil
}

func planPayloads(plans []ports.Plan) []httptransport.PlanPayload {
	payloads := make([]httptransport.PlanPayload, 0, len(plans))
	for _, plan := range plans {
		payloads = append(payloads, planPayload(plan))
	}
	return payloads
}

func planPayload(plan ports.Plan) httptransport.PlanPayload {
	return httptransport.PlanPayload{
		ID:             plan.ID,
		Name:           plan.Name,
		Price:          plan.Price,
		Currency:       plan.Currency,
		MaxUsers:       plan.MaxUsers,
		StorageLimitGB: plan.StorageLimitGB,
		IsActive:       plan.IsActive,
	}
}
