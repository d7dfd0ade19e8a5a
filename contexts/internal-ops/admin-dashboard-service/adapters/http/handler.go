package httpadapter

import (
	"context"
	"log/slog"

	"drafthub/contexts/internal-ops/admin-dashboard-service/application"
	httptransport "drafthub/contexts/internal-ops/admin-dashboard-service/transport/http"
	"drafthub/internal/shared/accesspolicy"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) MetricsHandler(ctx context.Context, principal accesspolicy.Principal) (httptransport.MetricsResponse, error) {
	metrics, err := h.Service.GetMetrics(ctx, principal)
	if err != nil {
		return httptransport.MetricsResponse{}, err
	}
	return httptransport.MetricsResponse{
		Companies:           metrics.CompanyCount,
		Users:               metrics.UserCount,
		Projects:            metrics.ProjectCount,
		ActiveSubscriptions: metrics.ActiveSubscriptionCount,
		PaidTransactions:    metrics.PaidTransactionCount,
		TotalRevenueMinor:   metrics.PaidRevenueMinor,
	}, nil
}
