package application_test

import (
	"context"
	"errors"
	"testing"

	dashboard "drafthub/contexts/internal-ops/admin-dashboard-service"
	domainerrors "drafthub/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"drafthub/contexts/internal-ops/admin-dashboard-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

func TestGetMetricsSuperAdminOnly(t *testing.T) {
	module := dashboard.NewInMemoryModule(nil)
	module.Store.SetMetrics(ports.Metrics{
		CompanyCount:            3,
		UserCount:               12,
		ProjectCount:            7,
		ActiveSubscriptionCount: 2,
		PaidTransactionCount:    4,
		PaidRevenueMinor:        26000000,
	})
	ctx := context.Background()

	root := accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
	metrics, err := module.Service.GetMetrics(ctx, root)
	if err != nil {
		t.Fatalf("get metrics failed: %v", err)
	}
	if metrics.CompanyCount != 3 || metrics.PaidRevenueMinor != 26000000 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}

	marketing := accesspolicy.Principal{UserID: "m1", Role: accesspolicy.RoleMarketing}
	if _, err := module.Service.GetMetrics(ctx, marketing); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for marketing, got %v", err)
	}

	clientAdmin := accesspolicy.Principal{UserID: "u1", Role: accesspolicy.RoleClientAdmin, CompanyID: "c1"}
	if _, err := module.Service.GetMetrics(ctx, clientAdmin); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for tenant, got %v", err)
	}

	if _, err := module.Service.GetMetrics(ctx, accesspolicy.Principal{}); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
