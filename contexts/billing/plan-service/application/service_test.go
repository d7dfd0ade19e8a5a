package application_test

import (
	"context"
	"errors"
	"testing"

	plan "drafthub/contexts/billing/plan-service"
	domainerrors "drafthub/contexts/billing/plan-service/domain/errors"
	"drafthub/contexts/billing/plan-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

func superAdmin() accesspolicy.Principal {
	return accesspolicy.Principal{UserID: "root", Role: accesspolicy.RoleSuperAdmin}
}

func TestCreatePlanDefaultsCurrency(t *testing.T) {
	module := plan.NewInMemoryModule(nil)

	created, err := module.Service.CreatePlan(context.Background(), superAdmin(), ports.NewPlan{
		Name: "Starter", Price: 15000, MaxUsers: 3, StorageLimitGB: 25,
	})
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	if created.Currency != "INR" {
		t.Fatalf("expected INR default, got %q", created.Currency)
	}
	if !created.IsActive {
		t.Fatalf("expected new plan active")
	}
}

func TestCreatePlanValidation(t *testing.T) {
	module := plan.NewInMemoryModule(nil)
	ctx := context.Background()

	cases := []ports.NewPlan{
		{Name: "", Price: 100, MaxUsers: 1, StorageLimitGB: 1},
		{Name: "X", Price: 0, MaxUsers: 1, StorageLimitGB: 1},
		{Name: "X", Price: 100, MaxUsers: 0, StorageLimitGB: 1},
		{Name: "X", Price: 100, MaxUsers: 1, StorageLimitGB: 0},
	}
	for _, input := range cases {
		if _, err := module.Service.CreatePlan(ctx, superAdmin(), input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
			t.Fatalf("expected invalid request for %+v, got %v", input, err)
		}
	}
}

func TestCreatePlanForbiddenForTenantRoles(t *testing.T) {
	module := plan.NewInMemoryModule(nil)

	clientAdmin := accesspolicy.Principal{UserID: "u1", Role: accesspolicy.RoleClientAdmin, CompanyID: "c1"}
	_, err := module.Service.CreatePlan(context.Background(), clientAdmin, ports.NewPlan{
		Name: "X", Price: 100, MaxUsers: 1, StorageLimitGB: 1,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdatePlanPartial(t *testing.T) {
	module := plan.NewInMemoryModule(nil)
	ctx := context.Background()

	price := 70000.0
	updated, err := module.Service.UpdatePlan(ctx, superAdmin(), "plan_pro_002", ports.PlanPatch{Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 70000 {
		t.Fatalf("expected new price, got %v", updated.Price)
	}
	if updated.Name != "Pro" || updated.MaxUsers != 15 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdatePlanEmptyPatch(t *testing.T) {
	module := plan.NewInMemoryModule(nil)

	_, err := module.Service.UpdatePlan(context.Background(), superAdmin(), "plan_pro_002", ports.PlanPatch{})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestUpdatePlanMissing(t *testing.T) {
	module := plan.NewInMemoryModule(nil)

	name := "Renamed"
	_, err := module.Service.UpdatePlan(context.Background(), superAdmin(), "plan_missing", ports.PlanPatch{Name: &name})
	if !errors.Is(err, domainerrors.ErrPlanNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListActivePlansHidesDeactivated(t *testing.T) {
	module := plan.NewInMemoryModule(nil)
	ctx := context.Background()

	inactive := false
	if _, err := module.Service.UpdatePlan(ctx, superAdmin(), "plan_basic_001", ports.PlanPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	active, err := module.Service.ListActivePlans(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	for _, p := range active {
		if p.ID == "plan_basic_001" {
			t.Fatalf("deactivated plan still listed")
		}
	}

	all, err := module.Service.ListPlans(ctx, superAdmin())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != len(active)+1 {
		t.Fatalf("expected full catalog to include deactivated plan")
	}
}
