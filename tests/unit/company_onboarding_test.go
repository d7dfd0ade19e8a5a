package unit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	company "drafthub/contexts/tenant-management/company-service"
	domainerrors "drafthub/contexts/tenant-management/company-service/domain/errors"
	"drafthub/contexts/tenant-management/company-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

func marketingPrincipal() accesspolicy.Principal {
	return accesspolicy.Principal{UserID: "staff-1", Role: accesspolicy.RoleMarketing}
}

func TestOnboardWithPlanGrantsEntitlements(t *testing.T) {
	module := company.NewInMemoryModule(slog.Default())

	created, admin, err := module.Service.Onboard(context.Background(), marketingPrincipal(), ports.OnboardInput{
		Name:          "Meridian Structures",
		AdminName:     "Asha",
		AdminEmail:    "asha@meridian.example",
		AdminPassword: "secret123",
		PlanID:        "plan_pro_002",
	})
	if err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if created.SubscriptionStatus != ports.StatusActive {
		t.Fatalf("expected Active, got %s", created.SubscriptionStatus)
	}
	if created.MaxUsers != 15 || created.StorageLimitGB != 200 {
		t.Fatalf("expected Pro entitlements, got %d users %d GB", created.MaxUsers, created.StorageLimitGB)
	}
	if admin.Role != accesspolicy.RoleClientAdmin {
		t.Fatalf("expected admin role ClientAdmin, got %s", admin.Role)
	}
}

func TestOnboardWithoutPlanStartsExpired(t *testing.T) {
	module := company.NewInMemoryModule(slog.Default())

	created, _, err := module.Service.Onboard(context.Background(), marketingPrincipal(), ports.OnboardInput{
		Name:          "Bare Start Ltd",
		AdminName:     "Ravi",
		AdminEmail:    "ravi@barestart.example",
		AdminPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if created.SubscriptionStatus != ports.StatusExpired {
		t.Fatalf("expected Expired until payment, got %s", created.SubscriptionStatus)
	}
	if created.MaxUsers != ports.DefaultMaxUsers {
		t.Fatalf("expected default seat count %d, got %d", ports.DefaultMaxUsers, created.MaxUsers)
	}
}

func TestAddMemberEnforcesSeatLimit(t *testing.T) {
	module := company.NewInMemoryModule(slog.Default())

	created, _, err := module.Service.Onboard(context.Background(), marketingPrincipal(), ports.OnboardInput{
		Name:          "Tight Crew",
		AdminName:     "Lena",
		AdminEmail:    "lena@tightcrew.example",
		AdminPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("onboard failed: %v", err)
	}

	admin := accesspolicy.Principal{UserID: "u1", Role: accesspolicy.RoleClientAdmin, CompanyID: created.ID}
	_, err = module.Service.AddMember(context.Background(), admin, created.ID, ports.NewMemberInput{
		Name:     "Engineer One",
		Email:    "eng1@tightcrew.example",
		Password: "secret123",
	})
	if !errors.Is(err, domainerrors.ErrUserLimitReached) {
		t.Fatalf("expected user limit error past the single default seat, got %v", err)
	}
}

func TestClientAdminCannotOnboardCompanies(t *testing.T) {
	module := company.NewInMemoryModule(slog.Default())

	tenant := accesspolicy.Principal{UserID: "u1", Role: accesspolicy.RoleClientAdmin, CompanyID: "company-1"}
	_, _, err := module.Service.Onboard(context.Background(), tenant, ports.OnboardInput{
		Name:          "Side Hustle",
		AdminName:     "Sam",
		AdminEmail:    "sam@sidehustle.example",
		AdminPassword: "secret123",
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
