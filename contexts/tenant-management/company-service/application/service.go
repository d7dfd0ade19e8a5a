package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "drafthub/contexts/tenant-management/company-service/domain/errors"
	"drafthub/contexts/tenant-management/company-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

const subscriptionWindow = 30 * 24 * time.Hour

type Service struct {
	Repo   ports.Repository
	Plans  ports.PlanCatalog
	Hasher ports.PasswordHasher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Onboard creates a company and its first ClientAdmin. With a plan the
// company starts Active with the plan's entitlements and a 30-day window;
// without one it starts Expired on the default single-seat entitlements.
func (s Service) Onboard(ctx context.Context, principal accesspolicy.Principal, input ports.OnboardInput) (ports.Company, ports.Member, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionOnboardCompany, accesspolicy.Target{})); err != nil {
		return ports.Company{}, ports.Member{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.AdminName = strings.TrimSpace(input.AdminName)
	input.AdminEmail = strings.ToLower(strings.TrimSpace(input.AdminEmail))
	if input.Name == "" || input.AdminName == "" || input.AdminEmail == "" || input.AdminPassword == "" {
		return ports.Company{}, ports.Member{}, domainerrors.ErrInvalidRequest
	}

	now := s.now()
	company := ports.Company{
		Name:               input.Name,
		SubscriptionStatus: ports.StatusExpired,
		MaxUsers:           ports.DefaultMaxUsers,
		StorageLimitGB:     ports.DefaultStorageLimitGB,
		CreatedAt:          now,
	}
	if strings.TrimSpace(input.PlanID) != "" {
		plan, err := s.Plans.GetPlan(ctx, strings.TrimSpace(input.PlanID))
		if err != nil {
			return ports.Company{}, ports.Member{}, err
		}
		expiry := now.Add(subscriptionWindow)
		company.SubscriptionStatus = ports.StatusActive
		company.SubscriptionTier = plan.Name
		company.MaxUsers = plan.MaxUsers
		company.StorageLimitGB = plan.StorageLimitGB
		company.SubscriptionExpiresAt = &expiry
	}

	companyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Company{}, ports.Member{}, err
	}
	adminID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Company{}, ports.Member{}, err
	}
	hash, err := s.Hasher.Hash(input.AdminPassword)
	if err != nil {
		return ports.Company{}, ports.Member{}, err
	}

	company.ID = companyID
	admin := ports.Member{
		ID:           adminID,
		Name:         input.AdminName,
		Email:        input.AdminEmail,
		PasswordHash: hash,
		Role:         accesspolicy.RoleClientAdmin,
		CompanyID:    companyID,
		CreatedAt:    now,
	}
	if err := s.Repo.CreateCompanyWithAdmin(ctx, company, admin); err != nil {
		return ports.Company{}, ports.Member{}, err
	}

	resolveLogger(s.Logger).Info("company onboarded",
		"event", "company_onboarded",
		"module", "tenant-management/company-service",
		"layer", "application",
		"company_id", companyID,
		"status", company.SubscriptionStatus,
		"tier", company.SubscriptionTier,
	)
	return company, admin, nil
}

func (s Service) ListCompanies(ctx context.Context, principal accesspolicy.Principal) ([]ports.Company, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionListCompanies, accesspolicy.Target{})); err != nil {
		return nil, err
	}
	companies, err := s.Repo.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range companies {
		companies[i] = effectiveCompany(companies[i], now)
	}
	return companies, nil
}

func (s Service) GetCompany(ctx context.Context, principal accesspolicy.Principal, companyID string) (ports.Company, error) {
	companyID = strings.TrimSpace(companyID)
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionViewCompany, accesspolicy.Target{CompanyID: companyID})); err != nil {
		return ports.Company{}, err
	}
	company, err := s.Repo.GetCompany(ctx, companyID)
	if err != nil {
		return ports.Company{}, err
	}
	return effectiveCompany(company, s.now()), nil
}

// AddMember creates a ClientEngineer inside the caller's company, subject to
// the plan's seat limit. The limit is enforced here only, never retroactively.
func (s Service) AddMember(ctx context.Context, principal accesspolicy.Principal, companyID string, input ports.NewMemberInput) (ports.Member, error) {
	companyID = strings.TrimSpace(companyID)

	// Role and tenant ownership first, so outsiders learn nothing about the
	// company's existence or size.
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionAddCompanyUser, accesspolicy.Target{CompanyID: companyID})); err != nil {
		return ports.Member{}, err
	}

	company, err := s.Repo.GetCompany(ctx, companyID)
	if err != nil {
		return ports.Member{}, err
	}
	count, err := s.Repo.CountMembers(ctx, companyID)
	if err != nil {
		return ports.Member{}, err
	}
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionAddCompanyUser, accesspolicy.Target{
		CompanyID:   companyID,
		MemberCount: count,
		MaxUsers:    company.MaxUsers,
	})); err != nil {
		return ports.Member{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return ports.Member{}, domainerrors.ErrInvalidRequest
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return ports.Member{}, err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.Member{}, err
	}
	member := ports.Member{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         accesspolicy.RoleClientEngineer,
		CompanyID:    companyID,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.CreateMember(ctx, member); err != nil {
		return ports.Member{}, err
	}
	return member, nil
}

func (s Service) ListMembers(ctx context.Context, principal accesspolicy.Principal, companyID string) ([]ports.Member, error) {
	companyID = strings.TrimSpace(companyID)
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionViewCompanyUsers, accesspolicy.Target{CompanyID: companyID})); err != nil {
		return nil, err
	}
	return s.Repo.ListMembers(ctx, companyID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

// effectiveCompany applies the lazy expiry check: a stored Active status whose
// window has passed reads as Expired. The stored row is not rewritten here;
// the billing sweeper persists the transition.
func effectiveCompany(company ports.Company, now time.Time) ports.Company {
	if company.SubscriptionStatus == ports.StatusActive &&
		company.SubscriptionExpiresAt != nil &&
		company.SubscriptionExpiresAt.Before(now) {
		company.SubscriptionStatus = ports.StatusExpired
	}
	return company
}

func denyError(decision accesspolicy.Decision) error {
	if decision.Allowed {
		return nil
	}
	switch decision.Reason {
	case accesspolicy.DenyNotAuthenticated:
		return domainerrors.ErrUnauthenticated
	case accesspolicy.DenyUserLimitReached:
		return domainerrors.ErrUserLimitReached
	case accesspolicy.DenyNoCompany:
		return domainerrors.ErrInvalidRequest
	default:
		return domainerrors.ErrForbidden
	}
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
