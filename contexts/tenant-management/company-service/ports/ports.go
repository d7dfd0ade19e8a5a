package ports

import (
	"context"
	"time"

	"drafthub/internal/shared/accesspolicy"
)

const (
	StatusActive      = "Active"
	StatusExpired     = "Expired"
	StatusGracePeriod = "GracePeriod"
)

// Defaults applied when a company is onboarded without a plan.
const (
	DefaultMaxUsers       = 1
	DefaultStorageLimitGB = 10
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Company struct {
	ID                    string
	Name                  string
	SubscriptionTier      string
	SubscriptionStatus    string
	MaxUsers              int
	StorageLimitGB        int
	SubscriptionExpiresAt *time.Time
	CreatedAt             time.Time
}

// Member is a tenant-scoped user row.
type Member struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         accesspolicy.Role
	CompanyID    string
	CreatedAt    time.Time
}

type OnboardInput struct {
	Name          string
	AdminName     string
	AdminEmail    string
	AdminPassword string
	PlanID        string
}

type NewMemberInput struct {
	Name     string
	Email    string
	Password string
}

// PlanSummary is the slice of a billing plan that onboarding needs.
type PlanSummary struct {
	ID             string
	Name           string
	MaxUsers       int
	StorageLimitGB int
}

type Repository interface {
	// CreateCompanyWithAdmin persists both rows in one unit of work.
	CreateCompanyWithAdmin(ctx context.Context, company Company, admin Member) error
	GetCompany(ctx context.Context, id string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	CountMembers(ctx context.Context, companyID string) (int, error)
	CreateMember(ctx context.Context, member Member) error
	ListMembers(ctx context.Context, companyID string) ([]Member, error)
}

// PlanCatalog is a read-only projection of the billing plan catalog.
type PlanCatalog interface {
	GetPlan(ctx context.Context, id string) (PlanSummary, error)
}
