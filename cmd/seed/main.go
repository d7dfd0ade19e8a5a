package main

import (
	"context"
	"log"
	"log/slog"
	"strings"
	"time"

	planpostgres "drafthub/contexts/billing/plan-service/adapters/postgres"
	planports "drafthub/contexts/billing/plan-service/ports"
	subscriptionpostgres "drafthub/contexts/billing/subscription-service/adapters/postgres"
	cryptoadapter "drafthub/contexts/identity-access/auth-service/adapters/crypto"
	authpostgres "drafthub/contexts/identity-access/auth-service/adapters/postgres"
	authports "drafthub/contexts/identity-access/auth-service/ports"
	projectpostgres "drafthub/contexts/project-delivery/project-service/adapters/postgres"
	companypostgres "drafthub/contexts/tenant-management/company-service/adapters/postgres"
	companyports "drafthub/contexts/tenant-management/company-service/ports"
	"drafthub/internal/platform/config"
	"drafthub/internal/platform/db"
	"drafthub/internal/shared/accesspolicy"
)

// Seed process entrypoint. Runs the schema migrations and inserts the
// baseline catalog plus demo accounts; safe to re-run, existing rows are
// left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect failed: %v", err)
	}
	defer func() {
		if err := pg.Close(); err != nil {
			log.Printf("close postgres failed: %v", err)
		}
	}()

	logger := slog.Default()
	authRepo := authpostgres.NewRepository(pg.DB, logger)
	companyRepo := companypostgres.NewRepository(pg.DB, logger)
	planRepo := planpostgres.NewRepository(pg.DB, logger)
	subscriptionRepo := subscriptionpostgres.NewRepository(pg.DB, logger)
	projectRepo := projectpostgres.NewRepository(pg.DB, logger)

	for name, migrate := range map[string]func() error{
		"auth":         authRepo.AutoMigrate,
		"company":      companyRepo.AutoMigrate,
		"plan":         planRepo.AutoMigrate,
		"subscription": subscriptionRepo.AutoMigrate,
		"project":      projectRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			log.Fatalf("migrate %s failed: %v", name, err)
		}
	}

	ctx := context.Background()
	now := time.Now().UTC()

	seedPlans(ctx, planRepo, now)
	seedStaff(ctx, authRepo, now)
	seedDemoCompany(ctx, authRepo, companyRepo, now)

	log.Println("drafthub seed complete")
}

func seedPlans(ctx context.Context, repo *planpostgres.Repository, now time.Time) {
	plans := []planports.Plan{
		{ID: "plan_basic_001", Name: "Basic", Price: 35000, Currency: "INR", MaxUsers: 5, StorageLimitGB: 50, IsActive: true, CreatedAt: now},
		{ID: "plan_pro_002", Name: "Pro", Price: 65000, Currency: "INR", MaxUsers: 15, StorageLimitGB: 200, IsActive: true, CreatedAt: now},
		{ID: "plan_enterprise_003", Name: "Enterprise", Price: 125000, Currency: "INR", MaxUsers: 50, StorageLimitGB: 1000, IsActive: true, CreatedAt: now},
	}
	for _, plan := range plans {
		if _, err := repo.GetPlan(ctx, plan.ID); err == nil {
			continue
		}
		if err := repo.CreatePlan(ctx, plan); err != nil {
			log.Fatalf("seed plan %s failed: %v", plan.ID, err)
		}
		log.Printf("seeded plan %s (%s)", plan.ID, plan.Name)
	}
}

func seedStaff(ctx context.Context, repo *authpostgres.Repository, now time.Time) {
	staff := []struct {
		id, name, email, password string
		role                      accesspolicy.Role
	}{
		{"user_superadmin_001", "Platform Admin", "admin@drafthub.io", "admin123", accesspolicy.RoleSuperAdmin},
		{"user_marketing_001", "Marketing Desk", "marketing@drafthub.io", "marketing123", accesspolicy.RoleMarketing},
	}
	hasher := cryptoadapter.BcryptHasher{}
	for _, member := range staff {
		if _, err := repo.GetUserByEmail(ctx, member.email); err == nil {
			continue
		}
		hash, err := hasher.Hash(member.password)
		if err != nil {
			log.Fatalf("hash password for %s failed: %v", member.email, err)
		}
		user := authports.User{
			ID:           member.id,
			Name:         member.name,
			Email:        member.email,
			PasswordHash: hash,
			Role:         member.role,
			CreatedAt:    now,
		}
		if err := repo.CreateUser(ctx, user); err != nil {
			log.Fatalf("seed staff user %s failed: %v", member.email, err)
		}
		log.Printf("seeded staff user %s (%s)", member.email, member.role)
	}
}

func seedDemoCompany(ctx context.Context, authRepo *authpostgres.Repository, companyRepo *companypostgres.Repository, now time.Time) {
	const companyID = "company_demo_001"
	if _, err := companyRepo.GetCompany(ctx, companyID); err == nil {
		return
	}

	hash, err := cryptoadapter.BcryptHasher{}.Hash("demo1234")
	if err != nil {
		log.Fatalf("hash demo password failed: %v", err)
	}
	expiresAt := now.Add(30 * 24 * time.Hour)
	company := companyports.Company{
		ID:                    companyID,
		Name:                  "Meridian Structures",
		SubscriptionTier:      "Pro",
		SubscriptionStatus:    companyports.StatusActive,
		MaxUsers:              15,
		StorageLimitGB:        200,
		SubscriptionExpiresAt: &expiresAt,
		CreatedAt:             now,
	}
	admin := companyports.Member{
		ID:           "user_demo_admin_001",
		Name:         "Demo Admin",
		Email:        "admin@meridian.example",
		PasswordHash: hash,
		Role:         accesspolicy.RoleClientAdmin,
		CompanyID:    companyID,
		CreatedAt:    now,
	}
	if err := companyRepo.CreateCompanyWithAdmin(ctx, company, admin); err != nil {
		log.Fatalf("seed demo company failed: %v", err)
	}

	// The company repository writes the same users table the auth side reads,
	// so the admin can sign in immediately. Verify rather than assume.
	if _, err := authRepo.GetUserByEmail(ctx, admin.Email); err != nil {
		log.Printf("warning: demo admin not visible to auth reads: %v", err)
	}
	log.Printf("seeded demo company %s with admin %s", companyID, admin.Email)
}
