package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "drafthub/contexts/tenant-management/company-service/domain/errors"
	"drafthub/contexts/tenant-management/company-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&companyModel{}, &memberModel{})
}

func (r *Repository) CreateCompanyWithAdmin(ctx context.Context, company ports.Company, admin ports.Member) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(companyFromEntity(company)).Error; err != nil {
			return err
		}
		if err := tx.Create(memberFromEntity(admin)).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, id string) (ports.Company, error) {
	var model companyModel
	err := r.db.WithContext(ctx).First(&model, "company_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Company{}, domainerrors.ErrCompanyNotFound
		}
		return ports.Company{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]ports.Company, error) {
	var models []companyModel
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}
	companies := make([]ports.Company, 0, len(models))
	for _, model := range models {
		companies = append(companies, model.toEntity())
	}
	return companies, nil
}

func (r *Repository) CountMembers(ctx context.Context, companyID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&memberModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) CreateMember(ctx context.Context, member ports.Member) error {
	err := r.db.WithContext(ctx).Create(memberFromEntity(member)).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) ListMembers(ctx context.Context, companyID string) ([]ports.Member, error) {
	var models []memberModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	members := make([]ports.Member, 0, len(models))
	for _, model := range models {
		members = append(members, model.toEntity())
	}
	return members, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type companyModel struct {
	CompanyID             string     `gorm:"column:company_id;primaryKey"`
	Name                  string     `gorm:"column:name"`
	SubscriptionTier      string     `gorm:"column:subscription_tier"`
	SubscriptionStatus    string     `gorm:"column:subscription_status;index"`
	MaxUsers              int        `gorm:"column:max_users"`
	StorageLimitGB        int        `gorm:"column:storage_limit_gb"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
}

func (companyModel) TableName() string { return "companies" }

func (m companyModel) toEntity() ports.Company {
	return ports.Company{
		ID:                    m.CompanyID,
		Name:                  m.Name,
		SubscriptionTier:      m.SubscriptionTier,
		SubscriptionStatus:    m.SubscriptionStatus,
		MaxUsers:              m.MaxUsers,
		StorageLimitGB:        m.StorageLimitGB,
		SubscriptionExpiresAt: m.SubscriptionExpiresAt,
		CreatedAt:             m.CreatedAt,
	}
}

func companyFromEntity(company ports.Company) *companyModel {
	return &companyModel{
		CompanyID:             company.ID,
		Name:                  company.Name,
		SubscriptionTier:      company.SubscriptionTier,
		SubscriptionStatus:    company.SubscriptionStatus,
		MaxUsers:              company.MaxUsers,
		StorageLimitGB:        company.StorageLimitGB,
		SubscriptionExpiresAt: company.SubscriptionExpiresAt,
		CreatedAt:             company.CreatedAt,
	}
}

// memberModel maps onto the shared users table owned by the identity
// context. This context only inserts tenant members and reads rows
// scoped to a company, so the mapping stays a thin projection.
type memberModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CompanyID    string    `gorm:"column:company_id;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (memberModel) TableName() string { return "users" }

func (m memberModel) toEntity() ports.Member {
	return ports.Member{
		ID:           m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         accesspolicy.Role(m.Role),
		CompanyID:    m.CompanyID,
		CreatedAt:    m.CreatedAt,
	}
}

func memberFromEntity(member ports.Member) *memberModel {
	return &memberModel{
		UserID:       member.ID,
		Name:         member.Name,
		Email:        member.Email,
		PasswordHash: member.PasswordHash,
		Role:         string(member.Role),
		CompanyID:    member.CompanyID,
		CreatedAt:    member.CreatedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
