package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domainerrors "drafthub/contexts/billing/plan-service/domain/errors"
	"drafthub/contexts/billing/plan-service/ports"
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
	return r.db.AutoMigrate(&planModel{})
}

func (r *Repository) CreatePlan(ctx context.Context, plan ports.Plan) error {
	return r.db.WithContext(ctx).Create(fromEntity(plan)).Error
}

func (r *Repository) GetPlan(ctx context.Context, id string) (ports.Plan, error) {
	var model planModel
	err := r.db.WithContext(ctx).First(&model, "plan_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Plan{}, domainerrors.ErrPlanNotFound
		}
		return ports.Plan{}, err
	}
	return model.toEntity(), nil
}

func (r *Repository) UpdatePlan(ctx context.Context, plan ports.Plan) error {
	// Updates with a map so false/zero fields are written too.
	result := r.db.WithContext(ctx).
		Model(&planModel{}).
		Where("plan_id = ?", plan.ID).
		Updates(map[string]interface{}{
			"name":             plan.Name,
			"price":            plan.Price,
			"currency":         plan.Currency,
			"max_users":        plan.MaxUsers,
			"storage_limit_gb": plan.StorageLimitGB,
			"is_active":        plan.IsActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPlanNotFound
	}
	return nil
}

func (r *Repository) ListPlans(ctx context.Context) ([]ports.Plan, error) {
	return r.list(ctx, false)
}

func (r *Repository) ListActivePlans(ctx context.Context) ([]ports.Plan, error) {
	return r.list(ctx, true)
}

func (r *Repository) list(ctx context.Context, activeOnly bool) ([]ports.Plan, error) {
	query := r.db.WithContext(ctx).Order("price asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var models []planModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]ports.Plan, 0, len(models))
	for _, model := range models {
		plans = append(plans, model.toEntity())
	}
	return plans, nil
}

type planModel struct {
	PlanID         string    `gorm:"column:plan_id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Price          float64   `gorm:"column:price"`
	Currency       string    `gorm:"column:currency"`
	MaxUsers       int       `gorm:"column:max_users"`
	StorageLimitGB int       `gorm:"column:storage_limit_gb"`
	IsActive       bool      `gorm:"column:is_active;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (planModel) TableName() string { return "plans" }

func (m planModel) toEntity() ports.Plan {
	return ports.Plan{
		ID:             m.PlanID,
		Name:           m.Name,
		Price:          m.Price,
		Currency:       m.Currency,
		MaxUsers:       m.MaxUsers,
		StorageLimitGB: m.StorageLimitGB,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

func fromEntity(plan ports.Plan) *planModel {
	return &planModel{
		PlanID:         plan.ID,
		Name:           plan.Name,
		Price:          plan.Price,
		Currency:       plan.Currency,
		MaxUsers:       plan.MaxUsers,
		StorageLimitGB: plan.StorageLimitGB,
		IsActive:       plan.IsActive,
		CreatedAt:      plan.CreatedAt,
	}
}

var _ ports.Repository = (*Repository)(nil)
