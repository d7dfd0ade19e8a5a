package postgresadapter

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainerrors "drafthub/contexts/tenant-management/company-service/domain/errors"
	"drafthub/contexts/tenant-management/company-service/ports"
)

// PlanCatalog is a read-only projection over the plans table owned by
// the billing context. Onboarding only needs name and limits, so no
// write path exists here.
type PlanCatalog struct {
	db *gorm.DB
}

func NewPlanCatalog(db *gorm.DB) *PlanCatalog {
	return &PlanCatalog{db: db}
}

func (c *PlanCatalog) GetPlan(ctx context.Context, id string) (ports.PlanSummary, error) {
	var model planModel
	err := c.db.WithContext(ctx).First(&model, "plan_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PlanSummary{}, domainerrors.ErrPlanNotFound
		}
		return ports.PlanSummary{}, err
	}
	return ports.PlanSummary{
		ID:             model.PlanID,
		Name:           model.Name,
		MaxUsers:       model.MaxUsers,
		StorageLimitGB: model.StorageLimitGB,
	}, nil
}

type planModel struct {
	PlanID         string `gorm:"column:plan_id;primaryKey"`
	Name           string `gorm:"column:name"`
	MaxUsers       int    `gorm:"column:max_users"`
	StorageLimitGB int    `gorm:"column:storage_limit_gb"`
}

func (planModel) TableName() string { return "plans" }

var _ ports.PlanCatalog = (*PlanCatalog)(nil)
