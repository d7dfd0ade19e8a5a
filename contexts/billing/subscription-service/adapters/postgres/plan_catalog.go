package postgresadapter

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
)

// PlanCatalog reads the plans table owned by the plan service. Order
// creation snapshots from here; nothing is written back.
type PlanCatalog struct {
	db *gorm.DB
}

func NewPlanCatalog(db *gorm.DB) *PlanCatalog {
	return &PlanCatalog{db: db}
}

func (c *PlanCatalog) GetPlan(ctx context.Context, id string) (ports.PlanView, error) {
	var model catalogPlanModel
	err := c.db.WithContext(ctx).First(&model, "plan_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PlanView{}, domainerrors.ErrPlanNotFound
		}
		return ports.PlanView{}, err
	}
	return ports.PlanView{
		ID:             model.PlanID,
		Name:           model.Name,
		Price:          model.Price,
		Currency:       model.Currency,
		MaxUsers:       model.MaxUsers,
		StorageLimitGB: model.StorageLimitGB,
		IsActive:       model.IsActive,
	}, nil
}

type catalogPlanModel struct {
	PlanID         string  `gorm:"column:plan_id;primaryKey"`
	Name           string  `gorm:"column:name"`
	Price          float64 `gorm:"column:price"`
	Currency       string  `gorm:"column:currency"`
	MaxUsers       int     `gorm:"column:max_users"`
	StorageLimitGB int     `gorm:"column:storage_limit_gb"`
	IsActive       bool    `gorm:"column:is_active"`
}

func (catalogPlanModel) TableName() string { return "plans" }

var _ ports.PlanCatalog = (*PlanCatalog)(nil)
