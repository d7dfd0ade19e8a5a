package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"drafthub/contexts/internal-ops/admin-dashboard-service/ports"
)

// Repository aggregates over tables owned by the tenant, identity, project,
// and billing contexts. Reads only; nothing here migrates or writes.
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

func (r *Repository) Snapshot(ctx context.Context, now time.Time) (ports.Metrics, error) {
	var metrics ports.Metrics
	db := r.db.WithContext(ctx)

	if err := db.Table("companies").Count(&metrics.CompanyCount).Error; err != nil {
		return ports.Metrics{}, err
	}
	if err := db.Table("users").Count(&metrics.UserCount).Error; err != nil {
		return ports.Metrics{}, err
	}
	if err := db.Table("projects").Count(&metrics.ProjectCount).Error; err != nil {
		return ports.Metrics{}, err
	}
	err := db.Table("companies").
		Where("subscription_status = ? AND (subscription_expires_at IS NULL OR subscription_expires_at >= ?)", "Active", now).
		Count(&metrics.ActiveSubscriptionCount).Error
	if err != nil {
		return ports.Metrics{}, err
	}
	if err := db.Table("transactions").Where("status = ?", "Paid").Count(&metrics.PaidTransactionCount).Error; err != nil {
		return ports.Metrics{}, err
	}
	var revenue struct{ Total int64 }
	err = db.Table("transactions").
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", "Paid").
		Scan(&revenue).Error
	if err != nil {
		return ports.Metrics{}, err
	}
	metrics.PaidRevenueMinor = revenue.Total
	return metrics, nil
}

var _ ports.Repository = (*Repository)(nil)
