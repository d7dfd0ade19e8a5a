package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"drafthub/contexts/billing/subscription-service/domain/entities"
	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
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
	return r.db.AutoMigrate(&transactionModel{}, &outboxModel{})
}

func (r *Repository) CreateTransaction(ctx context.Context, transaction entities.Transaction) error {
	model, err := transactionFromEntity(transaction)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *Repository) GetTransactionByOrderID(ctx context.Context, orderID string) (entities.Transaction, error) {
	var model transactionModel
	err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Transaction{}, domainerrors.ErrTransactionNotFound
		}
		return entities.Transaction{}, err
	}
	return model.toEntity()
}

func (r *Repository) ListTransactions(ctx context.Context, companyID string) ([]entities.Transaction, error) {
	var models []transactionModel
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	transactions := make([]entities.Transaction, 0, len(models))
	for _, model := range models {
		transaction, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

// ApplyPayment runs the Created-to-Paid transition in one database
// transaction: the row is locked, the company entitlement rewritten, and the
// billing event appended to the outbox, or none of it happens. A concurrent
// verify that lost the race sees the row already Paid and leaves everything
// untouched.
func (r *Repository) ApplyPayment(ctx context.Context, input ports.ApplyPaymentInput) (entities.Transaction, error) {
	var updated entities.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model transactionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "order_id = ?", input.OrderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrTransactionNotFound
			}
			return err
		}
		if model.Status == entities.StatusPaid {
			updated, err = model.toEntity()
			return err
		}

		paidAt := input.PaidAt
		model.Status = entities.StatusPaid
		model.PaymentID = input.PaymentID
		model.Signature = input.Signature
		model.PaidAt = &paidAt
		if err := tx.Save(&model).Error; err != nil {
			return err
		}

		result := tx.Table("companies").
			Where("company_id = ?", model.CompanyID).
			Updates(map[string]interface{}{
				"subscription_tier":       input.Entitlement.Tier,
				"subscription_status":     "Active",
				"max_users":               input.Entitlement.MaxUsers,
				"storage_limit_gb":        input.Entitlement.StorageLimitGB,
				"subscription_expires_at": input.Entitlement.ExpiresAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCompanyNotFound
		}

		payload, err := json.Marshal(input.Event)
		if err != nil {
			return err
		}
		if err := tx.Create(&outboxModel{
			OutboxID:  uuid.NewString(),
			EventType: input.Event.EventType,
			Payload:   payload,
			Status:    "pending",
			CreatedAt: paidAt,
		}).Error; err != nil {
			return err
		}

		updated, err = model.toEntity()
		return err
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	return updated, nil
}

func (r *Repository) GetCompany(ctx context.Context, companyID string) (ports.CompanyView, error) {
	var model companyEntitlementModel
	err := r.db.WithContext(ctx).First(&model, "company_id = ?", companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CompanyView{}, domainerrors.ErrCompanyNotFound
		}
		return ports.CompanyView{}, err
	}
	return ports.CompanyView{
		ID:                    model.CompanyID,
		SubscriptionTier:      model.SubscriptionTier,
		SubscriptionStatus:    model.SubscriptionStatus,
		MaxUsers:              model.MaxUsers,
		StorageLimitGB:        model.StorageLimitGB,
		SubscriptionExpiresAt: model.SubscriptionExpiresAt,
	}, nil
}

func (r *Repository) ExpireCompanies(ctx context.Context, now time.Time, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("companies").
		Where("subscription_status = ? AND subscription_expires_at < ?", "Active", now).
		Limit(limit).
		Pluck("company_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	err = r.db.WithContext(ctx).
		Table("companies").
		Where("company_id IN ?", ids).
		Update("subscription_status", "Expired").Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var models []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at asc").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	messages := make([]ports.OutboxMessage, 0, len(models))
	for _, model := range models {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:  model.OutboxID,
			EventType: model.EventType,
			Payload:   model.Payload,
			Status:    model.Status,
			CreatedAt: model.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]interface{}{
			"status":       "published",
			"published_at": publishedAt,
		}).Error
}

type transactionModel struct {
	TransactionID string         `gorm:"column:transaction_id;primaryKey"`
	CompanyID     string         `gorm:"column:company_id;index"`
	PlanID        string         `gorm:"column:plan_id"`
	OrderID       string         `gorm:"column:order_id;uniqueIndex"`
	PaymentID     string         `gorm:"column:payment_id"`
	Signature     string         `gorm:"column:signature"`
	Amount        int64          `gorm:"column:amount"`
	Currency      string         `gorm:"column:currency"`
	Status        string         `gorm:"column:status;index"`
	PlanSnapshot  datatypes.JSON `gorm:"column:plan_snapshot"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	PaidAt        *time.Time     `gorm:"column:paid_at"`
}

func (transactionModel) TableName() string { return "transactions" }

func (m transactionModel) toEntity() (entities.Transaction, error) {
	var snapshot entities.PlanSnapshot
	if len(m.PlanSnapshot) > 0 {
		if err := json.Unmarshal(m.PlanSnapshot, &snapshot); err != nil {
			return entities.Transaction{}, err
		}
	}
	return entities.Transaction{
		ID:           m.TransactionID,
		CompanyID:    m.CompanyID,
		PlanID:       m.PlanID,
		OrderID:      m.OrderID,
		PaymentID:    m.PaymentID,
		Signature:    m.Signature,
		Amount:       m.Amount,
		Currency:     m.Currency,
		Status:       m.Status,
		PlanSnapshot: snapshot,
		CreatedAt:    m.CreatedAt,
		PaidAt:       m.PaidAt,
	}, nil
}

func transactionFromEntity(transaction entities.Transaction) (*transactionModel, error) {
	snapshot, err := json.Marshal(transaction.PlanSnapshot)
	if err != nil {
		return nil, err
	}
	return &transactionModel{
		TransactionID: transaction.ID,
		CompanyID:     transaction.CompanyID,
		PlanID:        transaction.PlanID,
		OrderID:       transaction.OrderID,
		PaymentID:     transaction.PaymentID,
		Signature:     transaction.Signature,
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
		Status:        transaction.Status,
		PlanSnapshot:  snapshot,
		CreatedAt:     transaction.CreatedAt,
		PaidAt:        transaction.PaidAt,
	}, nil
}

// companyEntitlementModel is a read/write slice of the companies table owned
// by the tenant context; only entitlement columns are touched here.
type companyEntitlementModel struct {
	CompanyID             string     `gorm:"column:company_id;primaryKey"`
	SubscriptionTier      string     `gorm:"column:subscription_tier"`
	SubscriptionStatus    string     `gorm:"column:subscription_status"`
	MaxUsers              int        `gorm:"column:max_users"`
	StorageLimitGB        int        `gorm:"column:storage_limit_gb"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at"`
}

func (companyEntitlementModel) TableName() string { return "companies" }

type outboxModel struct {
	OutboxID    string         `gorm:"column:outbox_id;primaryKey"`
	EventType   string         `gorm:"column:event_type"`
	Payload     datatypes.JSON `gorm:"column:payload"`
	Status      string         `gorm:"column:status;index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	PublishedAt *time.Time     `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "billing_outbox" }

var _ ports.Repository = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
