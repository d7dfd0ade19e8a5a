package ports

import (
	"context"
	"time"

	"drafthub/contexts/billing/subscription-service/domain/entities"
	"drafthub/internal/shared/events"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PlanView is the catalog slice an order needs. Only active plans are
// purchasable.
type PlanView struct {
	ID             string
	Name           string
	Price          float64
	Currency       string
	MaxUsers       int
	StorageLimitGB int
	IsActive       bool
}

type PlanCatalog interface {
	GetPlan(ctx context.Context, id string) (PlanView, error)
}

// CompanyView is the entitlement slice of a company row this context reads
// and, on a verified payment, rewrites.
type CompanyView struct {
	ID                    string
	SubscriptionTier      string
	SubscriptionStatus    string
	MaxUsers              int
	StorageLimitGB        int
	SubscriptionExpiresAt *time.Time
}

// Entitlement is what a verified payment grants a company.
type Entitlement struct {
	Tier           string
	MaxUsers       int
	StorageLimitGB int
	ExpiresAt      time.Time
}

// ApplyPaymentInput is the atomic Created-to-Paid transition: the transaction
// row flips to Paid and the company row takes the entitlement, in one unit of
// work together with the outbox append. Re-applying to an already Paid
// transaction is a no-op.
type ApplyPaymentInput struct {
	OrderID     string
	PaymentID   string
	Signature   string
	PaidAt      time.Time
	Entitlement Entitlement
	Event       events.Envelope
}

type Repository interface {
	CreateTransaction(ctx context.Context, transaction entities.Transaction) error
	GetTransactionByOrderID(ctx context.Context, orderID string) (entities.Transaction, error)
	ListTransactions(ctx context.Context, companyID string) ([]entities.Transaction, error)
	ApplyPayment(ctx context.Context, input ApplyPaymentInput) (entities.Transaction, error)
	GetCompany(ctx context.Context, companyID string) (CompanyView, error)
	// ExpireCompanies persists the Expired status for companies whose Active
	// window ended before now, returning the affected company IDs.
	ExpireCompanies(ctx context.Context, now time.Time, limit int) ([]string, error)
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	Status    string
	CreatedAt time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// PaymentGateway fronts the external payment provider. CreateOrder takes the
// amount in minor currency units. VerifySignature returns nil only for a
// signature the provider's secret actually produced.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) error
}
