package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"drafthub/contexts/billing/subscription-service/domain/entities"
	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
	"drafthub/internal/shared/accesspolicy"
	"drafthub/internal/shared/events"
)

const (
	subscriptionWindow = 30 * 24 * time.Hour

	EventPaymentVerified = "billing.payment.verified"

	sourceService = "billing/subscription-service"
)

type Service struct {
	Repo    ports.Repository
	Plans   ports.PlanCatalog
	Gateway ports.PaymentGateway
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// CreateOrder opens a payment order for the caller's company against an
// active plan. The plan's terms are snapshotted into the transaction; later
// catalog edits do not affect this purchase.
func (s Service) CreateOrder(ctx context.Context, principal accesspolicy.Principal, planID string) (entities.Transaction, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManageSubscription, accesspolicy.Target{CompanyID: principal.CompanyID})); err != nil {
		return entities.Transaction{}, err
	}

	planID = strings.TrimSpace(planID)
	if planID == "" {
		return entities.Transaction{}, domainerrors.ErrInvalidRequest
	}
	plan, err := s.Plans.GetPlan(ctx, planID)
	if err != nil {
		return entities.Transaction{}, err
	}
	if !plan.IsActive {
		return entities.Transaction{}, domainerrors.ErrPlanNotFound
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Transaction{}, err
	}
	currency := plan.Currency
	if currency == "" {
		currency = "INR"
	}
	amount := int64(math.Round(plan.Price * 100))

	orderID, err := s.Gateway.CreateOrder(ctx, amount, currency, id)
	if err != nil {
		return entities.Transaction{}, fmt.Errorf("create gateway order: %w", err)
	}

	transaction := entities.Transaction{
		ID:        id,
		CompanyID: principal.CompanyID,
		PlanID:    plan.ID,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  currency,
		Status:    entities.StatusCreated,
		PlanSnapshot: entities.PlanSnapshot{
			Name:           plan.Name,
			Price:          plan.Price,
			MaxUsers:       plan.MaxUsers,
			StorageLimitGB: plan.StorageLimitGB,
		},
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateTransaction(ctx, transaction); err != nil {
		return entities.Transaction{}, err
	}

	ResolveLogger(s.Logger).Info("payment order created",
		"event", "payment_order_created",
		"module", sourceService,
		"layer", "application",
		"transaction_id", transaction.ID,
		"company_id", transaction.CompanyID,
		"plan_id", transaction.PlanID,
		"order_id", transaction.OrderID,
		"amount_minor", transaction.Amount,
	)
	return transaction, nil
}

// VerifyPayment checks the gateway signature for an order and, on success,
// atomically marks the transaction Paid and grants the snapshotted
// entitlement to the company for a fresh 30-day window. A transaction that is
// already Paid verifies again as a no-op. A bad signature leaves both the
// transaction and the company untouched.
func (s Service) VerifyPayment(ctx context.Context, principal accesspolicy.Principal, orderID, paymentID, signature string) (entities.Transaction, error) {
	orderID = strings.TrimSpace(orderID)
	paymentID = strings.TrimSpace(paymentID)
	if orderID == "" || paymentID == "" || signature == "" {
		return entities.Transaction{}, domainerrors.ErrInvalidRequest
	}

	transaction, err := s.Repo.GetTransactionByOrderID(ctx, orderID)
	if err != nil {
		return entities.Transaction{}, err
	}
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManageSubscription, accesspolicy.Target{CompanyID: transaction.CompanyID})); err != nil {
		return entities.Transaction{}, err
	}
	if transaction.IsPaid() {
		return transaction, nil
	}

	if err := s.Gateway.VerifySignature(orderID, paymentID, signature); err != nil {
		ResolveLogger(s.Logger).Warn("payment signature rejected",
			"event", "payment_signature_rejected",
			"module", sourceService,
			"layer", "application",
			"transaction_id", transaction.ID,
			"order_id", orderID,
		)
		return entities.Transaction{}, domainerrors.ErrPaymentVerificationFailed
	}

	now := s.now()
	entitlement := ports.Entitlement{
		Tier:           transaction.PlanSnapshot.Name,
		MaxUsers:       transaction.PlanSnapshot.MaxUsers,
		StorageLimitGB: transaction.PlanSnapshot.StorageLimitGB,
		ExpiresAt:      now.Add(subscriptionWindow),
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Transaction{}, err
	}
	updated, err := s.Repo.ApplyPayment(ctx, ports.ApplyPaymentInput{
		OrderID:     orderID,
		PaymentID:   paymentID,
		Signature:   signature,
		PaidAt:      now,
		Entitlement: entitlement,
		Event: events.Envelope{
			EventID:        eventID,
			EventType:      EventPaymentVerified,
			SourceService:  sourceService,
			OccurredAtUTC:  now,
			CorrelationID:  orderID,
			EntityType:     "transaction",
			EntityID:       transaction.ID,
			PayloadVersion: 1,
			Payload: paymentVerifiedPayload{
				CompanyID: transaction.CompanyID,
				PlanID:    transaction.PlanID,
				OrderID:   orderID,
				PaymentID: paymentID,
				Amount:    transaction.Amount,
				Currency:  transaction.Currency,
				Tier:      entitlement.Tier,
				ExpiresAt: entitlement.ExpiresAt,
			},
		},
	})
	if err != nil {
		return entities.Transaction{}, err
	}

	ResolveLogger(s.Logger).Info("payment verified",
		"event", "payment_verified",
		"module", sourceService,
		"layer", "application",
		"transaction_id", updated.ID,
		"company_id", updated.CompanyID,
		"order_id", orderID,
		"tier", entitlement.Tier,
	)
	return updated, nil
}

// ListTransactions returns the caller's company payment history, newest
// first.
func (s Service) ListTransactions(ctx context.Context, principal accesspolicy.Principal) ([]entities.Transaction, error) {
	if err := denyError(accesspolicy.Evaluate(principal, accesspolicy.ActionViewTransactions, accesspolicy.Target{CompanyID: principal.CompanyID})); err != nil {
		return nil, err
	}
	return s.Repo.ListTransactions(ctx, principal.CompanyID)
}

// CheckAccess gates tenant features on a live subscription. Staff bypass the
// gate; tenants are denied only when their company reads Expired, either
// stored as such or an Active row judged lazily past its window. GracePeriod
// keeps the gate open until the sweeper flips it.
func (s Service) CheckAccess(ctx context.Context, principal accesspolicy.Principal) error {
	if !principal.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	if principal.Role.Staff() {
		return nil
	}
	if principal.CompanyID == "" {
		return domainerrors.ErrForbidden
	}
	company, err := s.Repo.GetCompany(ctx, principal.CompanyID)
	if err != nil {
		return err
	}
	if company.SubscriptionStatus == "Expired" {
		return domainerrors.ErrSubscriptionExpired
	}
	if company.SubscriptionStatus == "Active" &&
		company.SubscriptionExpiresAt != nil && company.SubscriptionExpiresAt.Before(s.now()) {
		return domainerrors.ErrSubscriptionExpired
	}
	return nil
}

type paymentVerifiedPayload struct {
	CompanyID string    `json:"companyId"`
	PlanID    string    `json:"planId"`
	OrderID   string    `json:"orderId"`
	PaymentID string    `json:"paymentId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Tier      string    `json:"tier"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func denyError(decision accesspolicy.Decision) error {
	if decision.Allowed {
		return nil
	}
	switch decision.Reason {
	case accesspolicy.DenyNotAuthenticated:
		return domainerrors.ErrUnauthenticated
	case accesspolicy.DenyNoCompany:
		return domainerrors.ErrInvalidRequest
	default:
		return domainerrors.ErrForbidden
	}
}

// ResolveLogger is shared with the worker package.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
