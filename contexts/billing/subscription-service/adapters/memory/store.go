package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"drafthub/contexts/billing/subscription-service/domain/entities"
	domainerrors "drafthub/contexts/billing/subscription-service/domain/errors"
	"drafthub/contexts/billing/subscription-service/ports"
)

type Store struct {
	mu              sync.RWMutex
	transactionsByID map[string]entities.Transaction
	orderIndex      map[string]string
	companiesByID   map[string]ports.CompanyView
	plansByID       map[string]ports.PlanView
	outbox          []ports.OutboxMessage
	sequence        uint64
	now             func() time.Time
}

func NewStore() *Store {
	return &Store{
		transactionsByID: make(map[string]entities.Transaction),
		orderIndex:       make(map[string]string),
		companiesByID:    make(map[string]ports.CompanyView),
		plansByID:        make(map[string]ports.PlanView),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// NewSeededStore preloads the standard catalog so order tests can run
// without a billing fixture.
func NewSeededStore() *Store {
	store := NewStore()
	for _, plan := range []ports.PlanView{
		{ID: "plan_basic_001", Name: "Basic", Price: 35000, Currency: "INR", MaxUsers: 5, StorageLimitGB: 50, IsActive: true},
		{ID: "plan_pro_002", Name: "Pro", Price: 65000, Currency: "INR", MaxUsers: 15, StorageLimitGB: 200, IsActive: true},
		{ID: "plan_enterprise_003", Name: "Enterprise", Price: 125000, Currency: "INR", MaxUsers: 50, StorageLimitGB: 1000, IsActive: true},
	} {
		store.plansByID[plan.ID] = plan
	}
	return store
}

// SetNow overrides the store clock for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// PutCompany seeds or replaces a company entitlement row.
func (s *Store) PutCompany(company ports.CompanyView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companiesByID[company.ID] = company
}

// PutPlan seeds or replaces a catalog row.
func (s *Store) PutPlan(plan ports.PlanView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plansByID[plan.ID] = plan
}

func (s *Store) CreateTransaction(_ context.Context, transaction entities.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactionsByID[transaction.ID] = transaction
	s.orderIndex[transaction.OrderID] = transaction.ID
	return nil
}

func (s *Store) GetTransactionByOrderID(_ context.Context, orderID string) (entities.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.orderIndex[orderID]
	if !ok {
		return entities.Transaction{}, domainerrors.ErrTransactionNotFound
	}
	return s.transactionsByID[id], nil
}

func (s *Store) ListTransactions(_ context.Context, companyID string) ([]entities.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transactions := make([]entities.Transaction, 0)
	for _, transaction := range s.transactionsByID {
		if transaction.CompanyID == companyID {
			transactions = append(transactions, transaction)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].CreatedAt.Equal(transactions[j].CreatedAt) {
			return transactions[i].ID > transactions[j].ID
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})
	return transactions, nil
}

func (s *Store) ApplyPayment(_ context.Context, input ports.ApplyPaymentInput) (entities.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.orderIndex[input.OrderID]
	if !ok {
		return entities.Transaction{}, domainerrors.ErrTransactionNotFound
	}
	transaction := s.transactionsByID[id]
	if transaction.IsPaid() {
		return transaction, nil
	}

	company, ok := s.companiesByID[transaction.CompanyID]
	if !ok {
		return entities.Transaction{}, domainerrors.ErrCompanyNotFound
	}

	paidAt := input.PaidAt
	transaction.Status = entities.StatusPaid
	transaction.PaymentID = input.PaymentID
	transaction.Signature = input.Signature
	transaction.PaidAt = &paidAt
	s.transactionsByID[id] = transaction

	expiresAt := input.Entitlement.ExpiresAt
	company.SubscriptionTier = input.Entitlement.Tier
	company.SubscriptionStatus = "Active"
	company.MaxUsers = input.Entitlement.MaxUsers
	company.StorageLimitGB = input.Entitlement.StorageLimitGB
	company.SubscriptionExpiresAt = &expiresAt
	s.companiesByID[company.ID] = company

	payload, err := json.Marshal(input.Event)
	if err != nil {
		return entities.Transaction{}, err
	}
	s.outbox = append(s.outbox, ports.OutboxMessage{
		OutboxID:  fmt.Sprintf("outbox_%d", atomic.AddUint64(&s.sequence, 1)),
		EventType: input.Event.EventType,
		Payload:   payload,
		Status:    "pending",
		CreatedAt: s.now(),
	})
	return transaction, nil
}

func (s *Store) GetCompany(_ context.Context, companyID string) (ports.CompanyView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companiesByID[companyID]
	if !ok {
		return ports.CompanyView{}, domainerrors.ErrCompanyNotFound
	}
	return company, nil
}

func (s *Store) ExpireCompanies(_ context.Context, now time.Time, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := make([]string, 0)
	for id, company := range s.companiesByID {
		if len(expired) >= limit {
			break
		}
		if company.SubscriptionStatus == "Active" &&
			company.SubscriptionExpiresAt != nil &&
			company.SubscriptionExpiresAt.Before(now) {
			company.SubscriptionStatus = "Expired"
			s.companiesByID[id] = company
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	return expired, nil
}

func (s *Store) GetPlan(_ context.Context, id string) (ports.PlanView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plansByID[id]
	if !ok {
		return ports.PlanView{}, domainerrors.ErrPlanNotFound
	}
	return plan, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.Status != "pending" {
			continue
		}
		pending = append(pending, row)
		if len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			s.outbox[i].Status = "published"
			return nil
		}
	}
	return fmt.Errorf("outbox row %s not found", outboxID)
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("txn_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.PlanCatalog = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
