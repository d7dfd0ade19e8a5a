package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	domainerrors "drafthub/contexts/billing/plan-service/domain/errors"
	"drafthub/contexts/billing/plan-service/ports"
)

type Store struct {
	mu        sync.RWMutex
	plansByID map[string]ports.Plan
	sequence  uint64
}

func NewStore() *Store {
	return &Store{plansByID: make(map[string]ports.Plan)}
}

// NewSeededStore returns a store preloaded with the standard catalog.
func NewSeededStore() *Store {
	store := NewStore()
	now := time.Now().UTC()
	for _, plan := range []ports.Plan{
		{ID: "plan_basic_001", Name: "Basic", Price: 35000, Currency: "INR", MaxUsers: 5, StorageLimitGB: 50, IsActive: true, CreatedAt: now},
		{ID: "plan_pro_002", Name: "Pro", Price: 65000, Currency: "INR", MaxUsers: 15, StorageLimitGB: 200, IsActive: true, CreatedAt: now},
		{ID: "plan_enterprise_003", Name: "Enterprise", Price: 125000, Currency: "INR", MaxUsers: 50, StorageLimitGB: 1000, IsActive: true, CreatedAt: now},
	} {
		store.plansByID[plan.ID] = plan
	}
	return store
}

func (s *Store) CreatePlan(_ context.Context, plan ports.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plansByID[plan.ID] = plan
	return nil
}

func (s *Store) GetPlan(_ context.Context, id string) (ports.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plansByID[id]
	if !ok {
		return ports.Plan{}, domainerrors.ErrPlanNotFound
	}
	return plan, nil
}

func (s *Store) UpdatePlan(_ context.Context, plan ports.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plansByID[plan.ID]; !ok {
		return domainerrors.ErrPlanNotFound
	}
	s.plansByID[plan.ID] = plan
	return nil
}

func (s *Store) ListPlans(_ context.Context) ([]ports.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(false), nil
}

func (s *Store) ListActivePlans(_ context.Context) ([]ports.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(true), nil
}

func (s *Store) sortedLocked(activeOnly bool) []ports.Plan {
	plans := make([]ports.Plan, 0, len(s.plansByID))
	for _, plan := range s.plansByID {
		if activeOnly && !plan.IsActive {
			continue
		}
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Price < plans[j].Price })
	return plans
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("plan_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
