package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	domainerrors "drafthub/contexts/tenant-management/company-service/domain/errors"
	"drafthub/contexts/tenant-management/company-service/ports"
)

type Store struct {
	mu            sync.RWMutex
	companiesByID map[string]ports.Company
	membersByID   map[string]ports.Member
	plansByID     map[string]ports.PlanSummary
	sequence      uint64
}

func NewStore() *Store {
	return &Store{
		companiesByID: make(map[string]ports.Company),
		membersByID:   make(map[string]ports.Member),
		plansByID: map[string]ports.PlanSummary{
			"plan_basic_001": {
				ID:             "plan_basic_001",
				Name:           "Basic",
				MaxUsers:       5,
				StorageLimitGB: 50,
			},
			"plan_pro_002": {
				ID:             "plan_pro_002",
				Name:           "Pro",
				MaxUsers:       15,
				StorageLimitGB: 200,
			},
			"plan_enterprise_003": {
				ID:             "plan_enterprise_003",
				Name:           "Enterprise",
				MaxUsers:       50,
				StorageLimitGB: 1000,
			},
		},
	}
}

func (s *Store) CreateCompanyWithAdmin(_ context.Context, company ports.Company, admin ports.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, member := range s.membersByID {
		if strings.EqualFold(member.Email, admin.Email) {
			return domainerrors.ErrEmailTaken
		}
	}
	s.companiesByID[company.ID] = company
	s.membersByID[admin.ID] = admin
	return nil
}

func (s *Store) GetCompany(_ context.Context, id string) (ports.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companiesByID[id]
	if !ok {
		return ports.Company{}, domainerrors.ErrCompanyNotFound
	}
	return company, nil
}

func (s *Store) ListCompanies(_ context.Context) ([]ports.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies := make([]ports.Company, 0, len(s.companiesByID))
	for _, company := range s.companiesByID {
		companies = append(companies, company)
	}
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].CreatedAt.Equal(companies[j].CreatedAt) {
			return companies[i].ID < companies[j].ID
		}
		return companies[i].CreatedAt.Before(companies[j].CreatedAt)
	})
	return companies, nil
}

func (s *Store) CountMembers(_ context.Context, companyID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, member := range s.membersByID {
		if member.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateMember(_ context.Context, member ports.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.membersByID {
		if strings.EqualFold(existing.Email, member.Email) {
			return domainerrors.ErrEmailTaken
		}
	}
	s.membersByID[member.ID] = member
	return nil
}

func (s *Store) ListMembers(_ context.Context, companyID string) ([]ports.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]ports.Member, 0)
	for _, member := range s.membersByID {
		if member.CompanyID == companyID {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].ID < members[j].ID
		}
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})
	return members, nil
}

func (s *Store) GetPlan(_ context.Context, id string) (ports.PlanSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plansByID[id]
	if !ok {
		return ports.PlanSummary{}, domainerrors.ErrPlanNotFound
	}
	return plan, nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("tm_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.PlanCatalog = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
