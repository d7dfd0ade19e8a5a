package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	domainerrors "drafthub/contexts/project-delivery/project-service/domain/errors"
	"drafthub/contexts/project-delivery/project-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

type Store struct {
	mu           sync.RWMutex
	projectsByID map[string]ports.Project
	blobs        map[string][]byte
	sequence     uint64
}

func NewStore() *Store {
	return &Store{
		projectsByID: make(map[string]ports.Project),
		blobs:        make(map[string][]byte),
	}
}

func (s *Store) CreateProject(_ context.Context, project ports.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectsByID[project.ID] = project
	return nil
}

func (s *Store) GetProject(_ context.Context, id string) (ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projectsByID[id]
	if !ok {
		return ports.Project{}, domainerrors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Store) ListProjects(_ context.Context, companyID string) ([]ports.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]ports.Project, 0)
	for _, project := range s.projectsByID {
		if project.CompanyID == companyID {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *Store) Save(_ context.Context, fileName string, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "mem://" + fileName
	s.blobs[path] = append([]byte(nil), content...)
	return path, nil
}

// Blob returns a stored payload for assertions.
func (s *Store) Blob(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.blobs[path]
	return content, ok
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("proj_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// AllowAllGate is the test double for the billing gate.
type AllowAllGate struct{}

func (AllowAllGate) Allowed(context.Context, accesspolicy.Principal) (bool, error) {
	return true, nil
}

var _ ports.Repository = (*Store)(nil)
var _ ports.BlobStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
var _ ports.SubscriptionGate = AllowAllGate{}
