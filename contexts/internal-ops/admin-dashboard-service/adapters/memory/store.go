package memory

import (
	"context"
	"sync"
	"time"

	"drafthub/contexts/internal-ops/admin-dashboard-service/ports"
)

type Store struct {
	mu      sync.RWMutex
	metrics ports.Metrics
}

func NewStore() *Store {
	return &Store{}
}

// SetMetrics seeds the snapshot returned by Snapshot.
func (s *Store) SetMetrics(metrics ports.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = metrics
}

func (s *Store) Snapshot(_ context.Context, _ time.Time) (ports.Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
