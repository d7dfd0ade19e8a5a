package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	domainerrors "drafthub/contexts/identity-access/auth-service/domain/errors"
	"drafthub/contexts/identity-access/auth-service/ports"
)

type Store struct {
	mu        sync.RWMutex
	usersByID map[string]ports.User
	sequence  uint64
}

func NewStore() *Store {
	return &Store{
		usersByID: make(map[string]ports.User),
	}
}

func (s *Store) CreateUser(_ context.Context, user ports.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range s.usersByID {
		if strings.EqualFold(existing.Email, email) {
			return domainerrors.ErrEmailTaken
		}
	}
	user.Email = email
	s.usersByID[user.ID] = user
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.usersByID {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return ports.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]ports.User, 0, len(s.usersByID))
	for _, user := range s.usersByID {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByID[id]; !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.usersByID, id)
	return nil
}

func (s *Store) SetResetToken(_ context.Context, userID string, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	expiry := expiresAt.UTC()
	user.ResetToken = token
	user.ResetExpiresAt = &expiry
	s.usersByID[userID] = user
	return nil
}

func (s *Store) GetUserByResetToken(_ context.Context, token string, now time.Time) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.usersByID {
		if user.ResetToken == token && user.ResetExpiresAt != nil && user.ResetExpiresAt.After(now.UTC()) {
			return user, nil
		}
	}
	return ports.User{}, domainerrors.ErrResetTokenInvalid
}

func (s *Store) UpdatePassword(_ context.Context, userID string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetToken = ""
	user.ResetExpiresAt = nil
	s.usersByID[userID] = user
	return nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return fmt.Sprintf("user_%d", atomic.AddUint64(&s.sequence, 1)), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
