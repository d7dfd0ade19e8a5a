package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	domainerrors "drafthub/contexts/identity-access/auth-service/domain/errors"
	"drafthub/contexts/identity-access/auth-service/ports"
	"drafthub/internal/shared/accesspolicy"
)

const resetTokenTTL = time.Hour

type Service struct {
	Repo   ports.Repository
	Hasher ports.PasswordHasher
	Tokens ports.TokenCodec
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Login verifies credentials and returns the user plus a signed session token.
func (s Service) Login(ctx context.Context, email string, password string) (ports.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ports.User{}, "", domainerrors.ErrInvalidRequest
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Indistinguishable from a wrong password on purpose.
		return ports.User{}, "", domainerrors.ErrInvalidCredentials
	}
	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		return ports.User{}, "", domainerrors.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(ports.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}, s.now())
	if err != nil {
		return ports.User{}, "", err
	}

	resolveLogger(s.Logger).Info("user logged in",
		"event", "auth_login",
		"module", "identity-access/auth-service",
		"layer", "application",
		"user_id", user.ID,
		"role", string(user.Role),
	)
	return user, token, nil
}

// VerifySession resolves a session token into a request principal. The user
// row is re-read so role or company changes take effect on the next request.
func (s Service) VerifySession(ctx context.Context, token string) (accesspolicy.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return accesspolicy.Principal{}, domainerrors.ErrUnauthenticated
	}
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		return accesspolicy.Principal{}, domainerrors.ErrUnauthenticated
	}
	user, err := s.Repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return accesspolicy.Principal{}, domainerrors.ErrUnauthenticated
	}
	return accesspolicy.Principal{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}

func (s Service) Me(ctx context.Context, principal accesspolicy.Principal) (ports.User, error) {
	if !principal.Authenticated() {
		return ports.User{}, domainerrors.ErrUnauthenticated
	}
	user, err := s.Repo.GetUserByID(ctx, principal.UserID)
	if err != nil {
		return ports.User{}, domainerrors.ErrUnauthenticated
	}
	return user, nil
}

// ForgotPassword stores a one-hour reset token when the email exists. The
// returned token is empty for unknown emails; callers respond identically in
// both cases so the endpoint does not leak account existence.
func (s Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", domainerrors.ErrInvalidRequest
	}
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	token, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return "", err
	}

	// TODO: deliver the token by email once an outbound mail adapter exists.
	resolveLogger(s.Logger).Info("password reset requested",
		"event", "auth_password_reset_requested",
		"module", "identity-access/auth-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return token, nil
}

func (s Service) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return domainerrors.ErrInvalidRequest
	}
	user, err := s.Repo.GetUserByResetToken(ctx, strings.TrimSpace(token), s.now())
	if err != nil {
		return domainerrors.ErrResetTokenInvalid
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, user.ID, hash)
}

// CreateStaffUser creates a Marketing or SuperAdmin user. Platform management
// is a SuperAdmin-only action.
func (s Service) CreateStaffUser(ctx context.Context, principal accesspolicy.Principal, input ports.NewUser) (ports.User, error) {
	if err := policyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})); err != nil {
		return ports.User{}, err
	}
	if !input.Role.Staff() {
		return ports.User{}, domainerrors.ErrInvalidRequest
	}
	input.Email = normalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || input.Email == "" || input.Password == "" {
		return ports.User{}, domainerrors.ErrInvalidRequest
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return ports.User{}, err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.User{}, err
	}
	user := ports.User{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return ports.User{}, err
	}
	return user, nil
}

func (s Service) ListUsers(ctx context.Context, principal accesspolicy.Principal) ([]ports.User, error) {
	if err := policyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})); err != nil {
		return nil, err
	}
	return s.Repo.ListUsers(ctx)
}

func (s Service) DeleteUser(ctx context.Context, principal accesspolicy.Principal, userID string) error {
	if err := policyError(accesspolicy.Evaluate(principal, accesspolicy.ActionManagePlatform, accesspolicy.Target{})); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Repo.DeleteUser(ctx, strings.TrimSpace(userID))
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func policyError(decision accesspolicy.Decision) error {
	if decision.Allowed {
		return nil
	}
	if decision.Reason == accesspolicy.DenyNotAuthenticated {
		return domainerrors.ErrUnauthenticated
	}
	return domainerrors.ErrForbidden
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
