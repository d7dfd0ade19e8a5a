package ports

import (
	"context"
	"time"

	"drafthub/internal/shared/accesspolicy"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// User is the stored identity record. PasswordHash never crosses transport.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           accesspolicy.Role
	CompanyID      string
	ResetToken     string
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
}

type NewUser struct {
	Name      string
	Email     string
	Password  string
	Role      accesspolicy.Role
	CompanyID string
}

type Repository interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, userID string, token string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (User, error)
	// UpdatePassword replaces the hash and clears any reset token.
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

// PasswordHasher is the opaque one-way hash/verify primitive.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) error
}

// SessionClaims is the payload carried by a signed session token.
type SessionClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenCodec signs and verifies session tokens. Verify must reject expired or
// malformed tokens.
type TokenCodec interface {
	Issue(claims SessionClaims, now time.Time) (string, error)
	Verify(token string) (SessionClaims, error)
}
