// Package jwtadapter signs and verifies HS256 session tokens.
package jwtadapter

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"drafthub/contexts/identity-access/auth-service/ports"
)

// Sessions are valid for 72 hours from issuance.
const SessionTTL = 72 * time.Hour

type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string) Codec {
	return Codec{secret: []byte(secret), ttl: SessionTTL}
}

type sessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c Codec) Issue(claims ports.SessionClaims, now time.Time) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return token.SignedString(c.secret)
}

func (c Codec) Verify(raw string) (ports.SessionClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return ports.SessionClaims{}, err
	}
	if !token.Valid || claims.UserID == "" {
		return ports.SessionClaims{}, errors.New("invalid session token")
	}
	return ports.SessionClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

var _ ports.TokenCodec = Codec{}
