package cryptoadapter

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"drafthub/contexts/tenant-management/company-service/ports"
)

// BcryptHasher hashes onboarded admin and member passwords. Verification
// lives in the identity context; this adapter only ever writes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

var _ ports.PasswordHasher = BcryptHasher{}
