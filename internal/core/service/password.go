package service

import (
	"github.com/teamhub/accounts-api/internal/core/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently truncates beyond 72 bytes; reject instead of hashing a
// prefix of what the user typed.
const maxPasswordBytes = 72

// PasswordHasher wraps bcrypt with the cost fixed process-wide. The salt is
// embedded in the produced hash, so nothing is stored next to it.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrInvalidInput
	}
	if len(plaintext) > maxPasswordBytes {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. Any bcrypt error,
// including a malformed hash, reads as a mismatch rather than a failure.
func (h *PasswordHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
