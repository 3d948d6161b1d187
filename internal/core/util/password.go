package util

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskapp/internal/core/domain"
)

// bcryptCost is fixed at a value landing in the ~100ms range on current
// commodity hardware.
const bcryptCost = 12

const minPasswordLength = 6

// ValidatePasswordPolicy runs before any hashing. Policy failures are
// validation errors, not hash failures.
func ValidatePasswordPolicy(plaintext string) error {
	if len(plaintext) < minPasswordLength {
		return domain.ErrWeakPassword
	}

	if strings.Contains(strings.ToLower(plaintext), "password") {
		return domain.ErrWeakPassword
	}

	return nil
}

func GenerateEncrypt(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
