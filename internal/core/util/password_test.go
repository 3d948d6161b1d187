package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskapp/internal/core/domain"
)

func TestValidatePasswordPolicy(t *testing.T) {
	assert.NoError(t, ValidatePasswordPolicy("secret1"))
	assert.NoError(t, ValidatePasswordPolicy("horse-staple-42"))

	assert.ErrorIs(t, ValidatePasswordPolicy("abc"), domain.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordPolicy("password123"), domain.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordPolicy("MyPASSWORDhere"), domain.ErrWeakPassword)
}

func TestGenerateEncryptAndCompare(t *testing.T) {
	hash, err := GenerateEncrypt("secret1")

	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, ComparePassword("secret1", hash))
	assert.Error(t, ComparePassword("wrong", hash))
}
