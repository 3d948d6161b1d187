package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskapp/internal/core/domain"
)

// DefaultPassword is the plaintext behind every factory user's hash.
const DefaultPassword = "horse-staple-42"

func NewUser(customData ...map[string]any) domain.User {
	encrypted, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	now := time.Now().UTC()

	base := map[string]any{
		"UUID":              uuid.New(),
		"EncryptedPassword": string(encrypted),
		"Avatar":            []byte(nil),
		"CreatedAt":         now,
		"UpdatedAt":         now,
	}

	instance := fab.New(domain.User{})

	return instance.Build(mergeData(base, customData))
}

func NewTask(customData ...map[string]any) domain.Task {
	now := time.Now().UTC()

	base := map[string]any{
		"UUID":      uuid.New(),
		"Completed": false,
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	instance := fab.New(domain.Task{})

	return instance.Build(mergeData(base, customData))
}

// mergeData folds customData into base because fabricator's Build only
// applies the first overrides map it receives.
func mergeData(base map[string]any, customData []map[string]any) map[string]any {
	for _, data := range customData {
		for key, value := range data {
			base[key] = value
		}
	}

	return base
}
