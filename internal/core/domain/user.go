package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                int
	UUID              uuid.UUID
	Name              string `validate:"required,max=100"`
	Age               *int   `validate:"omitempty,gte=0"`
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `validate:"required"`
	Avatar            []byte
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (u *User) HasAvatar() bool {
	return len(u.Avatar) > 0
}
