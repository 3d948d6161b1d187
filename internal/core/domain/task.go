package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          int
	UUID        uuid.UUID
	Description string `validate:"required,max=1000"`
	Completed   bool   `validate:"boolean"`
	UserId      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BelongsToUser(userID int) bool {
	return t.UserId == userID
}
