package response

import (
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
)

// UserResponse is the outward representation of an account. It has no
// fields for the password hash, the token allow-list or the avatar blob,
// so they can never leak through serialization.
type UserResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Age       *int      `json:"age,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskResponse struct {
	UUID        uuid.UUID `json:"uuid"`
	Description string    `json:"description"`
	Completed   bool      `json:"isCompleted"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UUID:      user.UUID.String(),
		Name:      user.Name,
		Age:       user.Age,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func NewTaskResponse(task *domain.Task, ownerUUID string) TaskResponse {
	return TaskResponse{
		UUID:        task.UUID,
		Description: task.Description,
		Completed:   task.Completed,
		OwnerID:     ownerUUID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
