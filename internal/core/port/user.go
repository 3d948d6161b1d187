package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	// GetByUUIDAndToken resolves a user only when the exact token string is
	// still on the user's allow-list.
	GetByUUIDAndToken(ctx context.Context, uuid, token string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	// Update applies the given column set in a single statement; it never
	// partially applies.
	Update(ctx context.Context, userID int, columns map[string]any) (domain.User, error)

	AppendToken(ctx context.Context, userID int, token string) error
	RemoveToken(ctx context.Context, userID int, token string) error
	ClearTokens(ctx context.Context, userID int) error

	SetAvatar(ctx context.Context, userID int, avatar []byte) error
	GetAvatarByUUID(ctx context.Context, uuid string) ([]byte, error)

	// DeleteWithTasks removes the user's tasks, tokens and record as one
	// transaction, tasks first.
	DeleteWithTasks(ctx context.Context, userID int) error
}

type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User, req *request.UpdateUserRequest) (domain.User, error)
	Delete(ctx context.Context, user *domain.User) error
	SetAvatar(ctx context.Context, user *domain.User, image []byte) error
	ClearAvatar(ctx context.Context, user *domain.User) error
	GetAvatarByUUID(ctx context.Context, uuid string) ([]byte, error)
}
