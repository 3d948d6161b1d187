package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

// TokenService issues and verifies signed session tokens. A valid signature
// alone never authorizes a request: the token must also be on the owning
// user's allow-list.
type TokenService interface {
	Issue(userUUID string) (string, error)
	Verify(token string) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, req *request.SignUpRequest) (*domain.User, string, error)
	Login(ctx context.Context, req *request.LoginRequest) (*domain.User, string, error)
	Logout(ctx context.Context, userID int, token string) error
	LogoutAll(ctx context.Context, userID int) error
}
