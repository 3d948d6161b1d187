package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
)

type AuthService struct {
	users  port.UserRepository
	tokens port.TokenService
}

func NewAuthService(users port.UserRepository, tokens port.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and issues its first session token.
// Email uniqueness is decided by the store's constraint at commit time,
// not by a check-then-insert, so concurrent duplicates have exactly one
// winner.
func (as *AuthService) Register(ctx context.Context, req *request.SignUpRequest) (*domain.User, string, error) {
	if err := util.ValidatePasswordPolicy(req.Password); err != nil {
		return nil, "", err
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()

	user := domain.User{
		UUID:              uuid.New(),
		Name:              strings.TrimSpace(req.Name),
		Age:               req.Age,
		Email:             normalizeEmail(req.Email),
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := as.users.Create(ctx, user)

	if err != nil {
		return nil, "", err
	}

	token, err := as.issueAndStore(ctx, &saved)

	if err != nil {
		return nil, "", err
	}

	return &saved, token, nil
}

// Login resolves the account by credentials. Unknown email and wrong
// password produce the same error so accounts cannot be enumerated.
func (as *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*domain.User, string, error) {
	user, err := as.users.GetByEmail(ctx, normalizeEmail(req.Email))

	if err != nil {
		slog.Error("Auth#Login", "get_by_email", err)
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		slog.Error("Auth#Login", "compare_password", err)
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := as.issueAndStore(ctx, &user)

	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Logout revokes only the presenting token.
func (as *AuthService) Logout(ctx context.Context, userID int, token string) error {
	return as.users.RemoveToken(ctx, userID, token)
}

// LogoutAll revokes every session of the account.
func (as *AuthService) LogoutAll(ctx context.Context, userID int) error {
	return as.users.ClearTokens(ctx, userID)
}

func (as *AuthService) issueAndStore(ctx context.Context, user *domain.User) (string, error) {
	token, err := as.tokens.Issue(user.UUID.String())

	if err != nil {
		return "", err
	}

	if err := as.users.AppendToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	return token, nil
}
