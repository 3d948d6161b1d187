package service

import (
	"context"
	"log/slog"
	"strings"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
)

type UserService struct {
	users  port.UserRepository
	images port.ImageProcessor
}

func NewUserService(users port.UserRepository, images port.ImageProcessor) *UserService {
	return &UserService{users: users, images: images}
}

func (us *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return us.users.GetAll(ctx)
}

// Update translates the partial request into a column set and applies it
// in a single store statement. Nothing is persisted when any field fails
// validation, so an update either fully applies or not at all.
func (us *UserService) Update(ctx context.Context, user *domain.User, req *request.UpdateUserRequest) (domain.User, error) {
	columns := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)

		if name == "" {
			return domain.User{}, domain.ErrInvalidUpdateField
		}

		columns["name"] = name
	}

	if req.Age != nil {
		columns["age"] = *req.Age
	}

	if req.Email != nil {
		columns["email"] = normalizeEmail(*req.Email)
	}

	if req.Password != nil {
		if err := util.ValidatePasswordPolicy(*req.Password); err != nil {
			return domain.User{}, err
		}

		encrypted, err := util.GenerateEncrypt(*req.Password)

		if err != nil {
			return domain.User{}, err
		}

		columns["encrypted_password"] = encrypted
	}

	if len(columns) == 0 {
		return *user, nil
	}

	return us.users.Update(ctx, user.ID, columns)
}

// Delete removes the account and every task it owns as one unit.
func (us *UserService) Delete(ctx context.Context, user *domain.User) error {
	if err := us.users.DeleteWithTasks(ctx, user.ID); err != nil {
		slog.Error("User#Delete", "user_id", user.ID, "error", err)
		return err
	}

	return nil
}

func (us *UserService) SetAvatar(ctx context.Context, user *domain.User, image []byte) error {
	processed, err := us.images.Process(image)

	if err != nil {
		return err
	}

	return us.users.SetAvatar(ctx, user.ID, processed)
}

func (us *UserService) ClearAvatar(ctx context.Context, user *domain.User) error {
	return us.users.SetAvatar(ctx, user.ID, nil)
}

func (us *UserService) GetAvatarByUUID(ctx context.Context, uuid string) ([]byte, error) {
	return us.users.GetAvatarByUUID(ctx, uuid)
}
