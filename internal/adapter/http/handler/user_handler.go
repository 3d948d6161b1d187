package handler

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	. "taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/metrics"
)

const maxAvatarBytes = 1 << 20

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type UserHandler struct {
	svc     port.UserService
	metrics *metrics.AppMetrics
}

func NewUserHandler(svc port.UserService, metrics *metrics.AppMetrics) *UserHandler {
	return &UserHandler{
		svc:     svc,
		metrics: metrics,
	}
}

func (u *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := u.svc.GetAll(c.Request.Context())

	if err != nil {
		slog.Error("User#GetAllUsers", "error", err)
		SendInternalError(c, "Error getting accounts")
		return
	}

	out := make([]response.UserResponse, 0, len(users))

	for i := range users {
		out = append(out, response.NewUserResponse(&users[i]))
	}

	SendSuccess(c, http.StatusOK, out)
}

func (u *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	params, err := util.PartialParams[request.UpdateUserRequest](c, "name", "age", "email", "password")

	if err != nil {
		SendDomainError(c, err)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	updated, err := u.svc.Update(ctx, user, &params)

	if err != nil {
		slog.Error("User#UpdateMe", "user_id", user.ID, "error", err)
		SendDomainError(c, err)
		return
	}

	u.metrics.RecordAccountOperation(ctx, "update")

	SendSuccess(c, http.StatusOK, response.NewUserResponse(&updated))
}

// DeleteMe removes the account with all of its tasks and sessions, and
// echoes the removed account's last representation.
func (u *UserHandler) DeleteMe(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	if err := u.svc.Delete(ctx, user); err != nil {
		SendDomainError(c, err)
		return
	}

	u.metrics.RecordAccountOperation(ctx, "delete")

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("avatar")

	if err != nil {
		SendBadRequestError(c, "avatar", "Please upload an image")
		return
	}

	if fileHeader.Size > maxAvatarBytes {
		SendBadRequestError(c, "avatar", "Image must be at most 1MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	if !allowedAvatarExtensions[ext] {
		SendBadRequestError(c, "avatar", "Image must be jpg, jpeg or png")
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		SendInternalError(c, "Error reading image")
		return
	}

	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))

	if err != nil {
		SendInternalError(c, "Error reading image")
		return
	}

	if len(data) > maxAvatarBytes {
		SendBadRequestError(c, "avatar", "Image must be at most 1MB")
		return
	}

	if err := u.svc.SetAvatar(ctx, user, data); err != nil {
		slog.Error("User#UploadAvatar", "user_id", user.ID, "error", err)
		SendBadRequestError(c, "avatar", "Could not process image")
		return
	}

	u.metrics.RecordAccountOperation(ctx, "avatar_upload")

	SendSuccess(c, http.StatusOK, nil, "Avatar updated")
}

func (u *UserHandler) DeleteAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	if err := u.svc.ClearAvatar(ctx, user); err != nil {
		slog.Error("User#DeleteAvatar", "user_id", user.ID, "error", err)
		SendInternalError(c, "Error clearing avatar")
		return
	}

	u.metrics.RecordAccountOperation(ctx, "avatar_delete")

	SendSuccess(c, http.StatusOK, nil, "Avatar removed")
}

// GetAvatar serves raw image bytes. Avatars are always stored as png.
func (u *UserHandler) GetAvatar(c *gin.Context) {
	avatar, err := u.svc.GetAvatarByUUID(c.Request.Context(), c.Param("uuid"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", avatar)
}
