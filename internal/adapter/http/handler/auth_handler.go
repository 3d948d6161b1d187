package handler

import (
	"log/slog"
	"net/http"

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

type AuthHandler struct {
	svc     port.AuthService
	metrics *metrics.AppMetrics
}

func NewAuthHandler(svc port.AuthService, metrics *metrics.AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		metrics: metrics,
	}
}

// Register creates an account and returns it with its first session
// token, so a fresh signup is already logged in.
func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, token, err := a.svc.Register(ctx, &params)

	if err != nil {
		slog.Error("Auth#Register", "error", err)
		SendDomainError(c, err)
		return
	}

	a.metrics.RecordAccountOperation(ctx, "register")

	SendSuccess(c, http.StatusCreated, response.AuthResponse{
		User:  response.NewUserResponse(user),
		Token: token,
	})
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, token, err := a.svc.Login(ctx, &params)

	if err != nil {
		a.metrics.RecordAuthFailure(ctx, "login")
		SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	a.metrics.RecordAccountOperation(ctx, "login")

	SendSuccess(c, http.StatusOK, response.AuthResponse{
		User:  response.NewUserResponse(user),
		Token: token,
	})
}

// Logout revokes the presenting token only; other sessions stay live.
func (a *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	if err := a.svc.Logout(ctx, user.ID, middleware.CurrentToken(c)); err != nil {
		slog.Error("Auth#Logout", "user_id", user.ID, "error", err)
		SendInternalError(c, "Error logging out")
		return
	}

	a.metrics.RecordAccountOperation(ctx, "logout")

	SendSuccess(c, http.StatusOK, nil, "Logged out")
}

func (a *AuthHandler) LogoutAll(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	if err := a.svc.LogoutAll(ctx, user.ID); err != nil {
		slog.Error("Auth#LogoutAll", "user_id", user.ID, "error", err)
		SendInternalError(c, "Error logging out")
		return
	}

	a.metrics.RecordAccountOperation(ctx, "logout_all")

	SendSuccess(c, http.StatusOK, nil, "Logged out of all sessions")
}
