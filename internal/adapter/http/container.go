package http

import (
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/adapter/imaging"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	AuthUseCase port.AuthService
	UserUseCase port.UserService
	TaskUseCase port.TaskService

	Guard *middleware.AuthGuard

	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	TaskHandler *handler.TaskHandler
}

// NewContainer wires repositories through the services into handlers.
// The repositories decide the backing store; everything above them is
// store-agnostic.
func NewContainer(userRepo port.UserRepository, taskRepo port.TaskRepository, tokens port.TokenService, appMetrics *metrics.AppMetrics, appLogger *logger.AppLogger) *Container {
	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo, imaging.NewResizer())
	taskSvc := service.NewTaskService(taskRepo)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		AuthUseCase: authSvc,
		UserUseCase: userSvc,
		TaskUseCase: taskSvc,

		Guard: middleware.NewAuthGuard(tokens, userRepo),

		AuthHandler: handler.NewAuthHandler(authSvc, appMetrics),
		UserHandler: handler.NewUserHandler(userSvc, appMetrics),
		TaskHandler: handler.NewTaskHandler(taskSvc, appMetrics, appLogger),
	}
}
