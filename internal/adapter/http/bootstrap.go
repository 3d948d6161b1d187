package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskapp/internal/adapter/database/postgres"
	pgrepository "taskapp/internal/adapter/database/postgres/repository"
	"taskapp/internal/adapter/database/sqlite"
	sqliterepository "taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/adapter/http/routes"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
	"taskapp/pkg/middlewares"
)

// StartServer opens the store, wires the container and serves until
// ctx is cancelled, then drains with a grace period.
func StartServer(ctx context.Context, cfg *config.AppConfig, appMetrics *metrics.AppMetrics, appLogger *logger.AppLogger) error {
	userRepo, taskRepo, closeStore, err := openStore(ctx, cfg)

	if err != nil {
		return err
	}

	defer closeStore()

	tokens := auth.NewJWT(cfg.JWTSecret)
	container := NewContainer(userRepo, taskRepo, tokens, appMetrics, appLogger)

	var avatarCache *middlewares.AvatarCache

	if cfg.AvatarCacheEnabled {
		avatarCache = middlewares.NewAvatarCache(appLogger, appMetrics)
	}

	router := routes.SetupRouter(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		UserHandler: container.UserHandler,
		TaskHandler: container.TaskHandler,
		Guard:       container.Guard,
		AvatarCache: avatarCache,
	}, appMetrics, appLogger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		appLogger.Info(ctx, "Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.AppConfig) (port.UserRepository, port.TaskRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(ctx, cfg.DatabaseURL, cfg.MigrationsPath)

		if err != nil {
			return nil, nil, nil, err
		}

		return pgrepository.NewUserRepository(db), pgrepository.NewTaskRepository(db), db.Close, nil
	}

	db, err := sqlite.New(cfg.DatabasePath, cfg.MigrationsPath)

	if err != nil {
		return nil, nil, nil, err
	}

	return sqliterepository.NewUserRepository(db), sqliterepository.NewTaskRepository(db), func() { db.Close() }, nil
}
