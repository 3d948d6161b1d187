package routes

import (
	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/pkg/config"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
	"taskapp/pkg/middlewares"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	TaskHandler *handler.TaskHandler
	Guard       *middleware.AuthGuard
	AvatarCache *middlewares.AvatarCache
}

func SetupRouter(handlers HandlersConfig, appMetrics *metrics.AppMetrics, appLogger *logger.AppLogger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middlewares.SetupGinMiddleware(router, "taskapp", appMetrics, appLogger, cfg)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests skips the telemetry pipeline so handler tests do
// not need a telemetry backend.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	public := router.Group("/")
	{
		public.POST("/accounts", handlers.AuthHandler.Register)
		public.POST("/accounts/login", handlers.AuthHandler.Login)

		avatar := public.Group("/")

		if handlers.AvatarCache != nil {
			avatar.Use(handlers.AvatarCache.Middleware())
		}

		avatar.GET("/accounts/:uuid/avatar", handlers.UserHandler.GetAvatar)
	}

	protected := router.Group("/")
	protected.Use(handlers.Guard.Handler())
	{
		protected.POST("/accounts/logout", handlers.AuthHandler.Logout)
		protected.POST("/accounts/logoutAll", handlers.AuthHandler.LogoutAll)

		protected.GET("/accounts", handlers.UserHandler.GetAllUsers)
		protected.GET("/accounts/me", handlers.UserHandler.GetMe)
		protected.PATCH("/accounts/me", handlers.UserHandler.UpdateMe)
		protected.DELETE("/accounts/me", handlers.UserHandler.DeleteMe)

		protected.POST("/accounts/me/avatar", invalidateAvatar(handlers.AvatarCache), handlers.UserHandler.UploadAvatar)
		protected.DELETE("/accounts/me/avatar", invalidateAvatar(handlers.AvatarCache), handlers.UserHandler.DeleteAvatar)

		protected.POST("/tasks", handlers.TaskHandler.CreateTask)
		protected.GET("/tasks", handlers.TaskHandler.GetAllTasks)
		protected.GET("/tasks/:uuid", handlers.TaskHandler.GetTask)
		protected.PATCH("/tasks/:uuid", handlers.TaskHandler.UpdateTask)
		protected.DELETE("/tasks/:uuid", handlers.TaskHandler.DeleteTask)
	}
}

// invalidateAvatar drops the cached avatar after a successful write so
// the next read does not serve stale bytes.
func invalidateAvatar(avatarCache *middlewares.AvatarCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if avatarCache == nil || c.Writer.Status() >= 400 {
			return
		}

		if user := middleware.CurrentUser(c); user != nil {
			avatarCache.Invalidate(user.UUID.String())
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
