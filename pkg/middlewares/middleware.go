package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskapp/pkg/config"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
)

func MetricsMiddleware(metrics *metrics.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}

// SetupGinMiddleware installs the shared request pipeline: tracing
// first so the logger and metrics see the span context.
func SetupGinMiddleware(router *gin.Engine, serviceName string, appMetrics *metrics.AppMetrics, appLogger *logger.AppLogger, cfg *config.AppConfig) {
	router.Use(otelgin.Middleware(serviceName))

	router.Use(LoggingMiddleware(appLogger))

	if cfg.EnforceHTTPS {
		router.Use(HTTPSEnforcer())
	}

	router.Use(MetricsMiddleware(appMetrics))
}

// HTTPSEnforcer rejects plain-http requests when the deployment expects
// termination upstream to have happened.
func HTTPSEnforcer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.TLS == nil && c.GetHeader("X-Forwarded-Proto") != "https" {
			c.AbortWithStatusJSON(400, gin.H{"error": "HTTPS required"})
			return
		}

		c.Next()
	}
}
