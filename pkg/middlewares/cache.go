package middlewares

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
)

const avatarCacheTTL = 30 * time.Second

type cachedImage struct {
	statusCode  int
	contentType string
	body        []byte
}

// AvatarCache keeps recently served avatar bytes in memory. Uploads and
// deletes call Invalidate, so a new avatar is visible on the next read;
// the TTL only bounds how long an entry can outlive a missed
// invalidation.
type AvatarCache struct {
	cache   *cache.Cache
	logger  *logger.AppLogger
	metrics *metrics.AppMetrics
}

func NewAvatarCache(appLogger *logger.AppLogger, appMetrics *metrics.AppMetrics) *AvatarCache {
	return &AvatarCache{
		cache:   cache.New(avatarCacheTTL, 2*avatarCacheTTL),
		logger:  appLogger,
		metrics: appMetrics,
	}
}

func (ac *AvatarCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Param("uuid")

		if entry, found := ac.cache.Get(key); found {
			cached := entry.(cachedImage)

			ac.metrics.RecordCacheHit(c.Request.Context(), c.FullPath())

			c.Header("X-Cache", "HIT")
			c.Data(cached.statusCode, cached.contentType, cached.body)
			c.Abort()
			return
		}

		ac.metrics.RecordCacheMiss(c.Request.Context(), c.FullPath())

		writer := &bufferingWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode != http.StatusOK {
			return
		}

		ac.cache.SetDefault(key, cachedImage{
			statusCode:  writer.statusCode,
			contentType: writer.Header().Get("Content-Type"),
			body:        writer.body.Bytes(),
		})

		ac.logger.Info(c.Request.Context(), "Avatar cached",
			zap.String("key", key),
			zap.Int("bytes", writer.body.Len()),
		)
	}
}

// Invalidate drops the entry after an upload or delete so the next read
// serves fresh bytes instead of waiting out the TTL.
func (ac *AvatarCache) Invalidate(uuid string) {
	ac.cache.Delete(uuid)
}

type bufferingWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *bufferingWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bufferingWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *bufferingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
