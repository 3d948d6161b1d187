package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	. "taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const (
	currentUserKey  = "x-current-user"
	currentTokenKey = "x-current-token"
)

// AuthGuard resolves the caller from the Authorization header. A token
// authorizes only when its signature verifies AND the exact string is
// still on the owning account's allow-list; either check failing yields
// the same 401 before any handler runs.
type AuthGuard struct {
	tokens port.TokenService
	users  port.UserRepository
}

func NewAuthGuard(tokens port.TokenService, users port.UserRepository) *AuthGuard {
	return &AuthGuard{tokens: tokens, users: users}
}

func (g *AuthGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")

		if !ok || tokenString == "" {
			g.reject(c)
			return
		}

		userUUID, err := g.tokens.Verify(tokenString)

		if err != nil {
			g.reject(c)
			return
		}

		user, err := g.users.GetByUUIDAndToken(c.Request.Context(), userUUID, tokenString)

		if err != nil {
			g.reject(c)
			return
		}

		c.Set(currentUserKey, &user)
		c.Set(currentTokenKey, tokenString)

		c.Next()
	}
}

func (g *AuthGuard) reject(c *gin.Context) {
	SendUnauthorizedError(c, "Please authenticate")
	c.Abort()
}

func CurrentUser(c *gin.Context) *domain.User {
	if value, ok := c.Get(currentUserKey); ok {
		if user, ok := value.(*domain.User); ok {
			return user
		}
	}

	return nil
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(currentTokenKey)
}
