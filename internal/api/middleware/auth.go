package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/blogr/internal/session"
	"github.com/d60-Lab/blogr/pkg/logger"
	"github.com/d60-Lab/blogr/pkg/response"
)

const (
	identityKey = "session.identity"
	tokenKey    = "session.token"
)

// Session resolves the bearer token on every request. Anonymous requests
// pass through with no identity set; only the route decides whether that
// is acceptable.
func Session(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			c.Set(tokenKey, token)
			id, err := mgr.Resolve(c.Request.Context(), token)
			if err != nil {
				// Session backend failure, not a bad token.
				response.InternalError(c, err)
				c.Abort()
				return
			}
			if id != nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when no identity was resolved.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			logger.Debug("unauthenticated request rejected", zap.String("path", c.FullPath()))
			response.Unauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the resolved identity or nil for anonymous.
func IdentityFrom(c *gin.Context) *session.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	return v.(*session.Identity)
}

// TokenFrom returns the raw bearer token, empty when absent.
func TokenFrom(c *gin.Context) string {
	v, ok := c.Get(tokenKey)
	if !ok {
		return ""
	}
	return v.(string)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
