package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/session"
)

// SessionContextKey is a gin context key for the resolved session.
const SessionContextKey = "session"

// sessionErrorKey holds a store failure seen while loading the session.
const sessionErrorKey = "session_error"

// SessionResolver turns a cookie token into a live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*session.Session, error)
}

// LoadSession attaches the session referenced by the cookie, if any.
// Missing, forged and expired sessions leave the request anonymous. A store
// failure also leaves it anonymous; RequireSession turns it into a 500.
func LoadSession(resolver SessionResolver, cookies CookieConfig, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookies)
		if token == "" {
			c.Next()
			return
		}

		sess, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				c.Next()
				return
			}
			logger.ErrorContext(c.Request.Context(), "session lookup failed", slog.String("error", err.Error()))
			c.Set(sessionErrorKey, err)
			c.Next()
			return
		}

		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// RequireSession rejects anonymous requests.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			if _, failed := c.Get(sessionErrorKey); failed {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request or nil.
func CurrentSession(c *gin.Context) *session.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := val.(*session.Session)
	return sess
}
