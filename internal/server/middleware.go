package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "_sid"
	contextSessionKey = "session"
)

// RequestLogger emits one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// AuthRequired resolves the bearer token from the Authorization header or
// the session cookie and validates it. Every unauthenticated outcome is a
// uniform 401; only a storage failure becomes a 503.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		data, err := s.sessionSvc.Validate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if data == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextSessionKey, data)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func currentSession(c *gin.Context) *sessiondomain.SessionData {
	value, ok := c.Get(contextSessionKey)
	if !ok {
		return nil
	}
	data, _ := value.(*sessiondomain.SessionData)
	return data
}
