package rest

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/gopherflow/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	accessTokenKey  = "access_token"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "http request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

// accessToken stores the caller's session token for the handlers. Both
// "Bearer <token>" and a bare token are accepted. A missing token is left
// empty; the services reject it.
func accessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(accessTokenKey, tokenFromHeader(c.GetHeader(common.AuthorizationHeaderName)))
		c.Next()
	}
}

func tokenFromHeader(h string) string {
	h = strings.TrimSpace(h)
	if scheme, rest, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return h
}

func tokenFrom(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
