package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glowdesk/glowdesk-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware logs each request with its id, status and latency
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		shortID := requestID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		entry := logger.L.WithFields(logrus.Fields{
			"request_id": shortID,
			"method":     c.Request.Method,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"path":       path,
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		entry.Info("request completed")
	}
}
