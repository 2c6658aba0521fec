package middleware

import (
	"time"

	"session-auth/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields)
		default:
			logger.Info("request", fields)
		}
	}
}
