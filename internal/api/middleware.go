package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peershare/item-sharing-backend/internal/auth"
)

// RequestLogger logs each request with method, path, status and latency.
// Authenticated requests also carry the caller's identity.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID := auth.GetUserID(c); userID != "" {
			fields = append(fields,
				zap.String("user_id", userID),
				zap.String("user_email", auth.GetUserEmail(c)),
			)
		}

		logger.Info("http request", fields...)
	}
}
