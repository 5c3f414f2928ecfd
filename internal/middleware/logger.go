package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"travelnest/internal/pkg/logger"
)

// RequestLogger tags every request with an X-Request-ID and writes a
// structured access line after the handler chain completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"status":     c.Writer.Status(),
			"client_ip":  c.ClientIP(),
			"user_id":    c.GetInt64("user_id"),
			"latency_ms": time.Since(start).Milliseconds(),
		}

		if c.Writer.Status() >= 500 || len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			logger.ErrorLogger.WithFields(fields).Error("request failed")
			return
		}
		logger.InfoLogger.WithFields(fields).Info("request")
	}
}
