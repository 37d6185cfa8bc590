// README: Access log, one structured line per request.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/logger"
)

func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": GetRequestID(c),
			"client_ip":  c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", fields)
		case c.Writer.Status() >= 400:
			log.Warn("request", fields)
		default:
			log.Info("request", fields)
		}
	}
}
