package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/logger"
)

func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", map[string]interface{}{
					"panic":      fmt.Sprint(r),
					"path":       c.Request.URL.Path,
					"request_id": GetRequestID(c),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
