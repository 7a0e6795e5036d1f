package middlewares

import (
	"ShifaCare/logger"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs method, path, status and duration for every request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.L.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
