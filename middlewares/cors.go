package middlewares

import (
	"ShifaCare/config"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowedHeaders = "Content-Type, Authorization"
)

// CorsMiddleware answers cross-origin requests for the origins configured in
// AppConfig. Credentials are always allowed because the admin session rides
// on a cookie, which is also why the allowed origin is echoed per-request
// instead of using a wildcard. Responses vary by Origin so shared caches
// never serve one origin's CORS grant to another.
func CorsMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CorsOrigins))
	for _, origin := range cfg.CorsOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		c.Header("Vary", "Origin")
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "deny")

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", corsAllowedMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		c.Next()
	}
}
