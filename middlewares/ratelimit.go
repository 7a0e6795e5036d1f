package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// rateLimiterData holds the rate limiter instance and a mutex for thread-safe operations
type rateLimiterData struct {
	limiter *rate.Limiter
	mu      sync.Mutex
}

// NewRateLimiterMiddleware creates a new rate limiter middleware. The counter
// is in-process only: with multiple server instances each enforces its own
// limit independently, which is acceptable for this deployment but not a
// globally consistent cap.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	data := &rateLimiterData{
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}

	return func(c *gin.Context) {
		data.mu.Lock()
		allowed := data.limiter.Allow()
		data.mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
