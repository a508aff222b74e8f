package middleware

import (
	"net/http"
	"strconv"

	"github.com/northpeak-studio/site-api/internal/api/dto/common"
	"github.com/northpeak-studio/site-api/internal/ratelimit"
	"github.com/northpeak-studio/site-api/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the global rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware is a process-wide token-bucket backstop in front of
// all routes. The per-client fixed window on the contact endpoint is
// separate; this one only protects the process as a whole.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, common.NewErrorResponse("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RPS))

		c.Next()
	}
}

// PerClientRateLimit enforces the fixed-window per-IP limit on a route.
// Rejections carry a Retry-After header with the seconds left in the window.
func PerClientRateLimit(store ratelimit.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.GetRealIP(c)

		allowed, retryAfter := store.Allow(ip)
		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			utils.HandleAPIError(c, nil, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
