package middleware

import (
	"time"

	"github.com/northpeak-studio/site-api/internal/logging"
	"github.com/northpeak-studio/site-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request through the application logger.
// Only method, path, status, latency and client IP are recorded;
// request bodies never reach the log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		logger := logging.GetGlobalLogger()
		logger.LogHTTPRequest(
			method,
			path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			latency.String(),
		)
	}
}
