package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// IPUnknown is the shared rate-limit bucket for requests whose client IP
// cannot be determined from any header or the connection itself.
const IPUnknown = "unknown"

// GetRealIP extracts the client IP from various headers, respecting reverse proxies.
// This function is used consistently across the application to ensure accurate IP tracking.
func GetRealIP(c *gin.Context) string {
	// Try X-Forwarded-For first (set by proxies)
	forwardedFor := c.GetHeader("X-Forwarded-For")
	if forwardedFor != "" {
		// X-Forwarded-For can be a comma-separated list
		// Format: client, proxy1, proxy2, ...
		// We want the first (leftmost) IP which is the client
		ips := strings.Split(forwardedFor, ",")
		if len(ips) > 0 {
			clientIP := strings.TrimSpace(ips[0])
			if clientIP != "" {
				return clientIP
			}
		}
	}

	// Try X-Real-IP next
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	// Fall back to the connection address via Gin's ClientIP
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return IPUnknown
}
