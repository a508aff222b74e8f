package middleware

import (
	"net/http"

	"github.com/northpeak-studio/site-api/internal/api/constants"
	"github.com/northpeak-studio/site-api/internal/service"
	"github.com/northpeak-studio/site-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// CSRFMiddleware checks the double-submit CSRF token for unsafe methods
func CSRFMiddleware(csrfService service.CSRFService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		csrfCookie, err := c.Cookie(constants.CookieCSRF)
		csrfHeader := c.GetHeader(constants.HeaderCSRF)
		if err != nil || !csrfService.ValidateTokens(csrfCookie, csrfHeader) {
			utils.HandleAPIError(c, nil, http.StatusForbidden, "CSRF token invalid or missing")
			c.Abort()
			return
		}

		c.Next()
	}
}
