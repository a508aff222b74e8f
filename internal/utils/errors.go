package utils

import (
	"github.com/northpeak-studio/site-api/internal/api/dto/common"
	"github.com/northpeak-studio/site-api/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is the single funnel for error responses across the API.
// The message is what the caller sees; err is only logged. Callers must
// never put request field values (names, emails, message bodies) in either.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	c.JSON(status, common.NewErrorResponse(message))
}
