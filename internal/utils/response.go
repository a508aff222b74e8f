package utils

import (
	"net/http"

	"github.com/northpeak-studio/site-api/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with a message
func HandleSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message))
}

// HandleToken sends a success response carrying a CSRF token
func HandleToken(c *gin.Context, token string) {
	c.JSON(http.StatusOK, common.NewTokenResponse(token))
}
