package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/northpeak-studio/site-api/internal/api/constants"

	"github.com/gin-gonic/gin"
)

// maxBodySize bounds request bodies; neither pipeline has any business
// accepting more than 1 MB.
const maxBodySize = 1 << 20

// PreserveRequestBody middleware reads the request body once and restores it.
// Webhook signature verification needs the exact raw bytes while the JSON
// decoder needs to read the body again; this lets both happen.
func PreserveRequestBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		if int64(len(bodyBytes)) > maxBodySize {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}

		// Restore the body for subsequent middleware and handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		// Store raw bytes for signature verification
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

// RawBody returns the preserved request body bytes, if any
func RawBody(c *gin.Context) ([]byte, bool) {
	val, exists := c.Get(constants.ContextKeyRawBody)
	if !exists {
		return nil, false
	}
	body, ok := val.([]byte)
	return body, ok
}
