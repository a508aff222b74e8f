package constants

// Context keys for values shared between middleware and handlers
const (
	ContextKeyRequestID = "requestID"
	ContextKeyRawBody   = "rawBody"
)
