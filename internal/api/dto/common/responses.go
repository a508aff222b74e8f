package common

// APIResponse is the standard wrapper for all API responses.
// Success responses carry Message; failures carry Error. Both are plain
// strings so the envelope never leaks internal detail to the caller.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Token   string `json:"token,omitempty"`
}

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// NewTokenResponse creates a success response carrying a CSRF token
func NewTokenResponse(token string) APIResponse {
	return APIResponse{
		Success: true,
		Token:   token,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   message,
	}
}
