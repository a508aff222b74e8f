package constants

// Cookie and header names used in the application
const (
	// CookieCSRF carries the double-submit CSRF token. Not HttpOnly so
	// the frontend can read it back and echo it in HeaderCSRF.
	CookieCSRF = "csrf_token"

	// HeaderCSRF must carry the exact value of CookieCSRF on unsafe methods.
	HeaderCSRF = "X-CSRF-Token"

	// Cookie paths
	CookiePathRoot = "/" // Root path for cookies available throughout the site

	// Cookie duration in seconds
	CookieDurationCSRF = 3600 // 1 hour; CSRF tokens are short-lived
)
