package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"regexp"

	"github.com/northpeak-studio/site-api/internal/api/constants"

	"github.com/gin-gonic/gin"
)

// tokenBytes is the number of random bytes per token (32 bytes = 256 bits),
// which hex-encodes to a 64-character string.
const tokenBytes = 32

var tokenFormat = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// CSRFService handles double-submit CSRF token operations
type CSRFService interface {
	GenerateToken() (string, error)
	IsValidTokenFormat(token string) bool
	ValidateTokens(cookieToken, headerToken string) bool
	IssueCookie(c *gin.Context) (string, error)
	RotateCookie(c *gin.Context) error
}

type csrfService struct{}

// NewCSRFService creates a new CSRF service
func NewCSRFService() CSRFService {
	return &csrfService{}
}

// GenerateToken generates a secure random token, hex-encoded
func (s *csrfService) GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IsValidTokenFormat reports whether token is exactly 64 hex characters
func (s *csrfService) IsValidTokenFormat(token string) bool {
	return tokenFormat.MatchString(token)
}

// ValidateTokens validates the cookie token against the header token.
// Both must be present and well-formed; the comparison is constant time
// so an attacker cannot learn the token byte by byte.
func (s *csrfService) ValidateTokens(cookieToken, headerToken string) bool {
	if cookieToken == "" || headerToken == "" {
		return false
	}
	if !s.IsValidTokenFormat(cookieToken) || !s.IsValidTokenFormat(headerToken) {
		return false
	}
	if len(cookieToken) != len(headerToken) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) == 1
}

// IssueCookie returns the token from an existing valid cookie, or generates
// a fresh one and sets it. The cookie is readable by the frontend on purpose:
// the double-submit pattern requires the client to echo it in a header.
func (s *csrfService) IssueCookie(c *gin.Context) (string, error) {
	if existing, err := c.Cookie(constants.CookieCSRF); err == nil && s.IsValidTokenFormat(existing) {
		return existing, nil
	}
	return s.setFreshCookie(c)
}

// RotateCookie unconditionally replaces the CSRF cookie with a fresh token.
// Called after every successful form submission to prevent token reuse.
func (s *csrfService) RotateCookie(c *gin.Context) error {
	_, err := s.setFreshCookie(c)
	return err
}

func (s *csrfService) setFreshCookie(c *gin.Context) (string, error) {
	token, err := s.GenerateToken()
	if err != nil {
		return "", err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     constants.CookieCSRF,
		Value:    token,
		Path:     constants.CookiePathRoot,
		MaxAge:   constants.CookieDurationCSRF,
		Secure:   isSecureRequest(c),
		HttpOnly: false, // frontend must read it back for the header
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// isSecureRequest reports whether the request arrived over HTTPS, directly
// or via a TLS-terminating proxy.
func isSecureRequest(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return c.GetHeader("X-Forwarded-Proto") == "https"
}
