package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/northpeak-studio/site-api/internal/api/middleware"
	"github.com/northpeak-studio/site-api/internal/ratelimit"
	"github.com/northpeak-studio/site-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRelayServer returns a stub email-relay API and a counter of the
// requests it received.
func newRelayServer(t *testing.T, succeed bool, message string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if !succeed {
			w.WriteHeader(http.StatusInternalServerError)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": succeed,
			"message": message,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newContactRouter(relayURL string, store ratelimit.Store) *gin.Engine {
	csrfService := service.NewCSRFService()
	relayService := service.NewRelayService(relayURL, "test-access-key", "owner@example.com", "noreply@example.com")
	h := NewContactHandler(csrfService, relayService)

	router := gin.New()
	router.GET("/api/v1/contact/token", h.Token)
	router.POST("/api/v1/contact",
		middleware.PerClientRateLimit(store),
		middleware.CSRFMiddleware(csrfService),
		h.Submit,
	)
	return router
}

func defaultStore() *ratelimit.MemoryStore {
	return ratelimit.NewMemoryStore(5, time.Minute, 5*time.Minute)
}

// fetchCSRF performs the token request and returns the token plus the
// Set-Cookie header to replay on the submission.
func fetchCSRF(t *testing.T, router *gin.Engine) (token, cookie string) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contact/token", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Token, 64)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return resp.Token, cookies[0].Name + "=" + cookies[0].Value
}

func submit(router *gin.Engine, body map[string]string, token, cookie string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() map[string]string {
	return map[string]string{
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"projectType": "Brand site",
		"message":     "I would like to discuss a new marketing site.",
	}
}

func TestSubmitSuccess(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	w := submit(router, validBody(), token, cookie)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, 1, *calls)

	// The CSRF cookie must be rotated after a successful submission
	rotated := w.Result().Cookies()
	require.NotEmpty(t, rotated)
	assert.Equal(t, "csrf_token", rotated[0].Name)
	assert.NotEqual(t, token, rotated[0].Value)
}

func TestSubmitCSRFMismatch(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	// Flip one character of the header token
	bad := []byte(token)
	if bad[0] == 'a' {
		bad[0] = 'b'
	} else {
		bad[0] = 'a'
	}

	w := submit(router, validBody(), string(bad), cookie)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestSubmitMissingCSRF(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())

	w := submit(router, validBody(), "", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestSubmitInvalidEmail(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	body := validBody()
	body["email"] = "not-an-email"
	w := submit(router, body, token, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address")
	assert.Equal(t, 0, *calls)
}

func TestSubmitShortMessage(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	body := validBody()
	body["message"] = "short"
	w := submit(router, body, token, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message must be at least 10 characters")
	assert.Equal(t, 0, *calls)
}

func TestSubmitHoneypot(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	body := validBody()
	body["botcheck"] = "I am a bot"
	w := submit(router, body, token, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Spam detected")
	assert.Equal(t, 0, *calls)
}

func TestSubmitMissingFields(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	body := validBody()
	body["name"] = ""
	w := submit(router, body, token, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestSubmitSanitizationEmptiesField(t *testing.T) {
	relay, calls := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	// Present before sanitization, empty after: null bytes and
	// whitespace are all stripped away.
	body := validBody()
	body["name"] = "\x00 \x00"
	w := submit(router, body, token, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
	assert.Equal(t, 0, *calls)
}

func TestSubmitSanitizesMarkup(t *testing.T) {
	var received struct {
		Message string `json:"message"`
	}
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer relay.Close()

	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	body := validBody()
	body["message"] = "<script>alert(1)</script> please call me back"
	w := submit(router, body, token, cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, received.Message, "<script>")
	assert.Contains(t, received.Message, "&lt;script&gt;")
}

func TestSubmitRateLimited(t *testing.T) {
	relay, _ := newRelayServer(t, true, "")
	router := newContactRouter(relay.URL, defaultStore())

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		token, cookie := fetchCSRF(t, router)
		last = submit(router, validBody(), token, cookie)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	retryAfter := last.Header().Get("Retry-After")
	require.NotEmpty(t, retryAfter)
	assert.NotEqual(t, "0", retryAfter)
	assert.False(t, strings.HasPrefix(retryAfter, "-"))
}

func TestSubmitRelayFailure(t *testing.T) {
	relay, _ := newRelayServer(t, false, "Access key is invalid")
	router := newContactRouter(relay.URL, defaultStore())
	token, cookie := fetchCSRF(t, router)

	w := submit(router, validBody(), token, cookie)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Access key is invalid")
}
