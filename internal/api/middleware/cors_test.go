package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCORSRouter(allowed []string) *gin.Engine {
	router := gin.New()
	router.Use(CORS(allowed))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestCORSOriginAllowList(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantHeader string
	}{
		{"allowed origin echoed", []string{"https://northpeak.studio"}, "https://northpeak.studio", "https://northpeak.studio"},
		{"disallowed origin omitted", []string{"https://northpeak.studio"}, "https://evil.example.com", ""},
		{"wildcard echoes any origin", []string{"*"}, "https://anything.example.com", "https://anything.example.com"},
		{"no origin header", []string{"https://northpeak.studio"}, "", ""},
		{"second entry matches", []string{"https://a.example.com", "https://b.example.com"}, "https://b.example.com", "https://b.example.com"},
		{"empty allow list", nil, "https://northpeak.studio", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCORSRouter(tt.allowed)

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			// A disallowed origin is not an error; the header is simply absent
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newCORSRouter([]string{"https://northpeak.studio"})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://northpeak.studio")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://northpeak.studio" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Access-Control-Allow-Methods missing from preflight response")
	}
	if w.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("Access-Control-Allow-Headers missing from preflight response")
	}
}
