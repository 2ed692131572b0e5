package cors_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruhtouch/contactapi/pkg/cors"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(cfg cors.Config, method, origin string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, "/api/contact", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	cors.Middleware(cfg)(ok).ServeHTTP(w, r)
	return w
}

func TestMiddleware_Wildcard(t *testing.T) {
	t.Parallel()

	w := serve(cors.Config{}, http.MethodPost, "https://example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestMiddleware_AllowList(t *testing.T) {
	t.Parallel()

	cfg := cors.Config{AllowOrigins: []string{"https://ruhtouch.com/"}, MaxAge: 600, ExposeHeaders: []string{"Retry-After"}}

	t.Run("allowed origin is echoed", func(t *testing.T) {
		t.Parallel()
		w := serve(cfg, http.MethodOptions, "https://RuhTouch.com")
		assert.Equal(t, "https://RuhTouch.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
		assert.Equal(t, "Retry-After", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")
	})

	t.Run("other origin gets no headers", func(t *testing.T) {
		t.Parallel()
		w := serve(cfg, http.MethodPost, "https://evil.example")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("max age only on preflight", func(t *testing.T) {
		t.Parallel()
		w := serve(cfg, http.MethodPost, "https://ruhtouch.com")
		assert.Empty(t, w.Header().Get("Access-Control-Max-Age"))
	})
}
