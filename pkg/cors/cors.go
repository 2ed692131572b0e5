// Package cors adds Cross-Origin Resource Sharing headers to responses.
//
// The middleware only decorates responses; it never answers a request on
// its own. Routes that accept preflight requests register an OPTIONS handler.
package cors

import (
	"net/http"
	"strconv"
	"strings"
)

// Config defines which cross-origin callers are allowed.
type Config struct {
	// AllowOrigins lists allowed origins. Empty or "*" allows all.
	AllowOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// AllowMethods defaults to POST and OPTIONS.
	AllowMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"POST,OPTIONS"`
	// AllowHeaders defaults to Content-Type.
	AllowHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
	// ExposeHeaders are readable by browser scripts.
	ExposeHeaders []string `env:"CORS_EXPOSE_HEADERS" envSeparator:","`
	// MaxAge caches preflight results, in seconds. Zero omits the header.
	MaxAge int `env:"CORS_MAX_AGE" envDefault:"0"`
}

// Middleware returns a net/http middleware applying cfg.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{http.MethodPost, http.MethodOptions}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{"Content-Type"}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")

	wildcard := len(cfg.AllowOrigins) == 0
	origins := make(map[string]bool, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			wildcard = true
		}
		origins[strings.ToLower(o)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			origin := r.Header.Get("Origin")

			switch {
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && origins[strings.ToLower(origin)]:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			default:
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			if r.Method == http.MethodOptions && cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}

			next.ServeHTTP(w, r)
		})
	}
}
