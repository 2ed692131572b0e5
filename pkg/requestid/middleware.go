package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header carries the id in both directions.
const Header = "X-Request-ID"

// Incoming ids are reused only when they are short and header-safe.
var acceptable = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Middleware tags the request context and the response with an id, reusing
// the caller's X-Request-ID when it is acceptable and minting a UUID otherwise.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !acceptable.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}
