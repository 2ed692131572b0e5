package clientip

import "net/http"

// Middleware resolves the TCP peer address once per request. It is the
// Middleware of a Resolver that trusts no forwarding headers.
func Middleware(next http.Handler) http.Handler {
	return direct.Middleware(next)
}

// Middleware resolves the caller's address once per request so handlers,
// the rate limiter and log records all see the same value. An address
// already stored by an outer middleware is kept.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if _, ok := req.Context().Value(clientIPContextKey{}).(string); ok {
			next.ServeHTTP(w, req)
			return
		}
		next.ServeHTTP(w, req.WithContext(SetIPToContext(req.Context(), r.IP(req))))
	})
}
