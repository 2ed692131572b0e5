// Package clientip resolves the originating client address of an
// *http.Request, the identity the contact endpoint rate limits by.
//
// By default only the TCP peer address is used. Deployments behind a CDN
// or reverse proxy opt in to forwarding headers through Config:
//
//	CLIENTIP_TRUSTED_HEADERS=X-Forwarded-For
//	CLIENTIP_TRUSTED_PROXIES=10.0.0.0/8
//
// Headers are honored only when the peer is one of the trusted proxies (or
// any peer, when no proxies are listed). List headers such as
// X-Forwarded-For are read from the right, skipping trusted hops, so the
// result is the address the outermost trusted proxy saw.
//
// When nothing yields a parseable address the resolver returns Anonymous,
// so every request maps to some rate limit bucket. Middleware stores the
// resolved address in the request context; handlers read it back with
// GetIPFromContext.
package clientip
