package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/ruhtouch/contactapi/pkg/clientip"
)

// Client keys longer than this are hashed before they reach the store.
const maxKeyLength = 64

// KeyFunc picks the identity a request is counted against.
type KeyFunc func(*http.Request) string

// ByIP counts requests per client address. The address resolved by
// clientip middleware wins; otherwise the TCP peer address is used.
func ByIP(r *http.Request) string {
	if ip := clientip.GetIPFromContext(r.Context()); ip != clientip.Anonymous {
		return ip
	}
	return clientip.GetIP(r)
}

func normalizeKey(key string) string {
	if len(key) <= maxKeyLength {
		return key
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}
