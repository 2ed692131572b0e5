package ratelimit

import "errors"

// Configuration errors, returned by the constructors.
var (
	ErrInvalidLimit    = errors.New("ratelimit: limit must be positive")
	ErrInvalidInterval = errors.New("ratelimit: window must be positive")
	ErrStoreRequired   = errors.New("ratelimit: store is required")
	ErrUnknownStore    = errors.New("ratelimit: unknown store")
)

// ErrKeyRequired is returned when a request resolves to an empty key.
var ErrKeyRequired = errors.New("ratelimit: key is required")

// ErrStoreFailure wraps any error surfaced by the backing store.
var ErrStoreFailure = errors.New("ratelimit: store failure")
