package ratelimit

import (
	"context"
	"errors"
	"time"
)

// FixedWindow admits up to limit requests per key in consecutive windows of
// equal length. The window for a key starts on its first request and the
// counter resets once it elapses.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
	prefix string
}

// FixedWindowOption configures a FixedWindow.
type FixedWindowOption func(*FixedWindow)

// WithKeyPrefix namespaces every key written to the store.
func WithKeyPrefix(prefix string) FixedWindowOption {
	return func(fw *FixedWindow) {
		fw.prefix = prefix
	}
}

// NewFixedWindow creates a fixed window limiter backed by the given store.
func NewFixedWindow(store Store, limit int, window time.Duration, opts ...FixedWindowOption) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	fw := &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
	}

	for _, opt := range opts {
		opt(fw)
	}

	return fw, nil
}

// NewFromConfig builds a FixedWindow from Config.
func NewFromConfig(store Store, cfg Config) (*FixedWindow, error) {
	return NewFixedWindow(store, cfg.Points, cfg.Window(), WithKeyPrefix(cfg.Prefix))
}

// Allow consumes one slot of the key's current window.
// The increment and the check happen in a single store operation, so two
// concurrent callers can never both take the last slot.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := time.Now()
	count, ttl, err := fw.store.IncrementAndGet(ctx, fw.storeKey(key), 1, fw.window)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return fw.result(now, count, ttl, int(count) <= fw.limit), nil
}

// Status returns the key's current window without consuming a slot.
func (fw *FixedWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := time.Now()
	count, ttl, err := fw.store.Get(ctx, fw.storeKey(key))
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	if ttl <= 0 && count == 0 {
		ttl = fw.window
	}

	return fw.result(now, count, ttl, int(count) < fw.limit), nil
}

// Reset drops the key's counter, starting a fresh window on the next request.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	if err := fw.store.Delete(ctx, fw.storeKey(key)); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Limit returns the number of requests admitted per window.
func (fw *FixedWindow) Limit() int { return fw.limit }

// Window returns the window length.
func (fw *FixedWindow) Window() time.Duration { return fw.window }

func (fw *FixedWindow) result(now time.Time, count int64, ttl time.Duration, allowed bool) *Result {
	var resetAt time.Time
	if ttl > 0 {
		resetAt = now.Add(ttl)
	}

	return &Result{
		Allowed:   allowed,
		Limit:     fw.limit,
		Remaining: max(0, fw.limit-int(count)),
		ResetAt:   resetAt,
	}
}

func (fw *FixedWindow) storeKey(key string) string {
	key = normalizeKey(key)
	if fw.prefix == "" {
		return key
	}
	return fw.prefix + ":" + key
}
