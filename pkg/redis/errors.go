package redis

import "errors"

var (
	ErrEmptyURL = errors.New("redis: empty connection URL")
	ErrParseURL = errors.New("redis: failed to parse connection URL")
	ErrNotReady = errors.New("redis: server did not become ready in time")
	ErrPing     = errors.New("redis: ping failed")
)
