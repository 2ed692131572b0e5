package config

import "errors"

// Errors returned by Load. MustLoad panics with them.
var (
	ErrNilPointer     = errors.New("config: nil pointer")
	ErrLoadingEnvFile = errors.New("config: cannot read env file")
	ErrParsingConfig  = errors.New("config: cannot parse environment")
	ErrInvalidConfig  = errors.New("config: invalid")
)
