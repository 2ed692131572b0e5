package ratelimit

import "time"

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds the admission quota for a single fixed window.
// Duration is expressed in whole seconds.
type Config struct {
	Points   int    `env:"RATE_LIMIT_POINTS" envDefault:"5"`
	Duration int    `env:"RATE_LIMIT_DURATION" envDefault:"900"`
	Store    string `env:"RATE_LIMIT_STORE" envDefault:"memory"`
	Prefix   string `env:"RATE_LIMIT_PREFIX" envDefault:"contact"`
}

// Window returns the window length as a time.Duration.
func (c Config) Window() time.Duration {
	return time.Duration(c.Duration) * time.Second
}
