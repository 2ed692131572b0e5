package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ruhtouch/contactapi/pkg/httpserver"
)

// Probe returns the readiness probe for the rate limit store.
func Probe(client redis.UniversalClient) httpserver.Probe {
	return httpserver.Probe{
		Name: "redis",
		Check: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrPing, err)
			}
			return nil
		},
	}
}
