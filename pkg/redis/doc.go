// Package redis connects to the Redis instance that backs shared rate limit
// counters when the contact service runs on more than one replica.
//
// Connect retries the initial ping according to Config, which is read from
// REDIS_* environment variables. Probe returns the check used by the
// readiness endpoint.
package redis
