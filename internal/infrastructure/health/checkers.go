package health

import (
	"context"

	"github.com/afishaclub/afisha/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// upstreamHealthChecker probes the events API through the client boundary.
type upstreamHealthChecker struct{ client ports.EventsClient }

func (u *upstreamHealthChecker) Name() string { return "kudago" }
func (u *upstreamHealthChecker) Check(ctx context.Context) error {
	_, err := u.client.Locations(ctx)
	return err
}

// NewUpstreamHealthChecker creates a health checker for the upstream API.
func NewUpstreamHealthChecker(client ports.EventsClient) ports.HealthChecker {
	return &upstreamHealthChecker{client: client}
}
