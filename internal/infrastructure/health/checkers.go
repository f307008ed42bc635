package health

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/clinicboard/clinicboard/internal/core/ports"
	infraDB "github.com/clinicboard/clinicboard/internal/infrastructure/db"
)

// dbHealthChecker wraps the database for health checks.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.DB.PingContext(ctx) }

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// brokerHealthChecker probes the broadcast channel through its capability
// check. An unconfigured broker reports unhealthy, which surfaces as a
// degraded (not failed) service: events fall back to direct delivery.
type brokerHealthChecker struct{ publisher ports.BroadcastPublisher }

func (b *brokerHealthChecker) Name() string { return "broker" }
func (b *brokerHealthChecker) Check(ctx context.Context) error {
	if b.publisher == nil || !b.publisher.Available() {
		return errors.New("broadcast channel unavailable")
	}
	return nil
}

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// NewBrokerHealthChecker creates a health checker for the broadcast channel.
func NewBrokerHealthChecker(publisher ports.BroadcastPublisher) ports.HealthChecker {
	return &brokerHealthChecker{publisher: publisher}
}
