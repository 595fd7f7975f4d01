package health

import (
	"context"
	"time"

	"github.com/benvon/healthz-api/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultCheckTimeout bounds each dependency ping.
const DefaultCheckTimeout = 5 * time.Second

// Pinger is satisfied by *sql.DB and *database.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger adapts a go-redis client to Pinger.
type RedisPinger struct {
	Client redis.UniversalClient
}

// PingContext pings Redis.
func (p RedisPinger) PingContext(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

// ReadinessChecker checks the database and Redis, when configured.
type ReadinessChecker struct {
	db      Pinger
	redis   Pinger
	timeout time.Duration
	now     func() time.Time
}

// NewReadinessChecker creates a checker. Either dependency may be nil and is then skipped.
func NewReadinessChecker(db, redis Pinger) *ReadinessChecker {
	return &ReadinessChecker{
		db:      db,
		redis:   redis,
		timeout: DefaultCheckTimeout,
		now:     time.Now,
	}
}

// Check pings each configured dependency.
func (c *ReadinessChecker) Check(ctx context.Context) models.ReadinessStatus {
	status := models.ReadinessStatus{
		Status: models.HealthStateHealthy,
		Checks: make(map[string]string),
	}

	check := func(name string, p Pinger) {
		if p == nil {
			return
		}
		pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		if err := p.PingContext(pingCtx); err != nil {
			status.Status = models.HealthStateUnhealthy
			status.Checks[name] = "unhealthy: " + err.Error()
			return
		}
		status.Checks[name] = string(models.HealthStateHealthy)
	}

	check("database", c.db)
	check("redis", c.redis)

	status.Timestamp = models.FormatTimestamp(c.now())
	return status
}
