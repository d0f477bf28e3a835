package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/workdeskhq/workdesk-backend/internal/config"
	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
)

// PresenceCache is a Redis projection of derived presence state plus the last
// heartbeat instant per worker. It is never the source of truth; the event
// log is. A nil cache (Redis disabled or unreachable at boot) degrades every
// operation to a no-op, and callers surface the degradation instead of
// failing the request.
type PresenceCache struct {
	rdb *goredis.Client
}

const (
	statePrefix     = "presence:state:"
	heartbeatPrefix = "presence:heartbeat:"

	// Projections expire on their own so a worker whose events stop flowing
	// does not stay pinned to a stale status forever.
	stateTTL = 24 * time.Hour
)

// New connects to Redis and pings it. Returns (nil, nil) when the cache is
// disabled by configuration; a connection failure is an error so boot can
// decide whether to continue without it.
func New(cfg config.RedisConfig) (*PresenceCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("connected to redis", "addr", cfg.Addr)
	return &PresenceCache{rdb: rdb}, nil
}

type cachedState struct {
	IsOnline      bool            `json:"is_online"`
	Status        presence.Status `json:"status"`
	EffectiveFrom time.Time       `json:"effective_from"`
}

// SetState stores a worker's derived state. Returns false when the write was
// skipped or failed; the caller reports that as cache_updated=false.
func (c *PresenceCache) SetState(ctx context.Context, s presence.State) bool {
	if c == nil {
		return false
	}

	payload, err := json.Marshal(cachedState{
		IsOnline:      s.IsOnline,
		Status:        s.Status,
		EffectiveFrom: s.EffectiveFrom,
	})
	if err != nil {
		return false
	}

	if err := c.rdb.Set(ctx, statePrefix+s.WorkerID, payload, stateTTL).Err(); err != nil {
		slog.Warn("failed to cache presence state", "worker_id", s.WorkerID, "error", err)
		return false
	}
	return true
}

// GetState returns a worker's cached state, or nil on miss or cache failure.
func (c *PresenceCache) GetState(ctx context.Context, workerID string) *presence.State {
	if c == nil {
		return nil
	}

	payload, err := c.rdb.Get(ctx, statePrefix+workerID).Bytes()
	if err != nil {
		if err != goredis.Nil {
			slog.Warn("failed to read cached presence state", "worker_id", workerID, "error", err)
		}
		return nil
	}

	var cs cachedState
	if err := json.Unmarshal(payload, &cs); err != nil {
		return nil
	}

	return &presence.State{
		WorkerID:      workerID,
		IsOnline:      cs.IsOnline,
		Status:        cs.Status,
		EffectiveFrom: cs.EffectiveFrom,
	}
}

// TouchHeartbeat records a worker's latest heartbeat instant. Any contact
// event counts, not only explicit heartbeats.
func (c *PresenceCache) TouchHeartbeat(ctx context.Context, workerID string, at time.Time) bool {
	if c == nil {
		return false
	}

	if err := c.rdb.Set(ctx, heartbeatPrefix+workerID, at.UTC().Format(time.RFC3339Nano), stateTTL).Err(); err != nil {
		slog.Warn("failed to cache heartbeat", "worker_id", workerID, "error", err)
		return false
	}
	return true
}

// LastHeartbeat returns the cached last heartbeat instant, or nil on miss.
func (c *PresenceCache) LastHeartbeat(ctx context.Context, workerID string) *time.Time {
	if c == nil {
		return nil
	}

	raw, err := c.rdb.Get(ctx, heartbeatPrefix+workerID).Result()
	if err != nil {
		if err != goredis.Nil {
			slog.Warn("failed to read cached heartbeat", "worker_id", workerID, "error", err)
		}
		return nil
	}

	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil
	}
	return &at
}

// Close releases the underlying connection.
func (c *PresenceCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
