// Package cache holds pre-computed score snapshots in Redis so dashboards
// can show the last known overall score without re-reading the whole tenant
// snapshot. The cache is advisory: the engine recomputes deterministically,
// and a cold or unreachable cache only costs a recompute.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veracomply/posture/internal/compliance"
)

const (
	// scoreKeyPrefix namespaces cached score snapshots per client.
	scoreKeyPrefix = "posture:score:"

	// DefaultTTL bounds how stale a cached score may get before the next
	// request recomputes it.
	DefaultTTL = 15 * time.Minute
)

// ScoreCache stores compliance score snapshots keyed by client ID.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a ScoreCache from a Redis client. A zero ttl selects
// DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *ScoreCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ScoreCache{client: client, ttl: ttl}
}

// ConnectRedis creates a Redis client from a URL.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Get returns the cached snapshot for a client. The second return value is
// false on a miss; a miss is not an error.
func (c *ScoreCache) Get(ctx context.Context, clientID string) (compliance.ComplianceScoreSnapshot, bool, error) {
	var snap compliance.ComplianceScoreSnapshot
	data, err := c.client.Get(ctx, scoreKeyPrefix+clientID).Bytes()
	if err == redis.Nil {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("get cached score: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		// A corrupt entry is treated as a miss; the caller recomputes and
		// overwrites it.
		return compliance.ComplianceScoreSnapshot{}, false, nil
	}
	return snap, true, nil
}

// Set stores a snapshot for a client with the cache's TTL.
func (c *ScoreCache) Set(ctx context.Context, clientID string, snap compliance.ComplianceScoreSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal score snapshot: %w", err)
	}
	if err := c.client.Set(ctx, scoreKeyPrefix+clientID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached score: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a client.
func (c *ScoreCache) Invalidate(ctx context.Context, clientID string) error {
	if err := c.client.Del(ctx, scoreKeyPrefix+clientID).Err(); err != nil {
		return fmt.Errorf("invalidate cached score: %w", err)
	}
	return nil
}
