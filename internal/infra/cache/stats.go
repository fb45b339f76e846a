package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain/dashboard"
)

type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ dashboard.Cache = (*StatsCache)(nil)

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(userID uint) string {
	return fmt.Sprintf("vet:stats:%d", userID)
}

func (c *StatsCache) Get(ctx context.Context, userID uint) (*dashboard.Stats, bool) {
	raw, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Uint("user_id", userID).Msg("stats cache read failed")
		}
		return nil, false
	}

	var stats dashboard.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, userID uint, stats *dashboard.Stats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey(userID), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Uint("user_id", userID).Msg("stats cache write failed")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, statsKey(userID)).Err()
}
