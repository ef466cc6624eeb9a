package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

const (
	dashboardStatsKey        = "dashboard:stats"
	dashboardStatsVersionKey = "dashboard:stats:version"
)

// statsKey names the entry for one cache generation and calendar month, so
// a result computed before an Invalidate, or in an earlier month, is never
// read back.
func statsKey(version int64, now time.Time) string {
	return fmt.Sprintf("%s:%d:%s", dashboardStatsKey, version, now.UTC().Format("2006-01"))
}

type DashboardRepository interface {
	Stats(ctx context.Context, now time.Time) (domain.DashboardStats, error)
}

// CachedDashboardRepository is a read-through cache in front of the
// dashboard aggregation. Redis failures only cost a trip to the database.
type CachedDashboardRepository struct {
	realRepo DashboardRepository
	redis    *redis.Client
	ttl      time.Duration
}

func NewCachedDashboardRepository(realRepo DashboardRepository, redis *redis.Client, ttl time.Duration) *CachedDashboardRepository {
	return &CachedDashboardRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      ttl,
	}
}

func (c *CachedDashboardRepository) Stats(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	version, err := c.redis.Get(ctx, dashboardStatsVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		zap.L().Warn("redis unavailable, using database", zap.Error(err))
		return c.realRepo.Stats(ctx, now)
	}

	key := statsKey(version, now)
	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		var stats domain.DashboardStats
		if err := json.Unmarshal(data, &stats); err != nil {
			zap.L().Warn("cached dashboard stats unreadable, using database", zap.Error(err))
			break
		}

		return stats, nil

	case errors.Is(err, redis.Nil):

	default:
		zap.L().Warn("redis unavailable, using database", zap.Error(err))
	}

	stats, err := c.realRepo.Stats(ctx, now)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	encoded, err := json.Marshal(stats)
	if err != nil {
		zap.L().Warn("failed to encode dashboard stats", zap.Error(err))
		return stats, nil
	}

	if err := c.redis.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		zap.L().Warn("failed to cache dashboard stats", zap.Error(err))
	}

	return stats, nil
}

// Invalidate starts a new cache generation after any write that changes the
// stats. Entries of older generations expire on their own.
func (c *CachedDashboardRepository) Invalidate(ctx context.Context) {
	if err := c.redis.Incr(ctx, dashboardStatsVersionKey).Err(); err != nil {
		zap.L().Warn("failed to invalidate dashboard stats", zap.Error(err))
	}
}
