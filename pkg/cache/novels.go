package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/metrics"
	"github.com/rs/zerolog"
)

const (
	KeyAllNovels     = "AllNovels"
	KeyPopularNovels = "PopularNovels"
	KeyDailyRankings = "DailyRankings"
)

// NovelCache holds novel lists derived from database.
//
// Failures of the underlying store are logged and treated as misses,
// so callers always can fall back to database.
type NovelCache interface {
	AllNovels(ctx context.Context) ([]domain.Novel, bool)
	SetAllNovels(ctx context.Context, novels []domain.Novel)

	PopularNovels(ctx context.Context) ([]domain.Novel, bool)
	SetPopularNovels(ctx context.Context, novels []domain.Novel)

	DailyRankings(ctx context.Context) ([]domain.RankingEntry, bool)
	SetDailyRankings(ctx context.Context, entries []domain.RankingEntry)

	// InvalidateNovels drops AllNovels and PopularNovels.
	InvalidateNovels(ctx context.Context)
}

type novelCache struct {
	store      Store
	listTTL    time.Duration
	rankingTTL time.Duration
	logger     zerolog.Logger
}

// NewNovelCache creates NovelCache.
//
// Args
//
// - listTTL: TTL for AllNovels and PopularNovels
//
// - rankingTTL: TTL for DailyRankings
func NewNovelCache(store Store, listTTL time.Duration, rankingTTL time.Duration, logger zerolog.Logger) NovelCache {
	return &novelCache{
		store:      store,
		listTTL:    listTTL,
		rankingTTL: rankingTTL,
		logger:     logger,
	}
}

func load[T any](ctx context.Context, c *novelCache, key string) (T, bool) {
	var zero T
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(key, "error").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("cache lookup failed. treated as miss")
		return zero, false
	}
	if !found {
		metrics.CacheLookups.WithLabelValues(key, "miss").Inc()
		return zero, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.CacheLookups.WithLabelValues(key, "error").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("broken cache entry. treated as miss")
		return zero, false
	}
	metrics.CacheLookups.WithLabelValues(key, "hit").Inc()
	return v, true
}

func save[T any](ctx context.Context, c *novelCache, key string, v T, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}
	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}

func (c *novelCache) AllNovels(ctx context.Context) ([]domain.Novel, bool) {
	return load[[]domain.Novel](ctx, c, KeyAllNovels)
}

func (c *novelCache) SetAllNovels(ctx context.Context, novels []domain.Novel) {
	save(ctx, c, KeyAllNovels, novels, c.listTTL)
}

func (c *novelCache) PopularNovels(ctx context.Context) ([]domain.Novel, bool) {
	return load[[]domain.Novel](ctx, c, KeyPopularNovels)
}

func (c *novelCache) SetPopularNovels(ctx context.Context, novels []domain.Novel) {
	save(ctx, c, KeyPopularNovels, novels, c.listTTL)
}

func (c *novelCache) DailyRankings(ctx context.Context) ([]domain.RankingEntry, bool) {
	return load[[]domain.RankingEntry](ctx, c, KeyDailyRankings)
}

func (c *novelCache) SetDailyRankings(ctx context.Context, entries []domain.RankingEntry) {
	save(ctx, c, KeyDailyRankings, entries, c.rankingTTL)
}

func (c *novelCache) InvalidateNovels(ctx context.Context) {
	if err := c.store.Delete(ctx, KeyAllNovels, KeyPopularNovels); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate novel caches")
	}
}
