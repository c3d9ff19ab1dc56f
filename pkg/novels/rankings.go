package novels

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/metrics"
)

func (s *service) DailyRankings(ctx context.Context) ([]domain.RankingEntry, error) {
	if entries, ok := s.cache.DailyRankings(ctx); ok {
		return entries, nil
	}
	return s.RecomputeDailyRankings(ctx, s.now())
}

func (s *service) RecomputeDailyRankings(ctx context.Context, now time.Time) ([]domain.RankingEntry, error) {
	since, until := domain.DailyRankingWindow(now)
	entries, err := s.db.Rankings().Daily(ctx, since, until)
	if err != nil {
		return nil, err
	}
	s.cache.SetDailyRankings(ctx, entries)
	s.logger.Debug().
		Time("since", since).Time("until", until).Int("entries", len(entries)).
		Msg("daily rankings are recomputed")
	return entries, nil
}

func (s *service) Purge(ctx context.Context, now time.Time) (bool, error) {
	olderThan := now.Add(-s.conf.DeleteRetention)
	popped, err := s.db.Garbage().Pop(ctx, olderThan, func(n domain.Novel) error {
		s.logger.Info().
			Int("novel_id", n.NovelId).Str("title", n.Title).
			Msg("purging novel")
		return nil
	})
	if err != nil {
		return false, err
	}
	if popped {
		metrics.NovelsPurged.Inc()
		s.cache.InvalidateNovels(ctx)
	}
	return popped, nil
}
