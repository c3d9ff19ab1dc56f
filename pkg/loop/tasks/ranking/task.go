package ranking

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/loop/recurring"
)

type Ranker interface {
	RecomputeDailyRankings(ctx context.Context, now time.Time) ([]domain.RankingEntry, error)
}

// Stat is a summary of the last recompute.
type Stat struct {
	// how many times rankings have been recomputed.
	Runs int

	// number of ranked novels at the last run.
	Ranked int

	// window end of the last run.
	Until time.Time
}

// initial value for task
func Seed() Stat {
	return Stat{}
}

// Task recomputes daily rankings once per iteration.
//
// It never reports backlog, so "forever:24h" policy recomputes once per day.
func Task(r Ranker, now func() time.Time) recurring.Task[Stat] {
	return func(ctx context.Context, stat Stat) (Stat, bool, error) {
		at := now()
		entries, err := r.RecomputeDailyRankings(ctx, at)
		if err != nil {
			return stat, false, err
		}
		_, until := domain.DailyRankingWindow(at)
		return Stat{Runs: stat.Runs + 1, Ranked: len(entries), Until: until}, false, nil
	}
}
