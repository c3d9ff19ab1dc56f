// looper starts background loops of the novel service with monitoring.
package looper

import (
	"context"
	"fmt"
	"time"

	"github.com/bearnovel/bearnovel/pkg/loop"
	"github.com/bearnovel/bearnovel/pkg/loop/recurring"
	"github.com/bearnovel/bearnovel/pkg/loop/tasks/purge"
	"github.com/bearnovel/bearnovel/pkg/loop/tasks/ranking"
	"github.com/bearnovel/bearnovel/pkg/metrics"
	"github.com/rs/zerolog"
)

type LoopType string

const (
	Ranking LoopType = "ranking"
	Purge   LoopType = "purge"
)

func (lt LoopType) String() string {
	return string(lt)
}

func ParseLoopType(s string) (LoopType, error) {
	switch lt := LoopType(s); lt {
	case Ranking, Purge:
		return lt, nil
	}
	return "", fmt.Errorf("unknown loop type: %s (should be one of -- ranking|purge)", s)
}

// Manifest for starting a loop, which determines how the loop should behave.
type Manifest struct {
	Policy recurring.Policy

	// timeout of each iteration. 0 means no timeout.
	Timeout time.Duration

	// clock. default: time.Now
	Now func() time.Time
}

func (m Manifest) options() []loop.LoopOption {
	if m.Timeout <= 0 {
		return nil
	}
	return []loop.LoopOption{loop.WithTimeout(m.Timeout)}
}

func (m Manifest) now() func() time.Time {
	if m.Now == nil {
		return time.Now
	}
	return m.Now
}

// monitor wraps task to log the start and the end of each iteration,
// and count them as metrics.
//
// It sees the error of the iteration before the policy decides the next step,
// so errors are reported even when the policy ignores them.
func monitor[T any](logger zerolog.Logger, lt LoopType, task recurring.Task[T]) recurring.Task[T] {
	var counter uint64
	return func(ctx context.Context, t T) (ret T, updated bool, err error) {
		counter += 1
		begin := time.Now()
		logger.Debug().Uint64("run", counter).Msg("task start")

		defer func() {
			result := "ok"
			ev := logger.Info()
			if err != nil {
				result = "error"
				ev = logger.Error().Err(err)
			}
			metrics.LoopRuns.WithLabelValues(lt.String(), result).Inc()
			ev.Uint64("run", counter).
				Dur("took", time.Since(begin)).
				Bool("updated", updated).
				Interface("value", ret).
				Msg("task end")
		}()

		ret, updated, err = task(ctx, t)
		return
	}
}

func StartRankingLoop(ctx context.Context, logger zerolog.Logger, r ranking.Ranker, manifest Manifest) error {
	l := logger.With().Stringer("loop", Ranking).Logger()
	_, err := loop.Start(
		ctx, ranking.Seed(),
		monitor(l, Ranking, ranking.Task(r, manifest.now())).Applied(manifest.Policy),
		manifest.options()...,
	)
	return err
}

func StartPurgeLoop(ctx context.Context, logger zerolog.Logger, p purge.Purger, manifest Manifest) error {
	l := logger.With().Stringer("loop", Purge).Logger()
	_, err := loop.Start(
		ctx, purge.Seed(),
		monitor(l, Purge, purge.Task(p, manifest.now())).Applied(manifest.Policy),
		manifest.options()...,
	)
	return err
}

// Service is what loops work on.
type Service interface {
	ranking.Ranker
	purge.Purger
}

// Start starts the loop of the type.
func Start(ctx context.Context, logger zerolog.Logger, lt LoopType, svc Service, manifest Manifest) error {
	switch lt {
	case Ranking:
		return StartRankingLoop(ctx, logger, svc, manifest)
	case Purge:
		return StartPurgeLoop(ctx, logger, svc, manifest)
	}
	return fmt.Errorf("unknown loop type: %s", lt)
}
