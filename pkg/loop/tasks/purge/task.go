package purge

import (
	"context"
	"time"

	"github.com/bearnovel/bearnovel/pkg/loop/recurring"
)

type Purger interface {
	// Purge removes one expired novel. It returns true when a novel is removed.
	Purge(ctx context.Context, now time.Time) (bool, error)
}

// initial value for task: number of purged novels.
func Seed() int {
	return 0
}

// Task purges one expired novel per iteration.
//
// It reports backlog while it purges something, so the loop drains expired novels then cools down.
func Task(p Purger, now func() time.Time) recurring.Task[int] {
	return func(ctx context.Context, purged int) (int, bool, error) {
		ok, err := p.Purge(ctx, now())
		if err != nil || !ok {
			return purged, false, err
		}
		return purged + 1, true, nil
	}
}
