// loop runs a task repeatedly, carrying a value from an iteration to the next.
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after an iteration.
//
// Zero value is Continue(0).
type Next struct {
	// if not nil, breaks with error
	err error

	// if quit == true and err == nil, breaks without error
	quit bool

	// otherwise, continue loop with interval.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}

	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Err returns the error to break with, if any.
func (n Next) Err() error {
	return n.err
}

// Continue the loop after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break the loop. err can be nil.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is a body of loop.
//
// It receives the value returned at the last iteration (or init, at first),
// and returns a value for the next iteration with Next.
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task until it returns Break or ctx is done.
//
// For example, a task purging garbages one by one, and sleeping when there are nothing to purge:
//
//	loop.Start(ctx, 0, func(ctx context.Context, purged int) (int, loop.Next) {
//		ok, err := purge(ctx)
//		if err != nil {
//			return purged, loop.Break(err)
//		}
//		if !ok {
//			return purged, loop.Continue(time.Hour)
//		}
//		return purged + 1, loop.Continue(0)
//	})
//
// Args
//
// - ctx : when it is done, the loop breaks with ctx.Err().
//
// - init : value passed to the first iteration.
//
// - task : body of the loop.
//
// - options : options for each iteration.
//
// Returns
//
// - T : the value returned at last. It is returned even if error is returned.
//
// - error : error passed to Break, or ctx.Err().
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	if err := ctx.Err(); err != nil {
		return init, err
	}

	value := init
	for {
		lc := &loopConfig{ctx: ctx}
		for _, opt := range options {
			lc = opt(lc)
		}

		v, n := func() (T, Next) {
			if lc.deferred != nil {
				defer lc.deferred()
			}
			return task(lc.ctx, value)
		}()

		if n.err != nil {
			return v, n.err
		} else if n.quit {
			return v, nil
		}
		value = v

		timer := time.NewTimer(n.interval)
		select {
		case <-ctx.Done():
			// cancellation wins over the timer fired at the same time.
			timer.Stop()
			return value, ctx.Err()
		case <-timer.C:
		}
	}
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
}

type LoopOption func(*loopConfig) *loopConfig

// WithTimeout sets timeout on each iteration.
//
// The context passed to the task has the deadline.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		return &loopConfig{
			ctx: ctx,
			deferred: func() {
				cancel()
				if lc.deferred != nil {
					lc.deferred()
				}
			},
		}
	}
}
