package recurring

import (
	"context"

	"github.com/bearnovel/bearnovel/pkg/loop"
)

// Task is a loop body reporting whether it did something.
//
// Return:
//
// - T : same as loop.Task[T]
//
// - bool : true when this task did something in this iteration, and more backlog can be.
//
// - error : error occurred in this iteration.
type Task[T any] func(context.Context, T) (T, bool, error)

// Applied converts the task into loop.Task, deciding the next step with p.
func (rt Task[T]) Applied(p Policy) loop.Task[T] {
	return func(ctx context.Context, t T) (T, loop.Next) {
		next, ok, err := rt(ctx, t)
		return next, p.Next(ok, err)
	}
}
