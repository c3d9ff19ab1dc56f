package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext returns a context that is canceled
// when one of target files is modified (= written, created, removed, or renamed).
//
// Changes of permission only are ignored. Empty paths are skipped,
// so optional config file paths can be passed as they are.
//
// The cause of cancellation tells which file is modified. Use `context.Cause` to get it.
//
// If error is not nil, both of the the context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, targetFilePath ...string) (context.Context, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	for _, f := range targetFilePath {
		if f == "" {
			continue
		}
		if err := w.Add(f); err != nil {
			w.Close()
			return nil, nil, err
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)
	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(fmt.Errorf("watching files is failed: %w", err))
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
				return
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
