// Package signal turns SIGINT and SIGTERM into context cancellation for the
// runner phase of a specretry attempt.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Watch returns a context derived from parent that is canceled when SIGINT or
// SIGTERM arrives. onInterrupt, if non-nil, runs once before cancellation.
//
// The returned stop function releases the signal registration and must be
// called when the guarded phase ends. Signals received after stop fall back to
// the default Go behavior.
//
// Example usage:
//
//	ctx, stop := signal.Watch(context.Background(), func() {
//	    logging.Warn("Interrupted, waiting for the runner to exit")
//	})
//	defer stop()
func Watch(parent context.Context, onInterrupt func()) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-done:
		case <-ctx.Done():
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}
