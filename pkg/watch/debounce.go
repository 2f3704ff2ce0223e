package watch

import (
	"context"
	"time"
)

// Debouncer coalesces a burst of triggers into a single callback after
// a quiet period.
type Debouncer struct {
	quiet time.Duration
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(quiet time.Duration) Debouncer {
	return Debouncer{quiet: quiet}
}

// Start runs the debouncer until ctx is canceled and returns the
// trigger function. fn runs on the debouncer's own goroutine, one
// invocation at a time.
func (d Debouncer) Start(ctx context.Context, fn func()) func() {
	events := make(chan struct{}, 1)

	go func() {
		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case <-events:
				// A fresh timer per burst sidesteps the Stop/Reset
				// drain problem; the old channel is simply abandoned.
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(d.quiet)
				fire = timer.C
			case <-fire:
				fire = nil
				fn()
			}
		}
	}()

	return func() {
		select {
		case events <- struct{}{}:
		default:
		}
	}
}
