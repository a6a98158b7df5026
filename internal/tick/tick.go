// Package tick provides the one-hertz pending flag shared between the
// ticker goroutine and the main loop.
package tick

import (
	"context"
	"sync/atomic"
	"time"
)

// Period is the nominal tick interval.
const Period = time.Second

// Flag is a single pending tick. Ticks raised while one is already pending
// are merged.
type Flag struct {
	pending atomic.Bool
}

// Raise marks a tick as pending.
func (f *Flag) Raise() {
	f.pending.Store(true)
}

// Take reports whether a tick was pending and clears it.
func (f *Flag) Take() bool {
	return f.pending.Swap(false)
}

// Run raises f every period until ctx is cancelled. It does nothing else.
func Run(ctx context.Context, f *Flag, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f.Raise()
		}
	}
}
