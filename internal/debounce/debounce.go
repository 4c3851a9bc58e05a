// Package debounce coalesces bursts of recompute triggers into a single
// invocation. The planning engine itself has no cancellation concept;
// callers that receive rapid edit or reload events use a Debouncer to
// discard stale requests before they reach the engine.
package debounce

import (
	"sync"
	"time"
)

// Debouncer invokes fn once per burst of Trigger calls: each Trigger
// restarts the quiet-period timer, and fn runs only after the period
// elapses with no further trigger.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	fn      func()
	timer   *time.Timer
	stopped bool
}

// New constructs a debouncer. fn runs on the timer goroutine.
func New(quiet time.Duration, fn func()) *Debouncer {
	return &Debouncer{quiet: quiet, fn: fn}
}

// Trigger requests an invocation. Calls inside the quiet period are
// coalesced.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fn)
}

// Stop cancels any pending invocation and ignores further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
