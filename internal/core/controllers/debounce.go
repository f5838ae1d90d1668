package controllers

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of calls into a single delayed invocation.
// Each Do call cancels the pending invocation and restarts the quiet period,
// so only the last function of a burst runs, no earlier than the quiet
// period after the last call.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	timer   *time.Timer
	stopped bool
}

// NewDebouncer returns a debouncer with the given quiet period.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Do schedules fn to run after the quiet period, cancelling any previously
// scheduled function. fn runs on the timer goroutine.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Stop cancels any pending invocation and rejects further Do calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
