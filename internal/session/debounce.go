package session

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid consecutive edits into a single call made
// with the final values. The timer is reset on every Trigger rather than
// firing on a fixed schedule, so a burst of keystrokes produces exactly
// one call once the window goes quiet.
type Debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger arms the debouncer with fn, replacing any pending call. With a
// zero window fn runs immediately.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.window <= 0 {
		d.pending = nil
		d.mu.Unlock()
		fn()
		return
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.window, d.fire)
	d.mu.Unlock()
}

// Flush runs any pending call immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Cancel drops any pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}
