package application

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period applied to search input before
// a fetch fires.
const DefaultSearchDebounce = 500 * time.Millisecond

// Debouncer delays an action until activity pauses. Each Trigger restarts
// the quiet-period timer and replaces the pending action, so only the last
// action within a burst runs. Owned by the history controller so its
// lifecycle is testable without any UI framework.
type Debouncer struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultSearchDebounce
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run once the quiet period elapses with no further
// triggers. A pending action is superseded, never run twice.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Cancel drops any pending action.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
