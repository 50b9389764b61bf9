package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer coalesces rapid file system events into batched invalidations.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a new debouncer with the given time window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		pending: make(map[string]struct{}),
		window:  window,
	}
}

// SetCallback installs the function invoked with each coalesced batch.
func (d *Debouncer) SetCallback(callback func(paths []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callback = callback
}

// Add adds a file path to the pending set and (re)arms the window timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	paths := d.drainLocked()
	cb := d.callback
	d.timer = nil
	d.mu.Unlock()

	if len(paths) > 0 && cb != nil {
		go cb(paths)
	}
}

// Flush immediately invokes the callback with all pending paths. Unlike the
// timer path it blocks until the callback completes, so shutdown can rely on
// the last batch having been delivered.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired; let it complete rather than
			// processing the batch twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.drainLocked()
	cb := d.callback
	d.mu.Unlock()

	if len(paths) > 0 && cb != nil {
		cb(paths)
	}
}

// drainLocked empties the pending set. Caller holds the lock. Paths are
// sorted so batches are deterministic for tests.
func (d *Debouncer) drainLocked() []string {
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	sort.Strings(paths)
	return paths
}
