package ports

import "context"

// Watcher observes pattern files for changes so stale cache entries can be
// dropped proactively. Invalidation remains identity-based; the watcher only
// shortens the window in which a stale entry can be served.
type Watcher interface {
	// Watch starts observing path. Changed paths are reported to onChange
	// in debounced batches until ctx is cancelled or the watcher stops.
	Watch(ctx context.Context, path string, onChange func(paths []string)) error

	// Stop stops the watcher and releases all resources.
	Stop() error
}
