package ports

import (
	"context"

	"go.trai.ch/tajima/internal/core/domain"
)

// PatternLoader produces a pattern when the cache has no valid entry.
type PatternLoader func(ctx context.Context) (*domain.Pattern, error)

// PatternCache memoizes decoded patterns keyed by file path. Implementations
// must be safe under concurrent calls with per-key granularity: operations on
// distinct keys never block each other.
type PatternCache interface {
	// Get returns the cached pattern for key, regardless of identity.
	Get(key string) (*domain.Pattern, bool)

	// Put inserts or replaces the entry for key.
	Put(key string, id domain.FileIdentity, pattern *domain.Pattern)

	// GetOrDecode returns the cached pattern when its stored identity
	// matches id, and otherwise invokes loader, stores the result, and
	// returns it. Loader failures are forwarded and never cached, so a
	// transient failure cannot poison future lookups. Concurrent callers
	// may decode the same key twice; the last writer wins and both results
	// are equivalent for the same bytes.
	GetOrDecode(ctx context.Context, key string, id domain.FileIdentity, loader PatternLoader) (*domain.Pattern, error)

	// Invalidate drops the entries for the given keys.
	Invalidate(keys ...string)

	// Len returns the number of cached entries.
	Len() int
}
