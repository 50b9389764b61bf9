// Package cache implements the in-memory pattern cache.
package cache

import (
	"container/list"
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
)

const (
	// shardCount is the number of shards. Must be a power of 2 so shard
	// selection is a bitwise AND.
	shardCount = 16

	shardMask = shardCount - 1
)

// entry pairs a cached pattern with the file identity it was decoded from.
// A hit is only served when the stored identity matches the caller's.
type entry struct {
	id      domain.FileIdentity
	pattern *domain.Pattern
	node    *list.Element
}

// shard is one lock domain of the cache. Keys on different shards never
// contend on the same mutex.
type shard struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lru     *list.List
}

// PatternCache implements ports.PatternCache with sharded locking and
// optional per-shard LRU eviction. The zero capacity means unbounded, which
// suits the expected workload: a handful of files opened interactively.
type PatternCache struct {
	shards   [shardCount]*shard
	capacity int
}

// New creates a PatternCache. capacity bounds each shard's entry count;
// 0 disables eviction.
func New(capacity int) *PatternCache {
	c := &PatternCache{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard{
			entries: make(map[string]*entry),
			lru:     list.New(),
		}
	}
	return c
}

func (c *PatternCache) getShard(key string) *shard {
	return c.shards[xxhash.Sum64String(key)&shardMask]
}

// Get returns the cached pattern for key, regardless of stored identity.
func (c *PatternCache) Get(key string) (*domain.Pattern, bool) {
	s := c.getShard(key)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	e, ok = s.entries[key]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	s.lru.MoveToFront(e.node)
	p := e.pattern
	s.mu.Unlock()

	return p, true
}

// Put inserts or replaces the entry for key.
func (c *PatternCache) Put(key string, id domain.FileIdentity, pattern *domain.Pattern) {
	s := c.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(c.capacity, key, id, pattern)
}

// put stores an entry. Caller holds the shard lock.
func (s *shard) put(capacity int, key string, id domain.FileIdentity, pattern *domain.Pattern) {
	if e, ok := s.entries[key]; ok {
		e.id = id
		e.pattern = pattern
		s.lru.MoveToFront(e.node)
		return
	}

	for capacity > 0 && s.lru.Len() >= capacity {
		oldest := s.lru.Back()
		if oldest == nil {
			break
		}
		s.lru.Remove(oldest)
		delete(s.entries, oldest.Value.(string))
	}

	e := &entry{id: id, pattern: pattern}
	e.node = s.lru.PushFront(key)
	s.entries[key] = e
}

// GetOrDecode returns the cached pattern when the stored identity matches id,
// and otherwise decodes via loader, stores the result under id, and returns
// it. Loader errors are forwarded and never cached. The loader runs outside
// the shard lock, so concurrent callers for the same key may both decode;
// the last writer's result replaces the other, which is equivalent for
// identical input bytes.
func (c *PatternCache) GetOrDecode(
	ctx context.Context,
	key string,
	id domain.FileIdentity,
	loader ports.PatternLoader,
) (*domain.Pattern, error) {
	s := c.getShard(key)

	s.mu.RLock()
	e, ok := s.entries[key]
	var hit *domain.Pattern
	if ok && e.id.Matches(id) {
		hit = e.pattern
	}
	s.mu.RUnlock()

	if hit != nil {
		s.mu.Lock()
		if e2, ok := s.entries[key]; ok {
			s.lru.MoveToFront(e2.node)
		}
		s.mu.Unlock()
		return hit, nil
	}

	pattern, err := loader(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.put(c.capacity, key, id, pattern)
	s.mu.Unlock()

	return pattern, nil
}

// Invalidate drops the entries for the given keys.
func (c *PatternCache) Invalidate(keys ...string) {
	for _, key := range keys {
		s := c.getShard(key)
		s.mu.Lock()
		if e, ok := s.entries[key]; ok {
			s.lru.Remove(e.node)
			delete(s.entries, key)
		}
		s.mu.Unlock()
	}
}

// Len returns the number of cached entries across all shards.
func (c *PatternCache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
