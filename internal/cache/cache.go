// Package cache holds alignment results in memory so a transcript
// reload only pays the alignment cost when the file actually changed.
// Alignment is a pure function of its input, which is what makes the
// caching safe.
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/dgnsrekt/relisten/align"
)

// DefaultCapacity is the number of alignments kept before the least
// recently used one is evicted. Segment lists are small; the cap
// bounds the entry count, not bytes.
const DefaultCapacity = 16

// Key derives a cache key from a transcript file's identity. A write
// to the file changes the modtime or size and yields a new key, so
// stale alignments are never served.
func Key(path string, modTime time.Time, size int64) string {
	return fmt.Sprintf("%s|%d|%d", path, modTime.UnixNano(), size)
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Items     int
	Capacity  int
}

// HitRate returns the fraction of lookups served from the cache.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// AlignmentCache is an LRU cache of segment sequences keyed by
// transcript file identity.
type AlignmentCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	eviction *list.List

	hits      int64
	misses    int64
	evictions int64
}

type entry struct {
	key      string
	segments []align.Segment
}

// New creates an alignment cache holding up to capacity entries.
// Non-positive capacities fall back to DefaultCapacity.
func New(capacity int) *AlignmentCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &AlignmentCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Get returns the cached segments for key, marking the entry as most
// recently used. The returned slice is shared; callers must not
// mutate it.
func (c *AlignmentCache) Get(key string) ([]align.Segment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	c.eviction.MoveToFront(elem)
	c.hits++
	return elem.Value.(*entry).segments, true
}

// Put stores segments under key, evicting the least recently used
// entry when the cache is full.
func (c *AlignmentCache) Put(key string, segments []align.Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*entry).segments = segments
		return
	}

	for len(c.items) >= c.capacity {
		c.evictOldest()
	}
	c.items[key] = c.eviction.PushFront(&entry{key: key, segments: segments})
}

// Clear drops every entry.
func (c *AlignmentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.eviction.Init()
}

// Stats returns a snapshot of the cache counters.
func (c *AlignmentCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Items:     len(c.items),
		Capacity:  c.capacity,
	}
}

// evictOldest removes the least recently used entry. Caller holds the lock.
func (c *AlignmentCache) evictOldest() {
	elem := c.eviction.Back()
	if elem == nil {
		return
	}
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
	c.evictions++
}
