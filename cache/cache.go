package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pano"
	"github.com/gogpu/pano/internal/lru"
)

// DefaultSize is the resident capacity used when New is given a
// non-positive size.
const DefaultSize = 10

// ErrCacheExhausted is returned by Preload when the cache is full and every
// resident entry is visible. It wraps pano.ErrResourceExhausted.
var ErrCacheExhausted = fmt.Errorf("cache: cannot evict, every resident entry is visible: %w", pano.ErrResourceExhausted)

// Loadable is the capability the cache orchestrates. Load and Unload move
// the entry's resources in and out of memory; Visible reports whether the
// entry is currently shown and therefore must not be evicted.
type Loadable interface {
	Load(ctx context.Context) error
	Unload()
	Visible() bool
}

// Entry is the constraint for cached values. Entries are compared by
// identity, so pointer types are the usual choice.
type Entry interface {
	comparable
	Loadable
}

// call is an in-flight load. done is closed once err is set.
type call struct {
	done chan struct{}
	err  error
}

// Cache is a bounded set of resident entries with in-flight deduplication
// and visibility-aware eviction.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[T Entry] struct {
	mu       sync.Mutex
	size     int
	resident map[T]*lru.Node[T]
	order    *lru.List[T] // front = most recently admitted
	inFlight map[T]*call
	logger   *slog.Logger

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	joins     atomic.Uint64
	evictions atomic.Uint64
	failures  atomic.Uint64
}

// New creates a cache holding at most size resident entries.
// If size <= 0, DefaultSize is used.
func New[T Entry](size int, opts ...Option) *Cache[T] {
	if size <= 0 {
		size = DefaultSize
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{
		size:     size,
		resident: make(map[T]*lru.Node[T], size),
		order:    lru.New[T](),
		inFlight: make(map[T]*call),
		logger:   o.logger,
	}
}

func (c *Cache[T]) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return pano.Logger()
}

// Preload makes e resident.
//
// If e is already resident Preload returns nil without reordering. If a load
// of e is in flight, Preload waits for that load and returns its result; no
// second load is started. Otherwise e is loaded, the least recently admitted
// invisible entry is evicted if the cache is full, and e is admitted as the
// most recently used entry.
//
// The load runs with the context of the caller that started it. A waiting
// caller whose ctx ends stops waiting and gets ctx.Err(); the load itself
// continues.
func (c *Cache[T]) Preload(ctx context.Context, e T) error {
	c.mu.Lock()
	if _, ok := c.resident[e]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return nil
	}
	if cl, ok := c.inFlight[e]; ok {
		c.mu.Unlock()
		c.joins.Add(1)
		return wait(ctx, cl)
	}
	cl := &call{done: make(chan struct{})}
	c.inFlight[e] = cl
	c.mu.Unlock()
	c.misses.Add(1)

	cl.err = c.load(ctx, e)
	close(cl.done)
	return cl.err
}

// load runs e.Load and admits e. The in-flight entry is cleared on every
// path so a failed admission never leaves an orphaned handle.
func (c *Cache[T]) load(ctx context.Context, e T) error {
	err := e.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, e)

	if err != nil {
		c.failures.Add(1)
		c.log().Warn("cache: load failed", "entry", e, "err", err)
		return fmt.Errorf("cache: load: %w", err)
	}

	if c.order.Len() >= c.size {
		if !c.evictLocked() {
			// Nothing tracks e now; release what its load allocated.
			e.Unload()
			c.failures.Add(1)
			return ErrCacheExhausted
		}
	}

	c.resident[e] = c.order.PushFront(e)
	c.log().Debug("cache: admitted", "entry", e, "resident", c.order.Len())
	return nil
}

// evictLocked unloads and drops the least recently admitted invisible entry.
// Returns false if every resident entry is visible.
// Caller must hold c.mu.
func (c *Cache[T]) evictLocked() bool {
	for n := c.order.Back(); n != nil; n = n.Prev() {
		if n.Value.Visible() {
			continue
		}
		victim := n.Value
		c.order.Remove(n)
		delete(c.resident, victim)
		victim.Unload()
		c.evictions.Add(1)
		c.log().Debug("cache: evicted", "entry", victim)
		return true
	}
	return false
}

// Purge removes e from the cache and unloads it.
//
// If a load of e is in flight, Purge first waits for it to finish so the
// load cannot admit e after it was purged. Purge returns ctx.Err() if ctx
// ends while waiting; e is left untouched in that case.
func (c *Cache[T]) Purge(ctx context.Context, e T) error {
	c.mu.Lock()
	cl := c.inFlight[e]
	c.mu.Unlock()

	if cl != nil {
		select {
		case <-cl.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	node, ok := c.resident[e]
	if !ok {
		return nil
	}
	c.order.Remove(node)
	delete(c.resident, e)
	e.Unload()
	c.log().Debug("cache: purged", "entry", e)
	return nil
}

// Contains reports whether e is resident.
func (c *Cache[T]) Contains(e T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.resident[e]
	return ok
}

// Loading reports whether a load of e is in flight.
func (c *Cache[T]) Loading(e T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[e]
	return ok
}

// Resident returns the resident entries, most recently admitted first.
func (c *Cache[T]) Resident() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Values()
}

// Len returns the number of resident entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of resident entries.
func (c *Cache[T]) Capacity() int {
	return c.size
}

// Clear unloads and drops every resident entry. In-flight loads are not
// affected and will admit their entries when they complete.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for n := c.order.Front(); n != nil; n = n.Next() {
		n.Value.Unload()
	}
	c.order.Clear()
	c.resident = make(map[T]*lru.Node[T], c.size)
}

func wait(ctx context.Context, cl *call) error {
	select {
	case <-cl.done:
		return cl.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
