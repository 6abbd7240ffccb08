// Package cache provides the bounded loading cache that decides which
// panoramas stay resident in GPU memory.
//
// # Cache[T]
//
// A Cache tracks up to N resident entries. Entries are loaded through
// their own Load method; the cache only orchestrates:
//
//	c := cache.New[*panorama.Entity](10)
//	if err := c.Preload(ctx, entity); err != nil {
//	    // load failure, or cache.ErrCacheExhausted
//	}
//
// Concurrent Preload calls for the same entry share one Load. When the
// cache is full, the least recently admitted entry whose Visible method
// reports false is unloaded and dropped. If every resident entry is
// visible the admission fails with ErrCacheExhausted: the cache is sized
// smaller than the number of simultaneously visible entries.
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation.
package cache
