package cache

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of resident entries.
	Len int
	// Capacity is the maximum number of resident entries.
	Capacity int
	// InFlight is the number of loads currently running.
	InFlight int
	// Hits counts Preload calls that found the entry resident.
	Hits uint64
	// Misses counts Preload calls that started a load.
	Misses uint64
	// Joins counts Preload calls that waited on another caller's load.
	Joins uint64
	// Evictions counts entries dropped to make room.
	Evictions uint64
	// Failures counts loads that failed or could not be admitted.
	Failures uint64
	// HitRate is Hits / (Hits + Misses), 0 when nothing was requested.
	HitRate float64
}

// Stats returns cache statistics.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	s := Stats{
		Len:      c.order.Len(),
		Capacity: c.size,
		InFlight: len(c.inFlight),
	}
	c.mu.Unlock()

	s.Hits = c.hits.Load()
	s.Misses = c.misses.Load()
	s.Joins = c.joins.Load()
	s.Evictions = c.evictions.Load()
	s.Failures = c.failures.Load()
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
