// Package cache provides the generic LRU cache that holds solved
// interpolator pairs between frames.
//
//	c := cache.New[key, *solution](256)
//	c.Set(k, sol)
//	sol, ok := c.Get(k)
//
// Entries are evicted least recently used first once the capacity is
// reached. A capacity of 0 or less disables storage entirely: Set becomes a
// no-op and every Get misses.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
