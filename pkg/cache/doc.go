// Package cache provides a generic, thread-safe LRU cache with optional
// time-based expiry.
//
// The cache evicts the least recently used entry once it grows past its
// capacity. With WithTTL every entry also expires a fixed time after it was
// last written; expired entries are dropped lazily on access.
//
// notifykit uses it as the in-process backend for cached user records.
//
//	c := cache.NewLRUCache[string, entity.User](4096, cache.WithTTL(time.Minute))
//	c.Put(u.ID, u)
//	if u, ok := c.Get(id); ok {
//	    // ...
//	}
package cache
