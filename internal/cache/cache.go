// Package cache implements the server's single shared mutable store:
// a sharded, concurrency-safe key/value map with per-entry TTL
// expressed as an absolute deadline on a monotonic clock.
package cache

import (
	"time"

	"github.com/yndnr/rekv-go/internal/rdb"
	"github.com/yndnr/rekv-go/pkg/cmap"
)

// Entry is the value held for a key: a byte string plus an optional
// absolute expiry deadline. An entry whose expiry has passed is
// logically absent on read, even though it may still be present in
// the backing map until overwritten or swept.
type Entry struct {
	Value  []byte
	Expiry time.Time // zero value means no expiry
}

func (e Entry) expired(now time.Time) bool {
	return !e.Expiry.IsZero() && now.After(e.Expiry)
}

// Cache is the mapping key -> Entry shared by every connection
// handler. It is constructed once at server startup, optionally seeded
// from an RDB database section, and lives for the process lifetime.
type Cache struct {
	shards *cmap.Map[string, Entry]
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{shards: cmap.New[string, Entry]()}
}

// Get returns the stored value for key if it is present and unexpired.
func (c *Cache) Get(key string) ([]byte, bool) {
	entry, ok := c.shards.Get(key)
	if !ok {
		return nil, false
	}
	if entry.expired(time.Now()) {
		return nil, false
	}
	return entry.Value, true
}

// Set inserts or overwrites key. A zero ttl clears any existing
// expiry; a positive ttl sets the entry's absolute expiry to now+ttl
// on the monotonic clock.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	entry := Entry{Value: value}
	if ttl > 0 {
		entry.Expiry = time.Now().Add(ttl)
	}
	c.shards.Set(key, entry)
}

// Delete removes key unconditionally and reports whether it was
// present (regardless of expiry) before removal.
func (c *Cache) Delete(key string) bool {
	_, existed := c.shards.Pop(key)
	return existed
}

// Exists reports whether key is present and unexpired.
func (c *Cache) Exists(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Keys returns a snapshot of the currently stored keys, in unspecified
// order. Expired entries are permitted to appear.
func (c *Cache) Keys() [][]byte {
	keys := c.shards.Keys()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}

// Len reports the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	return c.shards.Count()
}

// LoadFrom seeds the cache from an RDB snapshot's first database
// section, converting each entry's absolute Unix-ms expiry into a
// deadline on the monotonic clock relative to the wall-clock time at
// which LoadFrom runs; entries already past their expiry at that time
// are skipped. Subsequent sections in the snapshot, if any,
// are not surfaced, matching the source's own behavior.
func (c *Cache) LoadFrom(snapshot *rdb.RDB) {
	section, ok := snapshot.FirstSection()
	if !ok {
		return
	}
	now := time.Now()
	for key, entry := range section.Entries {
		var ttl time.Duration
		if entry.Expiry != nil {
			deadline := time.UnixMilli(int64(*entry.Expiry))
			if !deadline.After(now) {
				// Already expired at load time: keep it absent rather
				// than resurrecting it with a zero TTL.
				continue
			}
			ttl = deadline.Sub(now)
		}
		c.Set(key, entry.Value, ttl)
	}
}
