// Package cmap provides a generic concurrent map used as the backing
// store for the key/value cache.
//
// This package implements a sharded concurrent map optimized for
// high-throughput read/write workloads with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Optimistic Locking: Version-based compare-and-swap updates
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.New[string, *cache.Entry]()
//	m.Set("key", entry)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Count, Range)
// use RLock, write operations (Set, Pop) use Lock.
package cmap
