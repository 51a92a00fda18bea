// Package rdb decodes Redis RDB snapshot files well enough to bootstrap
// the in-memory cache from a bit-exact-compatible dump: header, AUX
// metadata, one or more database sections, and the trailing EOF+CRC64
// marker. Only string-typed values (RDB_TYPE_STRING) are supported;
// anything else fails the load, which the caller treats as fail-open
// (log and start with an empty cache).
package rdb
