// Command rekv-server is the entry point for the RESP2-compatible
// in-memory key/value server.
//
// It loads configuration from flags, environment, and an optional YAML
// file, optionally bootstraps the cache from an RDB snapshot, then
// starts the RESP2 TCP listener and the operational HTTP surface
// (healthz/readyz/metrics) until SIGINT or SIGTERM.
//
// Usage:
//
//	rekv-server [flags]
//	rekv-server --dir /var/lib/rekv --dbfilename dump.rdb
package main
