// Package redisserver implements the RESP2-speaking TCP server: a
// connection handler that decodes a stream of commands with
// resp.DecodeFrom over a buffered reader, a dispatcher that turns each validated
// Command into a cache operation and a reply, and a supervisor that
// accepts connections under a bounded concurrency ceiling.
package redisserver
