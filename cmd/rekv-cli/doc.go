// Command rekv-cli is a small RESP2 client for rekv-server.
//
// Usage:
//
//	rekv-cli ping [-a addr] [message]
//	rekv-cli exec [-a addr] VERB [ARG...]
//	rekv-cli repl [-a addr]
package main
