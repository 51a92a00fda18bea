// Package respclient is a minimal RESP2 client used by rekv-cli: it
// dials a rekv-server address, sends a command as an Array of
// BulkStrings, and decodes the single reply.
package respclient
