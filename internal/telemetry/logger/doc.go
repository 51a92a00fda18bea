// Package logger provides structured logging built on log/slog:
//
//   - logger.go: Logger interface, slog-backed implementation, level control.
//   - context.go: context-aware logging with request/trace IDs.
//   - redact.go: sensitive field redaction by key name.
//
// Features:
//
//   - JSON and text output formats
//   - Dynamic log level filtering
//   - Automatic redaction of sensitive fields
//   - Context propagation for request tracing
package logger
