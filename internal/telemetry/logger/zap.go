// Package logger provides structured logging.
//
// Reserved for a zap-backed Logger implementation; the current
// implementation lives in logger.go and is built on log/slog.
package logger

