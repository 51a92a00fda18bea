// Package rerr defines the error taxonomy used across the server:
// codec, dispatcher, cache, RDB loader and supervisor all report
// failures as a *rerr.Error tagged with one of a fixed set of Kinds so
// callers can branch with errors.As instead of string matching.
package rerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error by where it originated and how the caller
// is expected to react.
type Kind string

const (
	// ShortRead: the RESP or RDB decoder needed more bytes than were
	// available. Close the connection / abort the load.
	ShortRead Kind = "short_read"

	// BadFrame: a RESP buffer did not decode to a single, fully
	// consumed message, or a streamed frame violated a protocol
	// limit. Close the connection.
	BadFrame Kind = "bad_frame"

	// BadType: the first byte of a RESP message did not match any
	// known type tag. Close the connection.
	BadType Kind = "bad_type"

	// UnknownCommand: the inbound Message did not validate into a
	// Command (unrecognized verb). The dispatcher's lenient fallback
	// applies; the connection stays open.
	UnknownCommand Kind = "unknown_command"

	// ArityError: the verb was recognized but the argument count or
	// shape violated its arity contract. The dispatcher's lenient
	// fallback applies; the connection stays open.
	ArityError Kind = "arity_error"

	// CacheMiss: not really an error condition (a normal GET miss);
	// included so callers that want to log misses uniformly can.
	CacheMiss Kind = "cache_miss"

	// RdbMalformed: the RDB snapshot did not parse. Fail-open: log and
	// proceed with an empty cache.
	RdbMalformed Kind = "rdb_malformed"

	// IoError: a socket read/write failed outside of the decoder.
	// Terminate that connection; the server keeps running.
	IoError Kind = "io_error"

	// BindError: the listening socket could not be created or bound.
	// The process exits with status 1.
	BindError Kind = "bind_error"

	// ListenError: the listening socket could not enter the listening
	// state, or the accept loop itself failed unrecoverably. The
	// process exits with status 1.
	ListenError Kind = "listen_error"

	// ConfigError: configuration failed validation at startup. The
	// process exits with status 1, alongside BindError/ListenError.
	ConfigError Kind = "config_error"
)

// Error is a taxonomy-tagged error. It wraps an optional underlying
// cause so errors.Is/errors.As chains through it normally.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an Error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Of reports whether err is (or wraps) an *Error of the given kind.
func Of(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf extracts the Kind from err if it is a tagged Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
