package redisserver

import (
	"bytes"
	"strconv"

	"github.com/yndnr/rekv-go/internal/resp"
)

// Verb identifies a recognized command.
type Verb int

const (
	Ping Verb = iota
	Echo
	Get
	Set
	ConfigGet
	Keys
	Del
	Exists
)

func (v Verb) String() string {
	switch v {
	case Ping:
		return "ping"
	case Echo:
		return "echo"
	case Get:
		return "get"
	case Set:
		return "set"
	case ConfigGet:
		return "config"
	case Keys:
		return "keys"
	case Del:
		return "del"
	case Exists:
		return "exists"
	default:
		return "unknown"
	}
}

// Command is the result of validating an inbound Message: a recognized
// verb plus its raw argument byte strings (the verb token itself is
// not included).
type Command struct {
	Verb Verb
	Args [][]byte

	// SetTTL is populated only for Set when a "px <ms>" pair was given.
	SetTTL int64
	HasTTL bool
}

// Validate turns a decoded Message into a Command, or reports false if
// the message does not describe a recognized, well-formed command. A
// non-Array message, an unknown verb, or an arity violation all fall
// through to the caller's lenient fallback.
func Validate(msg resp.Message) (Command, bool) {
	if msg.Kind != resp.ArrayKind || len(msg.Items) == 0 {
		return Command{}, false
	}

	verbToken, ok := elementBytes(msg.Items[0])
	if !ok {
		return Command{}, false
	}
	verbName := lowerASCII(verbToken)

	args := make([][]byte, 0, len(msg.Items)-1)
	for _, item := range msg.Items[1:] {
		b, ok := elementBytes(item)
		if !ok {
			return Command{}, false
		}
		args = append(args, b)
	}

	switch verbName {
	case "ping":
		if len(args) > 1 {
			return Command{}, false
		}
		return Command{Verb: Ping, Args: args}, true

	case "echo":
		if len(args) != 1 {
			return Command{}, false
		}
		return Command{Verb: Echo, Args: args}, true

	case "get":
		if len(args) != 1 {
			return Command{}, false
		}
		return Command{Verb: Get, Args: args}, true

	case "set":
		return validateSet(args)

	case "config":
		if len(args) < 2 || lowerASCII(args[0]) != "get" {
			return Command{}, false
		}
		return Command{Verb: ConfigGet, Args: args[1:]}, true

	case "keys":
		return Command{Verb: Keys, Args: args}, true

	case "del":
		if len(args) < 1 {
			return Command{}, false
		}
		return Command{Verb: Del, Args: args}, true

	case "exists":
		if len(args) < 1 {
			return Command{}, false
		}
		return Command{Verb: Exists, Args: args}, true

	default:
		return Command{}, false
	}
}

func validateSet(args [][]byte) (Command, bool) {
	switch len(args) {
	case 2:
		return Command{Verb: Set, Args: args}, true
	case 4:
		if lowerASCII(args[2]) != "px" {
			return Command{}, false
		}
		ms, err := strconv.ParseInt(string(args[3]), 10, 64)
		if err != nil || ms < 0 {
			return Command{}, false
		}
		return Command{Verb: Set, Args: args[:2], SetTTL: ms, HasTTL: true}, true
	default:
		return Command{}, false
	}
}

// elementBytes extracts the raw payload of a flat array element that
// may serve as a command token: a BulkString or a SimpleString.
func elementBytes(m resp.Message) ([]byte, bool) {
	switch m.Kind {
	case resp.BulkStringKind:
		return m.Bulk, true
	case resp.SimpleStringKind:
		return []byte(m.Str), true
	default:
		return nil, false
	}
}

func lowerASCII(b []byte) string {
	if !bytes.ContainsAny(b, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return string(b)
	}
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
