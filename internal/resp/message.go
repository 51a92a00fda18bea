// Package resp implements the RESP2 wire protocol: a tagged-union
// Message tree, a decoder that runs equally over a whole buffer or a
// live connection's bufio.Reader, and an encoder that is the exact
// inverse of decode.
package resp

import "strconv"

// Kind tags the variant a Message holds.
type Kind int

const (
	SimpleStringKind Kind = iota
	SimpleErrorKind
	IntegerKind
	BulkStringKind
	NullBulkStringKind
	ArrayKind
)

// Message is a RESP2 protocol node. Exactly one of the fields below is
// meaningful for a given Kind: Str for SimpleString/SimpleError, Int
// for Integer, Bulk for BulkString, Items for Array. NullBulkString
// carries no payload.
//
// An empty BulkString ([]byte{}) and a NullBulkString are distinct
// values; do not collapse them by checking len(Bulk) == 0.
type Message struct {
	Kind  Kind
	Str   string
	Int   int64
	Bulk  []byte
	Items []Message
}

// SimpleString builds a `+` message.
func SimpleString(s string) Message { return Message{Kind: SimpleStringKind, Str: s} }

// SimpleError builds a `-` message.
func SimpleError(s string) Message { return Message{Kind: SimpleErrorKind, Str: s} }

// Integer builds a `:` message.
func Integer(n int64) Message { return Message{Kind: IntegerKind, Int: n} }

// BulkString builds a `$` message from raw bytes. A nil slice is a
// valid, non-null bulk string of length 0; use NullBulkString for the
// absent value.
func BulkString(b []byte) Message {
	if b == nil {
		b = []byte{}
	}
	return Message{Kind: BulkStringKind, Bulk: b}
}

// BulkStringFrom builds a BulkString from a Go string.
func BulkStringFrom(s string) Message { return BulkString([]byte(s)) }

// NullBulkString builds the `$-1\r\n` absence value.
func NullBulkString() Message { return Message{Kind: NullBulkStringKind} }

// Array builds a `*` message from an ordered, flat list of children.
func Array(items []Message) Message { return Message{Kind: ArrayKind, Items: items} }

// Equal reports whether two Messages are the same value, distinguishing
// an empty BulkString from a NullBulkString.
func (m Message) Equal(other Message) bool {
	if m.Kind != other.Kind {
		return false
	}
	switch m.Kind {
	case SimpleStringKind, SimpleErrorKind:
		return m.Str == other.Str
	case IntegerKind:
		return m.Int == other.Int
	case BulkStringKind:
		return string(m.Bulk) == string(other.Bulk)
	case NullBulkStringKind:
		return true
	case ArrayKind:
		if len(m.Items) != len(other.Items) {
			return false
		}
		for i := range m.Items {
			if !m.Items[i].Equal(other.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders a Message for logging; it is not the wire encoding.
func (m Message) String() string {
	switch m.Kind {
	case SimpleStringKind:
		return "+" + m.Str
	case SimpleErrorKind:
		return "-" + m.Str
	case IntegerKind:
		return ":" + strconv.FormatInt(m.Int, 10)
	case BulkStringKind:
		return "$" + string(m.Bulk)
	case NullBulkStringKind:
		return "$-1"
	case ArrayKind:
		s := "*["
		for i, it := range m.Items {
			if i > 0 {
				s += " "
			}
			s += it.String()
		}
		return s + "]"
	default:
		return "?"
	}
}
