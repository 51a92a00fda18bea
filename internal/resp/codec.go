package resp

import (
	"bufio"
	"bytes"
	"strconv"

	"github.com/yndnr/rekv-go/internal/rerr"
)

// Protocol limits guard against unbounded allocation driven by a
// hostile or broken peer.
const (
	// MaxArrayLen limits the number of elements in a RESP array.
	MaxArrayLen = 1024

	// MaxLineLen limits a single header/inline line: the length or
	// simple payload after the type byte, including its trailing CRLF.
	MaxLineLen = 64
)

// MaxBulkLen limits the size of a single bulk string. It defaults to
// 512MB, matching real Redis's proto-max-bulk-len default, and is a
// package variable rather than a constant so the server can lower or
// raise it from server.redis.max_bulk_len at startup.
var MaxBulkLen = 512 * 1024 * 1024

// Decode decodes a single Message from a whole buffer. It fails with
// BadFrame if bytes remain after the first message; errors decoding
// that message (ShortRead for a truncated buffer, BadType, BadFrame)
// are returned unchanged.
func Decode(buf []byte) (Message, error) {
	br := bufio.NewReader(bytes.NewReader(buf))
	msg, err := DecodeFrom(br)
	if err != nil {
		return Message{}, err
	}
	if br.Buffered() > 0 {
		return Message{}, rerr.New(rerr.BadFrame, "trailing bytes after message")
	}
	// bufio.NewReader may have pulled bytes from the underlying reader
	// into its own buffer beyond what Buffered() reports as consumed;
	// bytes.Reader has none left iff the whole input was read.
	if _, err := br.Peek(1); err == nil {
		return Message{}, rerr.New(rerr.BadFrame, "trailing bytes after message")
	}
	return msg, nil
}

// DecodeFrom decodes exactly one Message from a streaming reader,
// leaving any bytes belonging to a subsequent message untouched. It is
// the entry point used by the connection handler, and is also what
// Decode is built on.
func DecodeFrom(br *bufio.Reader) (Message, error) {
	tag, err := br.ReadByte()
	if err != nil {
		return Message{}, rerr.Wrap(rerr.ShortRead, "reading type byte", err)
	}

	switch tag {
	case '+':
		line, err := readLine(br)
		if err != nil {
			return Message{}, err
		}
		return SimpleString(line), nil
	case '-':
		line, err := readLine(br)
		if err != nil {
			return Message{}, err
		}
		return SimpleError(line), nil
	case ':':
		line, err := readLine(br)
		if err != nil {
			return Message{}, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return Message{}, rerr.Wrap(rerr.BadFrame, "invalid integer payload", err)
		}
		return Integer(n), nil
	case '$':
		return decodeBulkString(br)
	case '*':
		return decodeArray(br)
	default:
		return Message{}, rerr.New(rerr.BadType, "unrecognized type byte")
	}
}

func decodeBulkString(br *bufio.Reader) (Message, error) {
	line, err := readLine(br)
	if err != nil {
		return Message{}, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return Message{}, rerr.Wrap(rerr.BadFrame, "invalid bulk string length", err)
	}
	if n == -1 {
		return NullBulkString(), nil
	}
	if n < 0 {
		return Message{}, rerr.New(rerr.BadFrame, "negative bulk string length")
	}
	if n > MaxBulkLen {
		return Message{}, rerr.New(rerr.BadFrame, "bulk string length exceeds limit")
	}

	buf := make([]byte, n+2)
	if _, err := readFull(br, buf); err != nil {
		return Message{}, err
	}
	if !bytes.HasSuffix(buf, crlf) {
		return Message{}, rerr.New(rerr.BadFrame, "bulk string missing trailing CRLF")
	}
	return BulkString(buf[:n]), nil
}

func decodeArray(br *bufio.Reader) (Message, error) {
	line, err := readLine(br)
	if err != nil {
		return Message{}, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return Message{}, rerr.Wrap(rerr.BadFrame, "invalid array length", err)
	}
	if n == -1 {
		return Array(nil), nil
	}
	if n < 0 {
		return Message{}, rerr.New(rerr.BadFrame, "negative array length")
	}
	if n > MaxArrayLen {
		return Message{}, rerr.New(rerr.BadFrame, "array length exceeds limit")
	}

	items := make([]Message, 0, n)
	for i := 0; i < n; i++ {
		child, err := DecodeFrom(br)
		if err != nil {
			return Message{}, err
		}
		if child.Kind == ArrayKind {
			return Message{}, rerr.New(rerr.BadFrame, "nested arrays are not supported")
		}
		items = append(items, child)
	}
	return Array(items), nil
}

var crlf = []byte("\r\n")

// readLine reads up to and including the next "\r\n", returning the
// line with the terminator stripped. It bounds the line length so a
// peer that never sends CRLF cannot exhaust memory.
func readLine(br *bufio.Reader) (string, error) {
	frag, err := br.ReadSlice('\n')
	if err != nil {
		if len(frag) > MaxLineLen {
			return "", rerr.New(rerr.BadFrame, "line exceeds limit")
		}
		return "", rerr.Wrap(rerr.ShortRead, "reading line", err)
	}
	if len(frag) > MaxLineLen {
		return "", rerr.New(rerr.BadFrame, "line exceeds limit")
	}
	if len(frag) < 2 || frag[len(frag)-2] != '\r' {
		return "", rerr.New(rerr.BadFrame, "line missing CRLF terminator")
	}
	return string(frag[:len(frag)-2]), nil
}

// readFull reads exactly len(buf) bytes, translating a short read into
// the taxonomy's ShortRead kind.
func readFull(br *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := br.Read(buf[n:])
		n += m
		if err != nil {
			return n, rerr.Wrap(rerr.ShortRead, "reading fixed-length payload", err)
		}
	}
	return n, nil
}

// Encode is the exact inverse of Decode/DecodeFrom: for any Message
// produced by decoding, encode(decode(B)) == B.
func Encode(m Message) []byte {
	var buf bytes.Buffer
	encodeInto(&buf, m)
	return buf.Bytes()
}

func encodeInto(buf *bytes.Buffer, m Message) {
	switch m.Kind {
	case SimpleStringKind:
		buf.WriteByte('+')
		buf.WriteString(m.Str)
		buf.Write(crlf)
	case SimpleErrorKind:
		buf.WriteByte('-')
		buf.WriteString(m.Str)
		buf.Write(crlf)
	case IntegerKind:
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(m.Int, 10))
		buf.Write(crlf)
	case BulkStringKind:
		buf.WriteByte('$')
		buf.WriteString(strconv.Itoa(len(m.Bulk)))
		buf.Write(crlf)
		buf.Write(m.Bulk)
		buf.Write(crlf)
	case NullBulkStringKind:
		buf.WriteString("$-1\r\n")
	case ArrayKind:
		buf.WriteByte('*')
		buf.WriteString(strconv.Itoa(len(m.Items)))
		buf.Write(crlf)
		for _, child := range m.Items {
			encodeInto(buf, child)
		}
	}
}
