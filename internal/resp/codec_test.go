package resp

import (
	"bufio"
	"bytes"
	"fmt"
	"testing"

	"github.com/yndnr/rekv-go/internal/rerr"
)

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		buf  string
	}{
		{"simple string", "+PONG\r\n"},
		{"simple error", "-ERR bad\r\n"},
		{"integer", ":1000\r\n"},
		{"negative integer", ":-7\r\n"},
		{"bulk string", "$5\r\nhello\r\n"},
		{"empty bulk string", "$0\r\n\r\n"},
		{"null bulk string", "$-1\r\n"},
		{"empty array", "*0\r\n"},
		{"array of bulk strings", "*2\r\n$4\r\nPING\r\n$5\r\nhello\r\n"},
		{"ping array", "*1\r\n$4\r\nPING\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode([]byte(tt.buf))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			got := Encode(msg)
			if !bytes.Equal(got, []byte(tt.buf)) {
				t.Errorf("Encode(Decode(B)) = %q, want %q", got, tt.buf)
			}
		})
	}
}

func TestDecode_EmptyBulkVsNullBulk(t *testing.T) {
	empty, err := Decode([]byte("$0\r\n\r\n"))
	if err != nil {
		t.Fatalf("Decode(empty) error = %v", err)
	}
	null, err := Decode([]byte("$-1\r\n"))
	if err != nil {
		t.Fatalf("Decode(null) error = %v", err)
	}

	if empty.Equal(null) {
		t.Error("empty BulkString must not equal NullBulkString")
	}
	if empty.Kind != BulkStringKind || len(empty.Bulk) != 0 {
		t.Errorf("empty bulk decoded as %+v", empty)
	}
	if null.Kind != NullBulkStringKind {
		t.Errorf("null bulk decoded as %+v", null)
	}
}

func TestDecode_BadType(t *testing.T) {
	_, err := Decode([]byte("!oops\r\n"))
	if !rerr.Of(err, rerr.BadType) {
		t.Errorf("expected BadType, got %v", err)
	}
}

func TestDecode_TrailingBytes(t *testing.T) {
	_, err := Decode([]byte("+PONG\r\n+EXTRA\r\n"))
	if !rerr.Of(err, rerr.BadFrame) {
		t.Errorf("expected BadFrame for trailing bytes, got %v", err)
	}
}

func TestDecode_NestedArrayRejected(t *testing.T) {
	_, err := Decode([]byte("*1\r\n*1\r\n:1\r\n"))
	if !rerr.Of(err, rerr.BadFrame) {
		t.Errorf("expected BadFrame for nested array, got %v", err)
	}
}

func TestDecode_ShortRead(t *testing.T) {
	_, err := Decode([]byte("$5\r\nhel"))
	if !rerr.Of(err, rerr.ShortRead) {
		t.Errorf("expected ShortRead, got %v", err)
	}
}

func TestDecode_ArrayLenExceedsLimit(t *testing.T) {
	_, err := Decode([]byte("*99999\r\n"))
	if !rerr.Of(err, rerr.BadFrame) {
		t.Errorf("expected BadFrame for array length over limit, got %v", err)
	}
}

func TestDecode_BulkLenExceedsLimit(t *testing.T) {
	buf := []byte(fmt.Sprintf("$%d\r\n", MaxBulkLen+1))
	_, err := Decode(buf)
	if !rerr.Of(err, rerr.BadFrame) {
		t.Errorf("expected BadFrame for bulk length over limit, got %v", err)
	}
}

func TestDecodeFrom_LeavesSubsequentMessageUntouched(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader([]byte("+PONG\r\n:42\r\n")))

	first, err := DecodeFrom(br)
	if err != nil {
		t.Fatalf("DecodeFrom() first error = %v", err)
	}
	if !first.Equal(SimpleString("PONG")) {
		t.Errorf("first = %v, want +PONG", first)
	}

	second, err := DecodeFrom(br)
	if err != nil {
		t.Fatalf("DecodeFrom() second error = %v", err)
	}
	if !second.Equal(Integer(42)) {
		t.Errorf("second = %v, want :42", second)
	}
}

func TestEncode_ArrayOfBulk(t *testing.T) {
	msg := Array([]Message{
		BulkStringFrom("dir"),
		BulkStringFrom("/tmp"),
	})
	got := Encode(msg)
	want := "*2\r\n$3\r\ndir\r\n$4\r\n/tmp\r\n"
	if string(got) != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestMessage_Equal(t *testing.T) {
	a := Array([]Message{Integer(1), BulkStringFrom("x")})
	b := Array([]Message{Integer(1), BulkStringFrom("x")})
	c := Array([]Message{Integer(1), BulkStringFrom("y")})

	if !a.Equal(b) {
		t.Error("identical arrays should be equal")
	}
	if a.Equal(c) {
		t.Error("arrays differing in a child should not be equal")
	}
}
