package respclient

import (
	"bufio"
	"net"
	"testing"

	"github.com/yndnr/rekv-go/internal/resp"
)

// serve accepts a single connection, decodes one command, and replies
// with the given message.
func serve(t *testing.T, ln net.Listener, reply resp.Message) {
	t.Helper()
	conn, err := ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	br := bufio.NewReader(conn)
	if _, err := resp.DecodeFrom(br); err != nil {
		t.Errorf("server: decode request: %v", err)
		return
	}
	if _, err := conn.Write(resp.Encode(reply)); err != nil {
		t.Errorf("server: write reply: %v", err)
	}
}

func TestClient_Send(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go serve(t, ln, resp.SimpleString("PONG"))

	c := New(ln.Addr().String())
	defer c.Close()

	reply, err := c.Send("PING")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Kind != resp.SimpleStringKind || reply.Str != "PONG" {
		t.Errorf("reply = %+v, want +PONG", reply)
	}
}

func TestClient_Send_DialsLazily(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go serve(t, ln, resp.Integer(1))

	c := New(ln.Addr().String())
	defer c.Close()

	if c.conn != nil {
		t.Fatal("client should not dial until Send is called")
	}
	if _, err := c.Send("DEL", "foo"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if c.conn == nil {
		t.Error("client should have dialed on first Send")
	}
}

func TestClient_Send_DialFailure(t *testing.T) {
	c := New("127.0.0.1:1")
	if _, err := c.Send("PING"); err == nil {
		t.Fatal("expected an error dialing a closed port")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  resp.Message
		want string
	}{
		{"simple string", resp.SimpleString("OK"), "OK"},
		{"error", resp.SimpleError("ERR bad command"), "(error) ERR bad command"},
		{"integer", resp.Integer(42), "(integer) 42"},
		{"bulk string", resp.BulkStringFrom("hello"), "hello"},
		{"null bulk string", resp.NullBulkString(), "(nil)"},
		{"empty array", resp.Array(nil), "(empty array)"},
		{
			"array",
			resp.Array([]resp.Message{resp.BulkStringFrom("a"), resp.BulkStringFrom("b")}),
			"1) a\n2) b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.msg); got != tt.want {
				t.Errorf("Format(%+v) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}
