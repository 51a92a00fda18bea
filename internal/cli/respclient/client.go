package respclient

import (
	"bufio"
	"net"
	"strconv"
	"time"

	"github.com/yndnr/rekv-go/internal/resp"
)

// Client is a connection to a rekv-server RESP2 listener.
type Client struct {
	addr string
	conn net.Conn
	br   *bufio.Reader
}

// New creates a Client for addr. The connection is established lazily
// on the first Send call.
func New(addr string) *Client {
	return &Client{addr: addr}
}

// Dial establishes the underlying TCP connection.
func (c *Client) Dial() error {
	conn, err := net.DialTimeout("tcp", c.addr, 5*time.Second)
	if err != nil {
		return err
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)
	return nil
}

// Close closes the underlying connection, if any.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Send encodes args as a RESP Array of BulkStrings, writes it, and
// returns the decoded reply. It dials the connection on first use.
func (c *Client) Send(args ...string) (resp.Message, error) {
	if c.conn == nil {
		if err := c.Dial(); err != nil {
			return resp.Message{}, err
		}
	}

	items := make([]resp.Message, len(args))
	for i, a := range args {
		items[i] = resp.BulkStringFrom(a)
	}

	if _, err := c.conn.Write(resp.Encode(resp.Array(items))); err != nil {
		return resp.Message{}, err
	}

	return resp.DecodeFrom(c.br)
}

// Format renders a reply the way a terminal client would: bulk strings
// and simple strings print their raw content, integers print the
// number, a null bulk string prints "(nil)", and arrays print one
// element per line.
func Format(m resp.Message) string {
	switch m.Kind {
	case resp.SimpleStringKind:
		return m.Str
	case resp.SimpleErrorKind:
		return "(error) " + m.Str
	case resp.IntegerKind:
		return "(integer) " + strconv.FormatInt(m.Int, 10)
	case resp.BulkStringKind:
		return string(m.Bulk)
	case resp.NullBulkStringKind:
		return "(nil)"
	case resp.ArrayKind:
		if len(m.Items) == 0 {
			return "(empty array)"
		}
		out := ""
		for i, item := range m.Items {
			if i > 0 {
				out += "\n"
			}
			out += strconv.Itoa(i+1) + ") " + Format(item)
		}
		return out
	default:
		return "?"
	}
}
