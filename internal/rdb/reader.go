package rdb

import (
	"encoding/binary"
	"io"

	"github.com/yndnr/rekv-go/internal/rerr"
)

// reader is a stateful cursor over an RDB byte stream. All multi-byte
// integers on the wire are little-endian; callers of the readUxx
// helpers never see host-order ambiguity.
type reader struct {
	r   io.Reader
	buf [8]byte
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

// readExact reads exactly n bytes, failing with ShortRead if fewer
// remain.
func (rd *reader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return nil, rerr.Wrap(rerr.ShortRead, "reading fixed-length field", err)
	}
	return buf, nil
}

func (rd *reader) readU8() (uint8, error) {
	b, err := rd.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (rd *reader) readU16LE() (uint16, error) {
	b, err := rd.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (rd *reader) readU32LE() (uint32, error) {
	b, err := rd.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (rd *reader) readU64LE() (uint64, error) {
	b, err := rd.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readString reads n raw bytes and returns them unchanged.
func (rd *reader) readString(n int) ([]byte, error) {
	return rd.readExact(n)
}

// bufPeeker adapts a byte slice cursor to support peeking a byte ahead
// of the reader cursor, avoiding a bufio.Reader dependency for what is,
// in the end, always a fully-buffered file.
type bufPeeker struct {
	data []byte
	pos  int
}

func newBufPeeker(data []byte) *bufPeeker {
	return &bufPeeker{data: data}
}

func (p *bufPeeker) Read(b []byte) (int, error) {
	if p.pos >= len(p.data) {
		return 0, io.EOF
	}
	n := copy(b, p.data[p.pos:])
	p.pos += n
	return n, nil
}

func (p *bufPeeker) PeekByte() (byte, error) {
	if p.pos >= len(p.data) {
		return 0, io.EOF
	}
	return p.data[p.pos], nil
}

// consumeIfByte advances past the next byte and returns true if it
// equals b; otherwise the cursor is left untouched and false is
// returned. Used to detect optional opcodes (AUX, EXPIRE_S, EXPIRE_MS).
func (rd *reader) consumeIfByte(p *bufPeeker, b byte) (bool, error) {
	next, err := p.PeekByte()
	if err != nil {
		return false, nil
	}
	if next != b {
		return false, nil
	}
	if _, err := rd.readU8(); err != nil {
		return false, err
	}
	return true, nil
}
