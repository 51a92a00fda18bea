package rdb

import (
	"strconv"

	"github.com/yndnr/rekv-go/internal/rerr"
)

// lengthResult is the outcome of decoding one length-encoding byte
// sequence: either a plain length or a special integer value.
type lengthResult struct {
	length    uint64
	isSpecial bool
	special   int64
}

// readLength decodes the length-encoding scheme selected by the top
// two bits of the next byte.
func readLength(rd *reader) (lengthResult, error) {
	b0, err := rd.readU8()
	if err != nil {
		return lengthResult{}, err
	}

	switch b0 >> 6 {
	case 0b00:
		return lengthResult{length: uint64(b0 & 0x3F)}, nil
	case 0b01:
		b1, err := rd.readU8()
		if err != nil {
			return lengthResult{}, err
		}
		length := uint64(b0&0x3F)<<8 | uint64(b1)
		return lengthResult{length: length}, nil
	case 0b10:
		n, err := rd.readU32LE()
		if err != nil {
			return lengthResult{}, err
		}
		return lengthResult{length: uint64(n)}, nil
	default: // 0b11: special string encoding
		switch b0 & 0x3F {
		case 0:
			n, err := rd.readU8()
			if err != nil {
				return lengthResult{}, err
			}
			return lengthResult{isSpecial: true, special: int64(n)}, nil
		case 1:
			n, err := rd.readU16LE()
			if err != nil {
				return lengthResult{}, err
			}
			return lengthResult{isSpecial: true, special: int64(n)}, nil
		case 2:
			n, err := rd.readU32LE()
			if err != nil {
				return lengthResult{}, err
			}
			return lengthResult{isSpecial: true, special: int64(n)}, nil
		default:
			return lengthResult{}, rerr.New(rerr.RdbMalformed, "unsupported special string encoding")
		}
	}
}

// readLengthEncodedString reads a length-encoded string: either a
// raw byte run of the decoded length, or the decimal rendering of a
// special integer encoding.
func readLengthEncodedString(rd *reader, p *bufPeeker) ([]byte, error) {
	lr, err := readLength(rd)
	if err != nil {
		return nil, err
	}
	if lr.isSpecial {
		return []byte(strconv.FormatInt(lr.special, 10)), nil
	}
	return rd.readString(int(lr.length))
}

// readLengthEncodedInt reads a length-encoded integer: the non-special
// length schemes only, used for the RESIZE record's two counts.
func readLengthEncodedInt(rd *reader, p *bufPeeker) (uint64, error) {
	lr, err := readLength(rd)
	if err != nil {
		return 0, err
	}
	if lr.isSpecial {
		return 0, rerr.New(rerr.RdbMalformed, "special encoding not valid for a count field")
	}
	return lr.length, nil
}
