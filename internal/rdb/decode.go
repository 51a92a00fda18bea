package rdb

import (
	"strconv"

	"github.com/yndnr/rekv-go/internal/rerr"
)

// Opcodes and magic constants, per the Redis RDB file format.
const (
	opEOF        = 0xFF
	opDBSelector = 0xFE
	opExpireS    = 0xFD
	opExpireMS   = 0xFC
	opResize     = 0xFB
	opAux        = 0xFA

	magic          = "REDIS"
	minVersion     = 7
	valueTypeString = 0
)

// Header is the five-byte magic plus four-digit version.
type Header struct {
	Version int
}

// Metadata holds the recognized AUX fields; unrecognized keys are
// dropped after being logged by the caller.
type Metadata struct {
	CreationTime  uint64
	UsedMemory    uint64
	RedisVersion  string
	RedisNumBits  int
}

// Section is one database's key/value contents, decoded in file order.
// Section index N must equal its 0-based position in the file.
type Section struct {
	Index   int
	Entries map[string]Entry
}

// Entry is a single decoded key's value plus its optional expiry. Only
// string-typed values are supported.
type Entry struct {
	Value  []byte
	Expiry *uint64 // absolute Unix-ms deadline; nil if the key has no TTL
}

// EndOfFile carries the trailing checksum bytes verbatim; verifying
// them is a non-requirement.
type EndOfFile struct {
	CRC64 [8]byte
}

// RDB is the fully decoded snapshot.
type RDB struct {
	Header    Header
	Metadata  Metadata
	Sections  []Section
	EndOfFile EndOfFile
}

// Decode parses a complete RDB byte stream. Unrecognized AUX keys are
// discarded; use DecodeWithSkippedAux to get their names.
func Decode(data []byte) (*RDB, error) {
	rdb, _, err := DecodeWithSkippedAux(data)
	return rdb, err
}

// DecodeWithSkippedAux is Decode plus the list of AUX metadata keys
// that were present but not recognized.
func DecodeWithSkippedAux(data []byte) (*RDB, []string, error) {
	p := newBufPeeker(data)
	rd := newReader(p)

	header, err := decodeHeader(rd)
	if err != nil {
		return nil, nil, err
	}

	meta, skipped, err := decodeMetadata(rd, p)
	if err != nil {
		return nil, nil, err
	}

	sections, err := decodeSections(rd, p)
	if err != nil {
		return nil, nil, err
	}

	eof, err := decodeEOF(rd, p)
	if err != nil {
		return nil, nil, err
	}

	return &RDB{Header: header, Metadata: meta, Sections: sections, EndOfFile: eof}, skipped, nil
}

func decodeHeader(rd *reader) (Header, error) {
	magicBytes, err := rd.readString(5)
	if err != nil {
		return Header{}, err
	}
	if string(magicBytes) != magic {
		return Header{}, rerr.New(rerr.RdbMalformed, "bad magic prefix")
	}
	versionBytes, err := rd.readString(4)
	if err != nil {
		return Header{}, err
	}
	version, err := strconv.Atoi(string(versionBytes))
	if err != nil {
		return Header{}, rerr.Wrap(rerr.RdbMalformed, "non-numeric version", err)
	}
	if version < minVersion {
		return Header{}, rerr.New(rerr.RdbMalformed, "version below minimum supported")
	}
	return Header{Version: version}, nil
}

func decodeMetadata(rd *reader, p *bufPeeker) (Metadata, []string, error) {
	var meta Metadata
	var skipped []string

	for {
		isAux, err := rd.consumeIfByte(p, opAux)
		if err != nil {
			return Metadata{}, nil, err
		}
		if !isAux {
			break
		}

		key, err := readLengthEncodedString(rd, p)
		if err != nil {
			return Metadata{}, nil, err
		}
		value, err := readLengthEncodedString(rd, p)
		if err != nil {
			return Metadata{}, nil, err
		}

		switch string(key) {
		case "ctime":
			n, err := strconv.ParseUint(string(value), 10, 64)
			if err == nil {
				meta.CreationTime = n
			}
		case "used-mem":
			n, err := strconv.ParseUint(string(value), 10, 64)
			if err == nil {
				meta.UsedMemory = n
			}
		case "redis-bits":
			n, err := strconv.Atoi(string(value))
			if err == nil && (n == 32 || n == 64) {
				meta.RedisNumBits = n
			}
		case "redis-ver":
			meta.RedisVersion = string(value)
		default:
			skipped = append(skipped, string(key))
		}
	}

	return meta, skipped, nil
}

func decodeSections(rd *reader, p *bufPeeker) ([]Section, error) {
	var sections []Section

	for {
		isDB, err := rd.consumeIfByte(p, opDBSelector)
		if err != nil {
			return nil, err
		}
		if !isDB {
			break
		}

		idx, err := rd.readU8()
		if err != nil {
			return nil, err
		}
		if int(idx) != len(sections) {
			return nil, rerr.New(rerr.RdbMalformed, "database section index out of order")
		}

		if _, err := requireByte(rd, p, opResize); err != nil {
			return nil, err
		}

		numKV, err := readLengthEncodedInt(rd, p)
		if err != nil {
			return nil, err
		}
		numExpiry, err := readLengthEncodedInt(rd, p)
		if err != nil {
			return nil, err
		}

		entries := make(map[string]Entry, numKV)
		observedExpiry := 0

		for i := uint64(0); i < numKV; i++ {
			var expiry *uint64

			if hasS, err := rd.consumeIfByte(p, opExpireS); err != nil {
				return nil, err
			} else if hasS {
				secs, err := rd.readU32LE()
				if err != nil {
					return nil, err
				}
				ms := uint64(secs) * 1000
				expiry = &ms
				observedExpiry++
			} else if hasMS, err := rd.consumeIfByte(p, opExpireMS); err != nil {
				return nil, err
			} else if hasMS {
				ms, err := rd.readU64LE()
				if err != nil {
					return nil, err
				}
				expiry = &ms
				observedExpiry++
			}

			valueType, err := rd.readU8()
			if err != nil {
				return nil, err
			}
			if valueType != valueTypeString {
				return nil, rerr.New(rerr.RdbMalformed, "unsupported value type")
			}

			key, err := readLengthEncodedString(rd, p)
			if err != nil {
				return nil, err
			}
			value, err := readLengthEncodedString(rd, p)
			if err != nil {
				return nil, err
			}

			entries[string(key)] = Entry{Value: value, Expiry: expiry}
		}

		if uint64(observedExpiry) != numExpiry {
			return nil, rerr.New(rerr.RdbMalformed, "expiry count mismatch against resize record")
		}

		sections = append(sections, Section{Index: int(idx), Entries: entries})
	}

	return sections, nil
}

func decodeEOF(rd *reader, p *bufPeeker) (EndOfFile, error) {
	if _, err := requireByte(rd, p, opEOF); err != nil {
		return EndOfFile{}, err
	}
	crc, err := rd.readExact(8)
	if err != nil {
		return EndOfFile{}, err
	}
	var eof EndOfFile
	copy(eof.CRC64[:], crc)
	return eof, nil
}

func requireByte(rd *reader, p *bufPeeker, want byte) (byte, error) {
	got, err := rd.readU8()
	if err != nil {
		return 0, err
	}
	if got != want {
		return 0, rerr.New(rerr.RdbMalformed, "unexpected opcode")
	}
	return got, nil
}
