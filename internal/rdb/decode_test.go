package rdb

import (
	"encoding/hex"
	"testing"

	"github.com/yndnr/rekv-go/internal/rerr"
)

// sampleSnapshotHex is REDIS0009 with AUX redis-ver/redis-bits, one DB
// section containing mykey->myval, then EOF+8 zero CRC bytes.
const sampleSnapshotHex = "524544495330303039fa0972656469732d76657205352e302e37fa0a72656469732d62697473023634fe00fb010000056d796b6579056d7976616cff0000000000000000"

func mustDecode(t *testing.T, hexStr string) *RDB {
	t.Helper()
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	rdb, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return rdb
}

func TestDecode_Bootstrap(t *testing.T) {
	rdb := mustDecode(t, sampleSnapshotHex)

	if rdb.Header.Version != 9 {
		t.Errorf("Version = %d, want 9", rdb.Header.Version)
	}
	if rdb.Metadata.RedisVersion != "5.0.7" {
		t.Errorf("RedisVersion = %q, want %q", rdb.Metadata.RedisVersion, "5.0.7")
	}
	if rdb.Metadata.RedisNumBits != 64 {
		t.Errorf("RedisNumBits = %d, want 64", rdb.Metadata.RedisNumBits)
	}
	if len(rdb.Sections) != 1 {
		t.Fatalf("Sections = %d, want 1", len(rdb.Sections))
	}

	section := rdb.Sections[0]
	if section.Index != 0 {
		t.Errorf("section.Index = %d, want 0", section.Index)
	}
	entry, ok := section.Entries["mykey"]
	if !ok {
		t.Fatal("expected mykey in section")
	}
	if string(entry.Value) != "myval" {
		t.Errorf("entry.Value = %q, want %q", entry.Value, "myval")
	}
	if entry.Expiry != nil {
		t.Errorf("entry.Expiry = %v, want nil", entry.Expiry)
	}
}

func TestDecode_BadMagic(t *testing.T) {
	_, err := Decode([]byte("XXXXX0009"))
	if !rerr.Of(err, rerr.RdbMalformed) {
		t.Errorf("expected RdbMalformed, got %v", err)
	}
}

func TestDecode_VersionBelowMinimum(t *testing.T) {
	data := []byte("REDIS0006")
	_, err := Decode(data)
	if !rerr.Of(err, rerr.RdbMalformed) {
		t.Errorf("expected RdbMalformed for low version, got %v", err)
	}
}

func TestReadLength_Schemes(t *testing.T) {
	tests := []struct {
		name string
		enc  []byte
		want uint64
	}{
		{"6-bit zero", []byte{0x00}, 0},
		{"6-bit one", []byte{0x01}, 1},
		{"6-bit max", []byte{0x3F}, 63},
		{"14-bit min", []byte{0x40, 0x40}, 64},
		{"14-bit max", []byte{0x7F, 0xFF}, 16383},
		{"32-bit min", []byte{0x80, 0x00, 0x40, 0x00, 0x00}, 16384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := newReader(newBufPeeker(tt.enc))
			lr, err := readLength(rd)
			if err != nil {
				t.Fatalf("readLength() error = %v", err)
			}
			if lr.isSpecial {
				t.Fatalf("unexpected special encoding")
			}
			if lr.length != tt.want {
				t.Errorf("length = %d, want %d", lr.length, tt.want)
			}
		})
	}
}

func TestReadLength_SpecialIntegers(t *testing.T) {
	tests := []struct {
		name string
		enc  []byte
		want string
	}{
		{"int8 zero", []byte{0xC0, 0x00}, "0"},
		{"int8 max byte value", []byte{0xC0, 0xFF}, "255"}, // 0xFF decodes unsigned, not as int8 -1
		{"int16", []byte{0xC1, 0x00, 0x01}, "256"},
		{"int16 max value", []byte{0xC1, 0xFF, 0xFF}, "65535"},
		{"int32", []byte{0xC2, 0x00, 0x00, 0x01, 0x00}, "65536"},
		{"int32 max value", []byte{0xC2, 0xFF, 0xFF, 0xFF, 0xFF}, "4294967295"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rd := newReader(newBufPeeker(tt.enc))
			p := newBufPeeker(nil)
			got, err := readLengthEncodedString(rd, p)
			if err != nil {
				t.Fatalf("readLengthEncodedString() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("decoded = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadLengthEncodedInt_RejectsSpecial(t *testing.T) {
	rd := newReader(newBufPeeker([]byte{0xC0, 0x05}))
	p := newBufPeeker(nil)
	_, err := readLengthEncodedInt(rd, p)
	if !rerr.Of(err, rerr.RdbMalformed) {
		t.Errorf("expected RdbMalformed, got %v", err)
	}
}

func TestConsumeIfByte(t *testing.T) {
	p := newBufPeeker([]byte{0xFA, 0x01})
	rd := newReader(p)

	ok, err := rd.consumeIfByte(p, 0xFA)
	if err != nil || !ok {
		t.Fatalf("consumeIfByte(0xFA) = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = rd.consumeIfByte(p, 0xFA)
	if err != nil || ok {
		t.Fatalf("consumeIfByte(0xFA) again = (%v, %v), want (false, nil)", ok, err)
	}

	b, err := rd.readU8()
	if err != nil || b != 0x01 {
		t.Errorf("cursor advanced incorrectly: readU8() = (%d, %v)", b, err)
	}
}
