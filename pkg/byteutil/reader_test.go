package byteutil

import (
	"encoding/binary"
	"testing"
)

func TestReadU64LEBounds(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, 123456789)

	v, ok := ReadU64LE(buf, 0)
	if !ok || v != 123456789 {
		t.Fatalf("got (%d, %v), want (123456789, true)", v, ok)
	}

	if _, ok := ReadU64LE(buf, 1); ok {
		t.Fatalf("expected short read to fail")
	}
	if _, ok := ReadU64LE(buf, -1); ok {
		t.Fatalf("expected negative offset to fail")
	}
}

func TestReadersRejectOffsetsAtOrPastLen(t *testing.T) {
	buf := make([]byte, 4)
	for offset := 0; offset <= len(buf)+4; offset++ {
		_, okU32 := ReadU32LE(buf, offset)
		wantOK := offset+4 <= len(buf)
		if okU32 != wantOK {
			t.Fatalf("ReadU32LE(offset=%d): got ok=%v, want %v", offset, okU32, wantOK)
		}
	}
}

func TestReadOptionBool(t *testing.T) {
	// None: single zero byte.
	v, ok := ReadOptionBool([]byte{0}, 0)
	if !ok || v != nil {
		t.Fatalf("expected None, got %v %v", v, ok)
	}

	// Some(true)
	v, ok = ReadOptionBool([]byte{1, 1}, 0)
	if !ok || v == nil || !*v {
		t.Fatalf("expected Some(true), got %v %v", v, ok)
	}

	// Some(false)
	v, ok = ReadOptionBool([]byte{1, 0}, 0)
	if !ok || v == nil || *v {
		t.Fatalf("expected Some(false), got %v %v", v, ok)
	}

	// Truncated Some
	if _, ok := ReadOptionBool([]byte{1}, 0); ok {
		t.Fatalf("expected truncated Some to fail")
	}

	// Offset past buffer
	if _, ok := ReadOptionBool([]byte{0}, 1); ok {
		t.Fatalf("expected out-of-range offset to fail")
	}
}

func TestReadPubkeyPadding(t *testing.T) {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = byte(i)
	}
	key, ok := ReadPubkey(buf, 0)
	if !ok {
		t.Fatalf("expected ok")
	}
	for i := range key {
		if key[i] != byte(i) {
			t.Fatalf("byte %d: got %d, want %d", i, key[i], i)
		}
	}

	if _, ok := ReadPubkey(buf, 1); ok {
		t.Fatalf("expected short read to fail")
	}
}

func TestReadU128LE(t *testing.T) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:], 1)
	binary.LittleEndian.PutUint64(buf[8:], 2)

	lo, hi, ok := ReadU128LE(buf, 0)
	if !ok || lo != 1 || hi != 2 {
		t.Fatalf("got (%d, %d, %v)", lo, hi, ok)
	}
	if _, _, ok := ReadU128LE(buf, 1); ok {
		t.Fatalf("expected short read to fail")
	}
}
