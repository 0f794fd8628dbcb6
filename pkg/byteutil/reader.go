// Package byteutil provides bounds-checked little-endian reads over raw
// instruction and account payloads. Every reader returns (zero, false)
// rather than panicking on a short buffer; malformed wire data must never
// crash the decoder.
package byteutil

import "encoding/binary"

// ReadU8LE reads a single byte at offset.
func ReadU8LE(buf []byte, offset int) (uint8, bool) {
	if offset < 0 || offset+1 > len(buf) {
		return 0, false
	}
	return buf[offset], true
}

// ReadU16LE reads a little-endian uint16 at offset.
func ReadU16LE(buf []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+2 > len(buf) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(buf[offset:]), true
}

// ReadU32LE reads a little-endian uint32 at offset.
func ReadU32LE(buf []byte, offset int) (uint32, bool) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[offset:]), true
}

// ReadU64LE reads a little-endian uint64 at offset.
func ReadU64LE(buf []byte, offset int) (uint64, bool) {
	if offset < 0 || offset+8 > len(buf) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(buf[offset:]), true
}

// ReadI32LE reads a little-endian int32 at offset.
func ReadI32LE(buf []byte, offset int) (int32, bool) {
	v, ok := ReadU32LE(buf, offset)
	if !ok {
		return 0, false
	}
	return int32(v), true
}

// ReadU128LE reads a little-endian u128 at offset as (low64, high64).
func ReadU128LE(buf []byte, offset int) (lo uint64, hi uint64, ok bool) {
	if offset < 0 || offset+16 > len(buf) {
		return 0, 0, false
	}
	lo = binary.LittleEndian.Uint64(buf[offset:])
	hi = binary.LittleEndian.Uint64(buf[offset+8:])
	return lo, hi, true
}

// ReadOptionBool reads a Borsh-style Option<bool>: one presence byte, and
// when nonzero a second byte holding the boolean value. Returns
// (Some(value), true), (None, true), or (_, false) if the buffer is short
// for whichever case applies.
func ReadOptionBool(buf []byte, offset int) (value *bool, ok bool) {
	present, ok := ReadU8LE(buf, offset)
	if !ok {
		return nil, false
	}
	if present == 0 {
		return nil, true
	}
	b, ok := ReadU8LE(buf, offset+1)
	if !ok {
		return nil, false
	}
	v := b != 0
	return &v, true
}

// ReadPubkey reads a 32-byte key at offset, copying it out of buf.
func ReadPubkey(buf []byte, offset int) (key [32]byte, ok bool) {
	if offset < 0 || offset+32 > len(buf) {
		return key, false
	}
	copy(key[:], buf[offset:offset+32])
	return key, true
}
