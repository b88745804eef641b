// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire implements the low-level encoding and decoding primitives of
// the Protobuf 3 wire format: varints, zig-zag transforms, fixed-width
// packing, and tag (field number + wire type) headers.
//
// Everything here is a pure function over byte slices; there is no notion of
// a message or a schema. Higher layers (package proto3) dispatch to these
// routines once they know a field's declared kind.
package wire

import "fmt"

// Number is a field number (tag), valid in the range [1, 2^29-1].
type Number uint32

// Type is the 3-bit wire type carried in the low bits of a tag.
type Type uint8

const (
	VarintType  Type = 0
	Fixed64Type Type = 1
	BytesType   Type = 2 // length-delimited (LEN)
	// StartGroupType and EndGroupType (3, 4) are deprecated/reserved and are
	// never produced; encountering them on the wire is an UnsupportedWireType
	// error (proto3 has no groups).
	StartGroupType Type = 3
	EndGroupType   Type = 4
	Fixed32Type    Type = 5
)

func (t Type) String() string {
	switch t {
	case VarintType:
		return "varint"
	case Fixed64Type:
		return "fixed64"
	case BytesType:
		return "bytes"
	case StartGroupType:
		return "start_group"
	case EndGroupType:
		return "end_group"
	case Fixed32Type:
		return "fixed32"
	default:
		return fmt.Sprintf("wire_type(%d)", uint8(t))
	}
}

// AppendTag appends the varint-encoded field header (num<<3 | typ).
func AppendTag(b []byte, num Number, typ Type) []byte {
	return AppendVarint(b, uint64(num)<<3|uint64(typ))
}

// SizeTag reports the number of bytes AppendTag would append.
func SizeTag(num Number) int {
	return SizeVarint(uint64(num) << 3)
}

// ConsumeTag parses a field header off the front of b, returning the field
// number, wire type, and number of bytes consumed.
func ConsumeTag(b []byte) (num Number, typ Type, n int, err error) {
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, 0, err
	}
	num = Number(v >> 3)
	typ = Type(v & 7)
	return num, typ, n, nil
}

// AppendVarint appends v to b using the LEB128-style Protobuf varint
// encoding: 7 data bits per byte, low-order first, continuation bit set on
// every byte but the last.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// SizeVarint reports the number of bytes AppendVarint would append.
func SizeVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// ConsumeVarint decodes a varint from the front of b, returning the value and
// the number of bytes consumed. It fails with ErrMalformedVarint once 10
// bytes have been read without finding a terminator (shift >= 64).
func ConsumeVarint(b []byte) (v uint64, n int, err error) {
	for shift := uint(0); shift < 64; shift += 7 {
		if n >= len(b) {
			return 0, 0, ErrTruncated
		}
		c := b[n]
		n++
		v |= uint64(c&0x7f) << shift
		if c < 0x80 {
			return v, n, nil
		}
	}
	return 0, 0, ErrMalformedVarint
}

// EncodeZigZag32 maps a signed 32-bit integer to an unsigned one such that
// small-magnitude values (positive or negative) stay small after varint
// encoding. Used for the sint32 wire representation.
func EncodeZigZag32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// DecodeZigZag32 is the inverse of EncodeZigZag32.
func DecodeZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// EncodeZigZag64 is the 64-bit form of EncodeZigZag32, for sint64.
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// DecodeZigZag64 is the inverse of EncodeZigZag64.
func DecodeZigZag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// AppendFixed32 appends v as 4 little-endian bytes (fixed32/sfixed32/float).
func AppendFixed32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// ConsumeFixed32 reads 4 little-endian bytes off the front of b.
func ConsumeFixed32(b []byte) (v uint32, n int, err error) {
	if len(b) < 4 {
		return 0, 0, ErrTruncated
	}
	v = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return v, 4, nil
}

// AppendFixed64 appends v as 8 little-endian bytes (fixed64/sfixed64/double).
func AppendFixed64(b []byte, v uint64) []byte {
	return append(b,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// ConsumeFixed64 reads 8 little-endian bytes off the front of b.
func ConsumeFixed64(b []byte) (v uint64, n int, err error) {
	if len(b) < 8 {
		return 0, 0, ErrTruncated
	}
	v = uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	return v, 8, nil
}

// AppendBytes appends v as a varint length followed by its raw bytes
// (the LEN wire-type payload used for strings, byte fields, and submessages).
func AppendBytes(b []byte, v []byte) []byte {
	b = AppendVarint(b, uint64(len(v)))
	return append(b, v...)
}

// ConsumeBytes reads a varint length followed by that many raw bytes.
// The returned slice aliases b; callers that retain it past b's lifetime must
// copy it themselves.
func ConsumeBytes(b []byte) (v []byte, n int, err error) {
	size, n, err := ConsumeVarint(b)
	if err != nil {
		return nil, 0, err
	}
	if size > uint64(len(b)-n) {
		return nil, 0, ErrTruncated
	}
	end := n + int(size)
	return b[n:end], end, nil
}
