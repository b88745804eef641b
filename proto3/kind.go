// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proto3 is a reflective Protobuf 3 message runtime: given a field
// table supplied by a generated message type, it marshals and unmarshals the
// Protobuf binary wire format, preserving unknown fields and one-of/wrapper
// presence semantics.
package proto3

import "github.com/go-proto3/proto3rt/internal/wire"

// Kind enumerates the declared Protobuf scalar/structural types a field can
// carry, independent of wire representation. Dispatch during encode and
// decode switches on the declared Kind, never on the wire type alone (the
// wire type is ambiguous: varint covers eight declared types).
type Kind uint8

const (
	InvalidKind Kind = iota
	BoolKind
	Int32Kind
	Int64Kind
	Uint32Kind
	Uint64Kind
	Sint32Kind
	Sint64Kind
	Fixed32Kind
	Fixed64Kind
	Sfixed32Kind
	Sfixed64Kind
	FloatKind
	DoubleKind
	StringKind
	BytesKind
	EnumKind
	MessageKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case Int32Kind:
		return "int32"
	case Int64Kind:
		return "int64"
	case Uint32Kind:
		return "uint32"
	case Uint64Kind:
		return "uint64"
	case Sint32Kind:
		return "sint32"
	case Sint64Kind:
		return "sint64"
	case Fixed32Kind:
		return "fixed32"
	case Fixed64Kind:
		return "fixed64"
	case Sfixed32Kind:
		return "sfixed32"
	case Sfixed64Kind:
		return "sfixed64"
	case FloatKind:
		return "float"
	case DoubleKind:
		return "double"
	case StringKind:
		return "string"
	case BytesKind:
		return "bytes"
	case EnumKind:
		return "enum"
	case MessageKind:
		return "message"
	case MapKind:
		return "map"
	default:
		return "invalid"
	}
}

// WireType reports the wire type used to encode a singular value of kind k.
func (k Kind) WireType() wire.Type {
	switch k {
	case Fixed64Kind, Sfixed64Kind, DoubleKind:
		return wire.Fixed64Type
	case Fixed32Kind, Sfixed32Kind, FloatKind:
		return wire.Fixed32Type
	case StringKind, BytesKind, MessageKind, MapKind:
		return wire.BytesType
	default:
		// Bool, Int32, Int64, Uint32, Uint64, Sint32, Sint64, Enum.
		return wire.VarintType
	}
}

// Packable reports whether repeated fields of kind k may use the packed
// (single LEN record) repeated encoding. Messages, strings, bytes, and maps
// are never packable.
func (k Kind) Packable() bool {
	switch k {
	case StringKind, BytesKind, MessageKind, MapKind:
		return false
	default:
		return true
	}
}

// IsVarint reports whether k's singular wire type is VARINT.
func (k Kind) IsVarint() bool { return k.WireType() == wire.VarintType }

// Is64Bit reports whether k's declared width is 64 bits.
func (k Kind) Is64Bit() bool {
	switch k {
	case Int64Kind, Uint64Kind, Sint64Kind, Fixed64Kind, Sfixed64Kind, DoubleKind:
		return true
	default:
		return false
	}
}
