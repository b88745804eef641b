// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import (
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/go-proto3/proto3rt/internal/wire"
)

// encodeScalarValue appends the wire payload (no tag) for a single scalar
// value of kind k, read out of v. It never handles MessageKind or MapKind,
// which recurse through encodeMessageField / encodeMap instead.
func encodeScalarValue(b []byte, k Kind, v reflect.Value) ([]byte, error) {
	switch k {
	case BoolKind:
		if v.Bool() {
			return wire.AppendVarint(b, 1), nil
		}
		return wire.AppendVarint(b, 0), nil
	case Int32Kind, Int64Kind:
		// Two's-complement widen to 64 bits; int64(v.Int()) already performs
		// this for an int32-kind reflect.Value since Value.Int() sign-extends.
		return wire.AppendVarint(b, uint64(v.Int())), nil
	case Uint32Kind, Uint64Kind:
		return wire.AppendVarint(b, v.Uint()), nil
	case Sint32Kind:
		return wire.AppendVarint(b, uint64(wire.EncodeZigZag32(int32(v.Int())))), nil
	case Sint64Kind:
		return wire.AppendVarint(b, wire.EncodeZigZag64(v.Int())), nil
	case Fixed32Kind:
		return wire.AppendFixed32(b, uint32(v.Uint())), nil
	case Sfixed32Kind:
		return wire.AppendFixed32(b, uint32(v.Int())), nil
	case FloatKind:
		return wire.AppendFixed32(b, math.Float32bits(float32(v.Float()))), nil
	case Fixed64Kind:
		return wire.AppendFixed64(b, v.Uint()), nil
	case Sfixed64Kind:
		return wire.AppendFixed64(b, uint64(v.Int())), nil
	case DoubleKind:
		return wire.AppendFixed64(b, math.Float64bits(v.Float())), nil
	case StringKind:
		return wire.AppendBytes(b, []byte(v.String())), nil
	case BytesKind:
		return wire.AppendBytes(b, v.Bytes()), nil
	case EnumKind:
		return wire.AppendVarint(b, uint64(v.Int())), nil
	default:
		panic(&SchemaViolationError{Reason: "encodeScalarValue: unhandled kind " + k.String()})
	}
}

// decodeScalarValue postprocesses a raw wire.Field into the Go value for a
// declared scalar kind. The result is returned as interface{} so that both
// slice-append and direct field-assignment callers can box it via
// assignScalar.
func decodeScalarValue(f wire.Field, k Kind, fieldName string) (interface{}, error) {
	switch k {
	case BoolKind:
		return f.Varint != 0, nil
	case Int32Kind:
		return int32(f.Varint), nil
	case Int64Kind:
		return int64(f.Varint), nil
	case Uint32Kind:
		return uint32(f.Varint), nil
	case Uint64Kind:
		return f.Varint, nil
	case Sint32Kind:
		return wire.DecodeZigZag32(uint32(f.Varint)), nil
	case Sint64Kind:
		return wire.DecodeZigZag64(f.Varint), nil
	case Fixed32Kind:
		return uint32(f.Fixed), nil
	case Sfixed32Kind:
		return int32(f.Fixed), nil
	case FloatKind:
		return math.Float32frombits(uint32(f.Fixed)), nil
	case Fixed64Kind:
		return f.Fixed, nil
	case Sfixed64Kind:
		return int64(f.Fixed), nil
	case DoubleKind:
		return math.Float64frombits(f.Fixed), nil
	case StringKind:
		if !utf8.Valid(f.Bytes) {
			return nil, &InvalidUTF8Error{Field: fieldName}
		}
		return string(f.Bytes), nil
	case BytesKind:
		out := make([]byte, len(f.Bytes))
		copy(out, f.Bytes)
		return out, nil
	case EnumKind:
		return int32(f.Varint), nil
	default:
		panic(&SchemaViolationError{Reason: "decodeScalarValue: unhandled kind " + k.String()})
	}
}

// assignScalar stores a decoded scalar value (as produced by
// decodeScalarValue) into dst, converting between same-family Go kinds (e.g.
// a named enum type whose underlying kind is int32).
func assignScalar(dst reflect.Value, value interface{}) {
	switch dst.Kind() {
	case reflect.Bool:
		dst.SetBool(value.(bool))
	case reflect.Int32, reflect.Int64, reflect.Int:
		dst.SetInt(toInt64(value))
	case reflect.Uint32, reflect.Uint64, reflect.Uint:
		dst.SetUint(toUint64(value))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(toFloat64(value))
	case reflect.String:
		dst.SetString(value.(string))
	case reflect.Slice:
		dst.SetBytes(value.([]byte))
	default:
		panic(&SchemaViolationError{Reason: "assignScalar: unsupported Go kind " + dst.Kind().String()})
	}
}

func toInt64(v interface{}) int64 {
	switch x := v.(type) {
	case int32:
		return int64(x)
	case int64:
		return x
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	default:
		panic(&SchemaViolationError{Reason: "toInt64: unexpected type"})
	}
}

func toUint64(v interface{}) uint64 {
	switch x := v.(type) {
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case int32:
		return uint64(x)
	case int64:
		return uint64(x)
	default:
		panic(&SchemaViolationError{Reason: "toUint64: unexpected type"})
	}
}

func toFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		panic(&SchemaViolationError{Reason: "toFloat64: unexpected type"})
	}
}

// zeroCompare reports whether the scalar value held in v equals its declared
// default, the emission test for non-message, non-selected-oneof fields.
// NaN counts as non-zero (v.IsZero() already gets this right for floats
// since NaN's bit pattern is never the all-zero pattern).
func zeroCompare(v reflect.Value) bool {
	return v.IsZero()
}
