// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protojson implements the canonical Protobuf JSON dialect for
// package proto3 messages: camelCase field names, 64-bit integers as decimal
// strings, bytes as base64, enums by member name, "NaN"/"Infinity" float
// sentinels, and RFC-3339 / "<decimal>s" forms for Timestamp and Duration.
// It walks messages through proto3.RangeJSONFields rather than a separate
// reflection layer.
package protojson

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/go-proto3/proto3rt/proto3"
)

// MarshalOptions is a configurable JSON marshaler.
type MarshalOptions struct {
	// Indent, if non-empty, causes objects and arrays to be pretty-printed
	// using it for each indentation level.
	Indent string

	// EmitUnpopulated causes fields at their declared zero value to be
	// emitted rather than omitted.
	EmitUnpopulated bool

	// UseProtoNames selects snake_case object keys (the field's declared
	// name) instead of the default lowerCamelCase.
	UseProtoNames bool
}

// Marshal renders m as canonical JSON using default options.
func Marshal(m proto3.Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(m)
}

// Marshal renders m as canonical JSON.
func (o MarshalOptions) Marshal(m proto3.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := o.marshalMessage(&buf, m); err != nil {
		return nil, err
	}
	if o.Indent == "" {
		return buf.Bytes(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", o.Indent); err != nil {
		return buf.Bytes(), nil
	}
	return pretty.Bytes(), nil
}

// jsonFormatter is implemented by the well-known types that have a bespoke
// JSON scalar form instead of the usual field-by-field object (Timestamp,
// Duration).
type jsonFormatter interface {
	FormatJSON() (string, error)
}

func (o MarshalOptions) marshalMessage(buf *bytes.Buffer, m proto3.Message) error {
	if jf, ok := m.(jsonFormatter); ok {
		s, err := jf.FormatJSON()
		if err != nil {
			return err
		}
		writeJSONString(buf, s)
		return nil
	}

	buf.WriteByte('{')
	first := true
	var ferr error
	proto3.RangeJSONFields(m, func(jf proto3.JSONField, fv reflect.Value, present bool) bool {
		emit, skip := o.shouldEmit(jf, fv, present)
		if skip {
			return true
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		name := jsonName(jf.Name)
		if o.UseProtoNames {
			name = protoName(jf.Name)
		}
		writeJSONString(buf, name)
		buf.WriteByte(':')
		if err := o.marshalValue(buf, emit, jf.FieldDescriptor); err != nil {
			ferr = err
			return false
		}
		return true
	})
	buf.WriteByte('}')
	return ferr
}

// shouldEmit applies the default-omission rule: skip a non-selected,
// default-valued field unless EmitUnpopulated is set; always emit the
// current selection of a one-of group, even at its zero value. The Repeated
// check precedes the MessageKind check (same ordering as marshalValue) so
// repeated message fields are judged by length, not slice nil-ness.
func (o MarshalOptions) shouldEmit(jf proto3.JSONField, fv reflect.Value, present bool) (value reflect.Value, skip bool) {
	if jf.OneofGroup != "" {
		if !present {
			return reflect.Value{}, true
		}
		return fv, false
	}
	if jf.Kind == proto3.MapKind || jf.Repeated {
		if fv.Len() == 0 && !o.EmitUnpopulated {
			return reflect.Value{}, true
		}
		return fv, false
	}
	if jf.Wraps != proto3.InvalidKind || jf.Kind == proto3.MessageKind {
		if fv.IsNil() && !o.EmitUnpopulated {
			return reflect.Value{}, true
		}
		return fv, false
	}
	if proto3.ZeroCompare(fv) && !o.EmitUnpopulated {
		return reflect.Value{}, true
	}
	return fv, false
}

func (o MarshalOptions) marshalValue(buf *bytes.Buffer, v reflect.Value, fd proto3.FieldDescriptor) error {
	switch {
	case fd.Kind == proto3.MapKind:
		return o.marshalMap(buf, v, fd)
	case fd.Repeated:
		return o.marshalRepeated(buf, v, fd)
	case fd.Wraps != proto3.InvalidKind:
		// Reached with a nil pointer only under EmitUnpopulated.
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return o.marshalScalar(buf, v.Elem(), fd.Wraps, fd)
	case fd.Kind == proto3.MessageKind:
		if v.IsNil() {
			buf.WriteString("null")
			return nil
		}
		sub, ok := v.Interface().(proto3.Message)
		if !ok {
			return fmt.Errorf("protojson: field %s: not a Message", fd.Name)
		}
		return o.marshalMessage(buf, sub)
	default:
		return o.marshalScalar(buf, v, fd.Kind, fd)
	}
}

func (o MarshalOptions) marshalRepeated(buf *bytes.Buffer, v reflect.Value, fd proto3.FieldDescriptor) error {
	buf.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		elem := v.Index(i)
		var err error
		if fd.Kind == proto3.MessageKind {
			sub, ok := elem.Interface().(proto3.Message)
			if !ok {
				return fmt.Errorf("protojson: field %s: not a Message", fd.Name)
			}
			err = o.marshalMessage(buf, sub)
		} else {
			err = o.marshalScalar(buf, elem, fd.Kind, fd)
		}
		if err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func (o MarshalOptions) marshalMap(buf *bytes.Buffer, v reflect.Value, fd proto3.FieldDescriptor) error {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		// Map keys are always JSON strings, even for integer/bool key types.
		writeJSONString(buf, fmt.Sprint(k.Interface()))
		buf.WriteByte(':')
		val := v.MapIndex(k)
		var err error
		if fd.MapValue == proto3.MessageKind {
			sub, ok := val.Interface().(proto3.Message)
			if !ok {
				return fmt.Errorf("protojson: field %s: map value not a Message", fd.Name)
			}
			err = o.marshalMessage(buf, sub)
		} else {
			err = o.marshalScalar(buf, val, fd.MapValue, fd)
		}
		if err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func (o MarshalOptions) marshalScalar(buf *bytes.Buffer, v reflect.Value, k proto3.Kind, fd proto3.FieldDescriptor) error {
	switch k {
	case proto3.BoolKind:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case proto3.Int32Kind, proto3.Sint32Kind, proto3.Sfixed32Kind:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case proto3.Uint32Kind, proto3.Fixed32Kind:
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case proto3.Int64Kind, proto3.Sint64Kind, proto3.Sfixed64Kind:
		// 64-bit integers serialize as decimal strings to avoid JSON-number
		// precision loss.
		writeJSONString(buf, strconv.FormatInt(v.Int(), 10))
	case proto3.Uint64Kind, proto3.Fixed64Kind:
		writeJSONString(buf, strconv.FormatUint(v.Uint(), 10))
	case proto3.FloatKind:
		writeJSONFloat(buf, v.Float(), 32)
	case proto3.DoubleKind:
		writeJSONFloat(buf, v.Float(), 64)
	case proto3.StringKind:
		writeJSONString(buf, v.String())
	case proto3.BytesKind:
		writeJSONString(buf, base64.StdEncoding.EncodeToString(v.Bytes()))
	case proto3.EnumKind:
		return o.marshalEnum(buf, v, fd)
	default:
		return fmt.Errorf("protojson: field %s: unhandled scalar kind %s", fd.Name, k)
	}
	return nil
}

// marshalEnum renders an enum value by member name, falling back to the
// bare integer if the value has no registered name (an unrecognized enum
// value received over the wire is legal; only an unknown name on the
// decoding side is an error).
func (o MarshalOptions) marshalEnum(buf *bytes.Buffer, v reflect.Value, fd proto3.FieldDescriptor) error {
	n := int32(v.Int())
	if fd.EnumName != nil {
		if name, ok := fd.EnumName(n); ok {
			writeJSONString(buf, name)
			return nil
		}
	}
	buf.WriteString(strconv.FormatInt(int64(n), 10))
	return nil
}

func writeJSONFloat(buf *bytes.Buffer, f float64, bitSize int) {
	switch {
	case math.IsNaN(f):
		buf.WriteString(`"NaN"`)
	case math.IsInf(f, 1):
		buf.WriteString(`"Infinity"`)
	case math.IsInf(f, -1):
		buf.WriteString(`"-Infinity"`)
	default:
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, bitSize))
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
