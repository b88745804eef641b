// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import (
	"reflect"
	"sort"

	"github.com/go-proto3/proto3rt/internal/wire"
)

// MarshalOptions configures the marshaler. There is no AllowPartial knob:
// proto3 has no required fields.
type MarshalOptions struct {
	// Deterministic causes map entries to be emitted sorted by key, so that
	// repeated marshaling of an equal message produces identical bytes.
	// Without it, map iteration order makes re-encoding unstable.
	Deterministic bool
}

// Marshal returns the wire-format encoding of m using default options.
func Marshal(m Message) ([]byte, error) {
	return MarshalOptions{}.Marshal(m)
}

// Marshal returns the wire-format encoding of m.
func (o MarshalOptions) Marshal(m Message) ([]byte, error) {
	return o.MarshalAppend(nil, m)
}

// MarshalAppend appends the wire-format encoding of m to b, returning the
// result.
func (o MarshalOptions) MarshalAppend(b []byte, m Message) ([]byte, error) {
	info := GetMessageInfo(m)
	val := messageValue(m)

	for _, item := range info.order {
		var err error
		switch {
		case item.field != nil:
			b, err = o.encodeTopLevelField(b, val, item.field)
		default:
			b, err = o.encodeOneofCase(b, val, item.oneof, item.ooCase)
		}
		if err != nil {
			return nil, err
		}
	}
	b = append(b, *m.protoUnknown()...)
	return b, nil
}

func (o MarshalOptions) encodeTopLevelField(b []byte, val reflect.Value, f *resolvedField) ([]byte, error) {
	fv := fieldByIndex(val, f.index)
	num := wire.Number(f.Tag)

	switch {
	case f.Kind == MapKind:
		return o.encodeMap(b, num, f, fv)
	case f.Repeated:
		return o.encodeRepeated(b, num, f, fv)
	case f.Kind == MessageKind:
		return o.encodeMessageField(b, num, f, fv)
	default:
		if zeroCompare(fv) {
			return b, nil
		}
		b = wire.AppendTag(b, num, f.Kind.WireType())
		return encodeScalarValue(b, f.Kind, fv)
	}
}

// encodeMessageField handles a non-repeated MessageKind field: a nested
// message (nil pointer => unset, skip; non-nil => always emit, even empty)
// or a wrapper field (nil pointer => absent, skip; non-nil => emit even zero).
func (o MarshalOptions) encodeMessageField(b []byte, num wire.Number, f *resolvedField, fv reflect.Value) ([]byte, error) {
	if fv.IsNil() {
		return b, nil
	}
	b = wire.AppendTag(b, num, wire.BytesType)
	var payload []byte
	var err error
	if f.Wraps != InvalidKind {
		payload, err = encodeScalarValue(wire.AppendTag(nil, 1, f.Wraps.WireType()), f.Wraps, fv.Elem())
	} else {
		sub, ok := fv.Interface().(Message)
		if !ok {
			return nil, &SchemaViolationError{Reason: "field " + f.Name + ": not a Message"}
		}
		payload, err = o.MarshalAppend(nil, sub)
	}
	if err != nil {
		return nil, err
	}
	return wire.AppendBytes(b, payload), nil
}

func (o MarshalOptions) encodeRepeated(b []byte, num wire.Number, f *resolvedField, fv reflect.Value) ([]byte, error) {
	n := fv.Len()
	if n == 0 {
		return b, nil
	}
	if f.Kind.Packable() {
		var payload []byte
		var err error
		for i := 0; i < n; i++ {
			payload, err = encodeScalarValue(payload, f.Kind, fv.Index(i))
			if err != nil {
				return nil, err
			}
		}
		b = wire.AppendTag(b, num, wire.BytesType)
		return wire.AppendBytes(b, payload), nil
	}
	for i := 0; i < n; i++ {
		elem := fv.Index(i)
		var err error
		switch f.Kind {
		case MessageKind:
			b, err = o.encodeMessageField(b, num, f, elem)
		default:
			b = wire.AppendTag(b, num, f.Kind.WireType())
			b, err = encodeScalarValue(b, f.Kind, elem)
		}
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

// encodeMap emits each map entry as a length-delimited submessage with the
// key at tag 1 and the value at tag 2.
func (o MarshalOptions) encodeMap(b []byte, num wire.Number, f *resolvedField, fv reflect.Value) ([]byte, error) {
	if fv.Len() == 0 {
		return b, nil
	}
	keys := fv.MapKeys()
	if o.Deterministic {
		sortMapKeys(keys)
	}
	for _, k := range keys {
		entry, err := encodeScalarValue(wire.AppendTag(nil, 1, f.MapKey.WireType()), f.MapKey, k)
		if err != nil {
			return nil, err
		}
		v := fv.MapIndex(k)
		entry = wire.AppendTag(entry, 2, f.MapValue.WireType())
		if f.MapValue == MessageKind {
			sub, ok := v.Interface().(Message)
			if !ok {
				return nil, &SchemaViolationError{Reason: "map field " + f.Name + ": value not a Message"}
			}
			payload, err := o.MarshalAppend(nil, sub)
			if err != nil {
				return nil, err
			}
			entry = wire.AppendBytes(entry, payload)
		} else {
			entry, err = encodeScalarValue(entry, f.MapValue, v)
			if err != nil {
				return nil, err
			}
		}
		b = wire.AppendTag(b, num, wire.BytesType)
		b = wire.AppendBytes(b, entry)
	}
	return b, nil
}

// encodeOneofCase emits the currently-selected case of a one-of group, if
// any. Selected fields always serialize, even at their zero value;
// non-selected siblings never appear on the wire at all because they have no
// storage of their own, the group's single interface field holds only the
// active case.
func (o MarshalOptions) encodeOneofCase(b []byte, val reflect.Value, ro *resolvedOneof, rc *resolvedCase) ([]byte, error) {
	name, payload, ok := ro.get(val)
	if !ok || name != rc.Name {
		return b, nil
	}
	num := wire.Number(rc.Tag)
	if rc.Kind == MessageKind {
		sub, ok := payload.Interface().(Message)
		if !ok {
			return nil, &SchemaViolationError{Reason: "oneof case " + rc.Name + ": not a Message"}
		}
		sub2, err := o.MarshalAppend(nil, sub)
		if err != nil {
			return nil, err
		}
		b = wire.AppendTag(b, num, wire.BytesType)
		return wire.AppendBytes(b, sub2), nil
	}
	b = wire.AppendTag(b, num, rc.Kind.WireType())
	return encodeScalarValue(b, rc.Kind, payload)
}

func sortMapKeys(keys []reflect.Value) {
	if len(keys) == 0 {
		return
	}
	switch keys[0].Kind() {
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	case reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.Uint32, reflect.Uint64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Uint() < keys[j].Uint() })
	case reflect.Bool:
		sort.Slice(keys, func(i, j int) bool { return !keys[i].Bool() && keys[j].Bool() })
	}
}
