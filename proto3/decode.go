// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import (
	"reflect"

	"github.com/go-proto3/proto3rt/internal/wire"
)

// UnmarshalOptions configures the unmarshaler. There are currently no
// options; the type exists so callers can write UnmarshalOptions{}.Unmarshal
// the same way they write MarshalOptions{}.Marshal.
type UnmarshalOptions struct{}

// Unmarshal parses the wire-format bytes in b into m, which must be a
// pointer to a freshly-constructed (or at least field-zeroed) message.
func Unmarshal(b []byte, m Message) error {
	return UnmarshalOptions{}.Unmarshal(b, m)
}

// Unmarshal parses the wire-format bytes in b into m.
func (o UnmarshalOptions) Unmarshal(b []byte, m Message) error {
	*m.protoWire() = true

	info := GetMessageInfo(m)
	val := messageValue(m)

	d := wire.NewDecoder(b)
	for {
		f, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		item, known := info.byTag[uint32(f.Number)]
		if !known {
			u := m.protoUnknown()
			*u = append(*u, f.Raw...)
			continue
		}

		switch {
		case item.field != nil:
			if err := o.decodeTopLevelField(val, item.field, f); err != nil {
				return err
			}
		default:
			if err := o.decodeOneofCase(val, item.oneof, item.ooCase, f); err != nil {
				return err
			}
		}
	}
}

func (o UnmarshalOptions) decodeTopLevelField(val reflect.Value, f *resolvedField, wf wire.Field) error {
	fv := fieldByIndex(val, f.index)

	switch {
	case f.Kind == MapKind:
		return o.decodeMapEntry(fv, f, wf)
	case f.Repeated:
		return o.decodeRepeatedElement(fv, f, wf)
	case f.Kind == MessageKind:
		return o.decodeMessageField(fv, f, wf)
	default:
		v, err := decodeScalarValue(wf, f.Kind, f.Name)
		if err != nil {
			return err
		}
		assignScalar(fv, v)
		return nil
	}
}

// decodeMessageField handles a non-repeated MessageKind field: a nested
// message (allocate and recurse) or a wrapper (decode the single tag-1
// scalar out of the inner buffer; absent => zero value, still "Some" since
// the wrapper record exists at all).
func (o UnmarshalOptions) decodeMessageField(fv reflect.Value, f *resolvedField, wf wire.Field) error {
	if f.Wraps != InvalidKind {
		var inner wire.Field
		d := wire.NewDecoder(wf.Bytes)
		for {
			ff, ok, err := d.Next()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if ff.Number == 1 {
				inner = ff
			}
		}
		v, err := decodeScalarValue(inner, f.Wraps, f.Name)
		if err != nil {
			return err
		}
		ptr := reflect.New(fv.Type().Elem())
		assignScalar(ptr.Elem(), v)
		fv.Set(ptr)
		return nil
	}

	sub := f.NewMessage()
	if err := o.Unmarshal(wf.Bytes, sub); err != nil {
		return err
	}
	fv.Set(reflect.ValueOf(sub))
	return nil
}

// decodeRepeatedElement appends one or more elements to a repeated field:
// a packed LEN record unpacks into many elements; any other wire type
// contributes exactly one.
func (o UnmarshalOptions) decodeRepeatedElement(fv reflect.Value, f *resolvedField, wf wire.Field) error {
	if f.Kind == MessageKind {
		sub := f.NewMessage()
		if err := o.Unmarshal(wf.Bytes, sub); err != nil {
			return err
		}
		fv.Set(reflect.Append(fv, reflect.ValueOf(sub)))
		return nil
	}

	if f.Kind.Packable() && wf.Type == wire.BytesType {
		return decodePacked(fv, f, wf.Bytes)
	}

	v, err := decodeScalarValue(wf, f.Kind, f.Name)
	if err != nil {
		return err
	}
	elem := reflect.New(fv.Type().Elem()).Elem()
	assignScalar(elem, v)
	fv.Set(reflect.Append(fv, elem))
	return nil
}

func decodePacked(fv reflect.Value, f *resolvedField, buf []byte) error {
	wt := f.Kind.WireType()
	for len(buf) > 0 {
		var synth wire.Field
		var n int
		var err error
		switch wt {
		case wire.VarintType:
			synth.Varint, n, err = wire.ConsumeVarint(buf)
		case wire.Fixed32Type:
			var v uint32
			v, n, err = wire.ConsumeFixed32(buf)
			synth.Fixed = uint64(v)
		case wire.Fixed64Type:
			synth.Fixed, n, err = wire.ConsumeFixed64(buf)
		}
		if err != nil {
			return err
		}
		buf = buf[n:]

		v, err := decodeScalarValue(synth, f.Kind, f.Name)
		if err != nil {
			return err
		}
		elem := reflect.New(fv.Type().Elem()).Elem()
		assignScalar(elem, v)
		fv.Set(reflect.Append(fv, elem))
	}
	return nil
}

// decodeMapEntry parses a single `key=1, value=2` entry submessage and
// upserts it into fv's Go map (allocating the map on first use). Last write
// wins on duplicate keys, matching Protobuf map semantics.
func (o UnmarshalOptions) decodeMapEntry(fv reflect.Value, f *resolvedField, wf wire.Field) error {
	if fv.IsNil() {
		fv.Set(reflect.MakeMap(fv.Type()))
	}

	var keyField, valField wire.Field
	var haveKey, haveVal bool
	d := wire.NewDecoder(wf.Bytes)
	for {
		ff, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch ff.Number {
		case 1:
			keyField, haveKey = ff, true
		case 2:
			valField, haveVal = ff, true
		}
	}

	keyType := fv.Type().Key()
	key := reflect.New(keyType).Elem()
	if haveKey {
		kv, err := decodeScalarValue(keyField, f.MapKey, f.Name+".key")
		if err != nil {
			return err
		}
		assignScalar(key, kv)
	}

	valType := fv.Type().Elem()
	val := reflect.New(valType).Elem()
	if f.MapValue == MessageKind {
		sub := f.NewMessage()
		if haveVal {
			if err := o.Unmarshal(valField.Bytes, sub); err != nil {
				return err
			}
		}
		val.Set(reflect.ValueOf(sub))
	} else if haveVal {
		vv, err := decodeScalarValue(valField, f.MapValue, f.Name+".value")
		if err != nil {
			return err
		}
		assignScalar(val, vv)
	}

	fv.SetMapIndex(key, val)
	return nil
}

// decodeOneofCase parses the payload for one case of a one-of group and
// selects it, discarding whichever case (if any) was previously selected:
// the last field of the group encountered wins.
func (o UnmarshalOptions) decodeOneofCase(val reflect.Value, ro *resolvedOneof, rc *resolvedCase, wf wire.Field) error {
	if rc.Kind == MessageKind {
		sub := rc.NewMessage()
		if err := o.Unmarshal(wf.Bytes, sub); err != nil {
			return err
		}
		ro.set(val, rc.Name, reflect.ValueOf(sub))
		return nil
	}
	v, err := decodeScalarValue(wf, rc.Kind, rc.Name)
	if err != nil {
		return err
	}
	payload := reflect.New(payloadGoType(rc)).Elem()
	assignScalar(payload, v)
	ro.set(val, rc.Name, payload)
	return nil
}

// payloadGoType returns the Go type of a case's single payload field, read
// off the wrapper struct so assignScalar targets the right concrete type
// (e.g. a named enum type, not bare int32).
func payloadGoType(rc *resolvedCase) reflect.Type {
	return rc.wrapType.Elem().Field(0).Type
}
