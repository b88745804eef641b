// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/go-proto3/proto3rt/proto3"
)

// UnmarshalOptions is a configurable JSON unmarshaler.
type UnmarshalOptions struct {
	// DiscardUnknown is accepted for parity with the marshaler's options,
	// but has no effect: unknown JSON keys are always silently ignored,
	// never an error.
	DiscardUnknown bool
}

// Unmarshal parses JSON-encoded data into m using default options.
func Unmarshal(b []byte, m proto3.Message) error {
	return UnmarshalOptions{}.Unmarshal(b, m)
}

// Unmarshal parses JSON-encoded data into m.
func (o UnmarshalOptions) Unmarshal(b []byte, m proto3.Message) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("protojson: %w", err)
	}
	return o.unmarshalMessage(raw, m)
}

// jsonValueParser is implemented by well-known types with a bespoke scalar
// JSON form (Timestamp, Duration) rather than the usual field-keyed object.
type jsonValueParser interface {
	UnmarshalJSONValue(string) error
}

func (o UnmarshalOptions) unmarshalMessage(raw interface{}, m proto3.Message) error {
	if raw == nil {
		return nil
	}
	if jp, ok := m.(jsonValueParser); ok {
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("protojson: %T: expected JSON string, got %T", m, raw)
		}
		return jp.UnmarshalJSONValue(s)
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf("protojson: %T: expected JSON object, got %T", m, raw)
	}
	for key, val := range obj {
		if val == nil {
			// null leaves the field at its default.
			continue
		}
		jf, ok := findField(m, key)
		if !ok {
			// Unknown keys are ignored for forward compatibility.
			continue
		}
		if err := o.unmarshalField(m, jf, val); err != nil {
			return err
		}
	}
	return nil
}

func findField(m proto3.Message, key string) (proto3.JSONField, bool) {
	var found proto3.JSONField
	var ok bool
	proto3.RangeJSONFields(m, func(jf proto3.JSONField, _ reflect.Value, _ bool) bool {
		if sameField(key, jf.Name) {
			found, ok = jf, true
			return false
		}
		return true
	})
	return found, ok
}

func (o UnmarshalOptions) unmarshalField(m proto3.Message, jf proto3.JSONField, raw interface{}) error {
	if jf.OneofGroup != "" {
		return o.unmarshalOneofCase(m, jf, raw)
	}

	fv, ok := proto3.PlainFieldValue(m, jf.Name)
	if !ok {
		return fmt.Errorf("protojson: field %s: no such field", jf.Name)
	}

	switch {
	case jf.Kind == proto3.MapKind:
		return o.unmarshalMap(fv, jf, raw)
	case jf.Repeated:
		return o.unmarshalRepeated(fv, jf, raw)
	case jf.Wraps != proto3.InvalidKind:
		v, err := o.unmarshalScalar(raw, jf.Wraps, jf)
		if err != nil {
			return err
		}
		ptr := reflect.New(fv.Type().Elem())
		proto3.AssignScalar(ptr.Elem(), v)
		fv.Set(ptr)
		return nil
	case jf.Kind == proto3.MessageKind:
		sub := jf.NewMessage()
		if err := o.unmarshalMessage(raw, sub); err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(sub))
		return nil
	default:
		v, err := o.unmarshalScalar(raw, jf.Kind, jf)
		if err != nil {
			return err
		}
		proto3.AssignScalar(fv, v)
		return nil
	}
}

func (o UnmarshalOptions) unmarshalOneofCase(m proto3.Message, jf proto3.JSONField, raw interface{}) error {
	goType, ok := proto3.OneofCasePayloadType(m, jf.OneofGroup, jf.Name)
	if !ok {
		return fmt.Errorf("protojson: one-of case %s: not found in group %s", jf.Name, jf.OneofGroup)
	}
	if jf.Kind == proto3.MessageKind {
		sub := jf.NewMessage()
		if err := o.unmarshalMessage(raw, sub); err != nil {
			return err
		}
		proto3.SetOneofCase(m, jf.OneofGroup, jf.Name, reflect.ValueOf(sub))
		return nil
	}
	v, err := o.unmarshalScalar(raw, jf.Kind, jf)
	if err != nil {
		return err
	}
	payload := proto3.NewScalarValue(goType)
	proto3.AssignScalar(payload, v)
	proto3.SetOneofCase(m, jf.OneofGroup, jf.Name, payload)
	return nil
}

func (o UnmarshalOptions) unmarshalRepeated(fv reflect.Value, jf proto3.JSONField, raw interface{}) error {
	arr, ok := raw.([]interface{})
	if !ok {
		// A bare scalar on a repeated field is accepted as a one-element list.
		arr = []interface{}{raw}
	}
	out := reflect.MakeSlice(fv.Type(), 0, len(arr))
	for _, elem := range arr {
		if jf.Kind == proto3.MessageKind {
			sub := jf.NewMessage()
			if err := o.unmarshalMessage(elem, sub); err != nil {
				return err
			}
			out = reflect.Append(out, reflect.ValueOf(sub))
			continue
		}
		v, err := o.unmarshalScalar(elem, jf.Kind, jf)
		if err != nil {
			return err
		}
		ev := proto3.NewScalarValue(fv.Type().Elem())
		proto3.AssignScalar(ev, v)
		out = reflect.Append(out, ev)
	}
	fv.Set(out)
	return nil
}

func (o UnmarshalOptions) unmarshalMap(fv reflect.Value, jf proto3.JSONField, raw interface{}) error {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf("protojson: field %s: expected JSON object, got %T", jf.Name, raw)
	}
	m := reflect.MakeMapWithSize(fv.Type(), len(obj))
	keyType := fv.Type().Key()
	for keyStr, val := range obj {
		key, err := o.unmarshalMapKey(keyStr, jf.MapKey, keyType)
		if err != nil {
			return err
		}
		if jf.MapValue == proto3.MessageKind {
			sub := jf.NewMessage()
			if err := o.unmarshalMessage(val, sub); err != nil {
				return err
			}
			m.SetMapIndex(key, reflect.ValueOf(sub))
			continue
		}
		v, err := o.unmarshalScalar(val, jf.MapValue, jf)
		if err != nil {
			return err
		}
		ev := proto3.NewScalarValue(fv.Type().Elem())
		proto3.AssignScalar(ev, v)
		m.SetMapIndex(key, ev)
	}
	fv.Set(m)
	return nil
}

func (o UnmarshalOptions) unmarshalMapKey(s string, k proto3.Kind, keyType reflect.Type) (reflect.Value, error) {
	v, err := o.unmarshalScalar(s, k, proto3.JSONField{})
	if err != nil {
		return reflect.Value{}, err
	}
	kv := proto3.NewScalarValue(keyType)
	proto3.AssignScalar(kv, v)
	return kv, nil
}

// unmarshalScalar converts a decoded JSON value (string/float64/bool, as
// produced by encoding/json.Unmarshal into interface{}) into the Go native
// value the wire-side decoder would have produced: integer-strings parsed
// back to integers, base64 decoded to bytes, enum names resolved, float
// sentinels recognized.
func (o UnmarshalOptions) unmarshalScalar(raw interface{}, k proto3.Kind, jf proto3.JSONField) (interface{}, error) {
	switch k {
	case proto3.BoolKind:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("protojson: field %s: expected bool, got %T", jf.Name, raw)
		}
		return b, nil
	case proto3.Int32Kind, proto3.Sint32Kind, proto3.Sfixed32Kind:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case proto3.Int64Kind, proto3.Sint64Kind, proto3.Sfixed64Kind:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return n, nil
	case proto3.Uint32Kind, proto3.Fixed32Kind:
		n, err := toUint64(raw)
		if err != nil {
			return nil, err
		}
		return uint32(n), nil
	case proto3.Uint64Kind, proto3.Fixed64Kind:
		return toUint64(raw)
	case proto3.FloatKind:
		f, err := toFloat64(raw)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case proto3.DoubleKind:
		return toFloat64(raw)
	case proto3.StringKind:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("protojson: field %s: expected string, got %T", jf.Name, raw)
		}
		return s, nil
	case proto3.BytesKind:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("protojson: field %s: expected base64 string, got %T", jf.Name, raw)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("protojson: field %s: invalid base64: %w", jf.Name, err)
		}
		return b, nil
	case proto3.EnumKind:
		return unmarshalEnum(raw, jf)
	default:
		return nil, fmt.Errorf("protojson: field %s: unhandled scalar kind %s", jf.Name, k)
	}
}

func unmarshalEnum(raw interface{}, jf proto3.JSONField) (interface{}, error) {
	switch v := raw.(type) {
	case string:
		if jf.EnumValue == nil {
			return nil, fmt.Errorf("protojson: field %s: no enum value map", jf.Name)
		}
		n, ok := jf.EnumValue(v)
		if !ok {
			return nil, &proto3.UnknownEnumNameError{Field: jf.Name, Name: v}
		}
		return n, nil
	default:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	}
}

func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case string:
		return strconv.ParseInt(v, 10, 64)
	case float64:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("protojson: expected integer, got %T", raw)
	}
}

func toUint64(raw interface{}) (uint64, error) {
	switch v := raw.(type) {
	case string:
		return strconv.ParseUint(v, 10, 64)
	case float64:
		return uint64(v), nil
	case json.Number:
		n, err := v.Int64()
		return uint64(n), err
	default:
		return 0, fmt.Errorf("protojson: expected integer, got %T", raw)
	}
}

func toFloat64(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("protojson: expected number, got %T", raw)
	}
}
