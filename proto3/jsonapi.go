// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import "reflect"

// JSONField is the information package protojson needs about one
// JSON-visible field of a message: either a plain field, or an individual
// one-of case (protobuf's JSON mapping surfaces each one-of case as its own
// optional field rather than nesting it under the group name).
type JSONField struct {
	FieldDescriptor
	OneofGroup string // "" unless this is a one-of case
}

// RangeJSONFields walks every JSON-visible field of m in canonical tag
// order, calling fn with the field's descriptor, its current reflect.Value
// (settable, since it is addressed through m), and whether it is "present":
// always true for plain fields, true only for the currently-selected case of
// a one-of group otherwise. fn returning false stops iteration early (so
// callers can thread an error out via a closed-over variable).
func RangeJSONFields(m Message, fn func(JSONField, reflect.Value, bool) bool) {
	info := GetMessageInfo(m)
	val := messageValue(m)

	for _, item := range info.order {
		if item.field != nil {
			if !fn(JSONField{FieldDescriptor: item.field.FieldDescriptor}, fieldByIndex(val, item.field.index), true) {
				return
			}
			continue
		}
		name, payload, ok := item.oneof.get(val)
		jf := JSONField{
			FieldDescriptor: FieldDescriptor{
				Name:       item.ooCase.Name,
				Tag:        item.ooCase.Tag,
				Kind:       item.ooCase.Kind,
				NewMessage: item.ooCase.NewMessage,
				EnumName:   item.ooCase.EnumName,
				EnumValue:  item.ooCase.EnumValue,
			},
			OneofGroup: item.oneof.Name,
		}
		if !fn(jf, payload, ok && name == item.ooCase.Name) {
			return
		}
	}
}

// FindJSONField looks up a single JSON-visible field of m's type by its Go
// field/case name (not by a JSON key in either casing). It returns ok=false
// for unknown names so callers can ignore unknown keys.
func FindJSONField(m Message, name string) (JSONField, bool) {
	info := GetMessageInfo(m)
	if rf, ok := info.fields[name]; ok {
		return JSONField{FieldDescriptor: rf.FieldDescriptor}, true
	}
	for _, ro := range info.oneofs {
		if rc, ok := ro.casesByName[name]; ok {
			return JSONField{
				FieldDescriptor: FieldDescriptor{
					Name:       rc.Name,
					Tag:        rc.Tag,
					Kind:       rc.Kind,
					NewMessage: rc.NewMessage,
					EnumName:   rc.EnumName,
					EnumValue:  rc.EnumValue,
				},
				OneofGroup: ro.Name,
			}, true
		}
	}
	return JSONField{}, false
}

// PlainFieldValue returns the settable reflect.Value backing a non-one-of
// field by name.
func PlainFieldValue(m Message, name string) (reflect.Value, bool) {
	info := GetMessageInfo(m)
	rf, ok := info.fields[name]
	if !ok {
		return reflect.Value{}, false
	}
	return fieldByIndex(messageValue(m), rf.index), true
}

// SetOneofCase selects case caseName within group on m, storing payload as
// its value. The caller must build payload with the Go type
// OneofCasePayloadType reports.
func SetOneofCase(m Message, group, caseName string, payload reflect.Value) bool {
	info := GetMessageInfo(m)
	ro := info.oneofByName[group]
	if ro == nil {
		return false
	}
	if _, ok := ro.casesByName[caseName]; !ok {
		return false
	}
	ro.set(messageValue(m), caseName, payload)
	return true
}

// OneofCasePayloadType returns the Go type expected for caseName's payload
// within group, so a decoder can allocate a correctly-typed value before
// calling SetOneofCase.
func OneofCasePayloadType(m Message, group, caseName string) (reflect.Type, bool) {
	info := GetMessageInfo(m)
	ro := info.oneofByName[group]
	if ro == nil {
		return nil, false
	}
	rc, ok := ro.casesByName[caseName]
	if !ok {
		return nil, false
	}
	return payloadGoType(rc), true
}

// NewScalarValue allocates a zero-valued, settable reflect.Value of goType,
// suitable as an AssignScalar destination (used by
// protojson when it has no existing struct field to target, e.g. appending
// to a repeated field or filling a map value).
func NewScalarValue(goType reflect.Type) reflect.Value {
	return reflect.New(goType).Elem()
}

// AssignScalar stores a decoded scalar value into dst, exported so package
// protojson reuses the exact same type-conversion rules as wire decoding.
func AssignScalar(dst reflect.Value, value interface{}) { assignScalar(dst, value) }

// ZeroCompare reports whether v holds its Go zero value, exported for
// protojson's default-omission rule.
func ZeroCompare(v reflect.Value) bool { return zeroCompare(v) }
