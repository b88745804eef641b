// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Equal reports whether a and b are the same concrete message type and carry
// identical field values, including unknown fields. Two NaN floats compare
// equal, so Equal is reflexive. It walks the same MessageInfo-driven field
// set encode/decode use.
func Equal(a, b Message) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	info := GetMessageInfo(a)
	va, vb := messageValue(a), messageValue(b)

	for _, rf := range info.fields {
		if !fieldEqual(rf, fieldByIndex(va, rf.index), fieldByIndex(vb, rf.index)) {
			return false
		}
	}
	for _, ro := range info.oneofs {
		na, pa, oka := ro.get(va)
		nb, pb, okb := ro.get(vb)
		if oka != okb || na != nb {
			return false
		}
		if !oka {
			continue
		}
		if k := ro.casesByName[na].Kind; k == MessageKind {
			if !messageFieldEqual(pa, pb) {
				return false
			}
		} else if !valueEqual(k, pa, pb) {
			return false
		}
	}
	return bytes.Equal(*a.protoUnknown(), *b.protoUnknown())
}

func fieldEqual(f *resolvedField, fa, fb reflect.Value) bool {
	switch {
	case f.Kind == MapKind:
		return mapEqual(f, fa, fb)
	case f.Repeated:
		if fa.Len() != fb.Len() {
			return false
		}
		for i := 0; i < fa.Len(); i++ {
			if f.Kind == MessageKind {
				if !messageFieldEqual(fa.Index(i), fb.Index(i)) {
					return false
				}
			} else if !valueEqual(f.Kind, fa.Index(i), fb.Index(i)) {
				return false
			}
		}
		return true
	case f.Kind == MessageKind:
		return messageFieldEqual(fa, fb)
	default:
		return valueEqual(f.Kind, fa, fb)
	}
}

func mapEqual(f *resolvedField, fa, fb reflect.Value) bool {
	if fa.Len() != fb.Len() {
		return false
	}
	iter := fa.MapRange()
	for iter.Next() {
		k := iter.Key()
		vb := fb.MapIndex(k)
		if !vb.IsValid() {
			return false
		}
		if f.MapValue == MessageKind {
			if !messageFieldEqual(iter.Value(), vb) {
				return false
			}
		} else if !valueEqual(f.MapValue, iter.Value(), vb) {
			return false
		}
	}
	return true
}

// messageFieldEqual handles both nested-message and wrapper pointer fields:
// nil/nil equal, exactly-one-nil unequal, both-non-nil recurse (messages) or
// compare pointee (wrappers).
func messageFieldEqual(fa, fb reflect.Value) bool {
	if fa.IsNil() != fb.IsNil() {
		return false
	}
	if fa.IsNil() {
		return true
	}
	if ma, ok := fa.Interface().(Message); ok {
		mb, ok := fb.Interface().(Message)
		return ok && Equal(ma, mb)
	}
	return goValueEqual(fa.Elem(), fb.Elem())
}

// goValueEqual compares two non-Message leaf values (the pointee of a
// wrapper field) by Go reflect.Kind, since at this point the caller has only
// a *T pointer and not the originating FieldDescriptor.Wraps Kind.
func goValueEqual(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := a.Float(), b.Float()
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	case reflect.Slice:
		return bytes.Equal(a.Bytes(), b.Bytes())
	default:
		return a.Interface() == b.Interface()
	}
}

// valueEqual compares two scalar/enum Go values of declared kind k, treating
// NaN as equal to NaN rather than using the IEEE-754 comparison that makes
// NaN != NaN.
func valueEqual(k Kind, a, b reflect.Value) bool {
	switch k {
	case FloatKind, DoubleKind:
		fa, fb := a.Float(), b.Float()
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	case BytesKind:
		return bytes.Equal(a.Bytes(), b.Bytes())
	default:
		return a.Interface() == b.Interface()
	}
}

// IsEmpty reports whether m has no field set away from its declared default
// and no one-of group selection. Unknown fields are not considered, so a
// message holding only unknown fields is empty here although Equal would
// report it different from a zero-valued message.
func IsEmpty(m Message) bool {
	info := GetMessageInfo(m)
	val := messageValue(m)

	for _, rf := range info.fields {
		fv := fieldByIndex(val, rf.index)
		switch {
		case rf.Kind == MapKind, rf.Repeated:
			if fv.Len() != 0 {
				return false
			}
		case rf.Kind == MessageKind:
			if !fv.IsNil() {
				return false
			}
		default:
			if !zeroCompare(fv) {
				return false
			}
		}
	}
	for _, ro := range info.oneofs {
		if _, _, ok := ro.get(val); ok {
			return false
		}
	}
	return true
}

// String returns a compact, human-readable dump of m's set fields as
// name:value pairs. It is not a stable serialization format and exists
// purely for debugging.
func String(m Message) string {
	info := GetMessageInfo(m)
	val := messageValue(m)
	var parts []string

	for _, rf := range info.fields {
		fv := fieldByIndex(val, rf.index)
		if rf.Kind == MessageKind {
			if fv.IsNil() {
				continue
			}
		} else if rf.Kind == MapKind || rf.Repeated {
			if fv.Len() == 0 {
				continue
			}
		} else if zeroCompare(fv) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%v", rf.Name, fv.Interface()))
	}
	for _, ro := range info.oneofs {
		if name, payload, ok := ro.get(val); ok {
			parts = append(parts, fmt.Sprintf("%s:%v", name, payload.Interface()))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}
