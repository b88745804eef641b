// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

// MessageState is embedded by value in every generated message struct. It
// carries the two pieces of per-instance state beyond the declared fields
// themselves:
//
//   - wire: true once the message has been parsed from bytes. Plain proto3
//     scalar fields carry no presence of their own (the Go zero value is the
//     declared default), so there is nothing else for this flag to track:
//     one-of presence lives in the Go type system (a typed interface
//     selection, see OneofDescriptor) and wrapper-field presence lives in
//     pointer-nil-ness, both self-describing without a side table.
//   - unknown: the raw bytes of every field whose tag was not in the
//     descriptor, concatenated in arrival order.
//
// The zero value is a fully valid, fully-unset MessageState; no constructor
// call is required.
type MessageState struct {
	wire    bool
	unknown []byte
}

func (s *MessageState) protoUnknown() *[]byte { return &s.unknown }
func (s *MessageState) protoWire() *bool      { return &s.wire }

// SerializedOnWire reports whether m was produced by Unmarshal, or has any
// field that differs from its zero value. Go has no field setters to
// intercept, so an assignment to a non-default value is indistinguishable
// from "never touched" other than by its effect.
func SerializedOnWire(m Message) bool {
	if *m.protoWire() {
		return true
	}
	return !IsEmpty(m)
}

// WhichOneOf reports which field of the named one-of group is currently
// selected on m, and its value. It returns ("", nil) if none is set.
func WhichOneOf(m Message, group string) (string, interface{}) {
	info := GetMessageInfo(m)
	ro := info.oneofByName[group]
	if ro == nil {
		return "", nil
	}
	name, payload, ok := ro.get(messageValue(m))
	if !ok {
		return "", nil
	}
	return name, payload.Interface()
}
