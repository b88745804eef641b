// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

// FieldDescriptor describes one non-one-of field of a generated message: a
// tag, a declared kind, and the optional map/wrapper metadata that only
// apply to some kinds.
//
// Invariants (enforced when the MessageInfo is first built, not by the type
// system, since generated code supplies this as a plain struct literal
// table):
//   - MapKey/MapValue are set iff Kind == MapKind.
//   - Wraps is set only when Kind == MessageKind, and marks the field as a
//     Google wrapper (BoolValue, Int32Value, ...): the Go field itself is a
//     pointer to the wrapped scalar's Go type (e.g. *int32), not a pointer to
//     a two-field struct — the wire framing alone is message-shaped.
type FieldDescriptor struct {
	Name     string // Go struct field name
	Tag      uint32
	Kind     Kind
	Repeated bool

	MapKey   Kind // set iff Kind == MapKind
	MapValue Kind // set iff Kind == MapKind

	Wraps Kind // set iff Kind == MessageKind and this is a wrapper field

	// NewMessage constructs a zero-value instance of the nested message type.
	// Set iff Kind == MessageKind and Wraps == InvalidKind, or iff Kind ==
	// MapKind and MapValue == MessageKind (the map's value class).
	NewMessage func() Message

	// EnumName/EnumValue implement the enum's name<->value map. Set iff
	// Kind == EnumKind (or MapValue == EnumKind for enum-valued maps).
	EnumName  func(int32) (string, bool)
	EnumValue func(string) (int32, bool)
}

// OneofCase describes one field belonging to a one-of group. Each case is
// represented in Go as a distinct pointer-to-struct type with a single
// exported field holding the payload, the same wrapper-type shape
// protoc-gen-go emits for oneof fields.
type OneofCase struct {
	Name string // case name, e.g. "Number"
	Tag  uint32
	Kind Kind

	NewMessage func() Message
	EnumName   func(int32) (string, bool)
	EnumValue  func(string) (int32, bool)

	// New returns a pointer to a zero-valued case wrapper struct (its single
	// exported field holds the payload), also satisfying the group's marker
	// interface. Used both to learn the wrapper's reflect.Type and to
	// construct fresh instances when a case is selected.
	New func() interface{}
}

// OneofDescriptor describes a one-of group: the struct field (of a marker
// interface type) that carries the current selection, and the set of cases
// that may occupy it.
type OneofDescriptor struct {
	Name      string // group name
	FieldName string // Go struct field holding the interface value
	Cases     []OneofCase
}

// Descriptor is the complete field table of a message type, returned once by
// Message.ProtoReflectFields and cached by GetMessageInfo.
type Descriptor struct {
	Fields []FieldDescriptor
	Oneofs []OneofDescriptor
}

// Message is implemented by every generated message type. Generated structs
// embed MessageState by value, which promotes the unexported presence/
// unknown-field accessors this package needs.
type Message interface {
	// ProtoReflectFields returns this message type's field table. Called
	// when the type's MessageInfo is first built (once per racing builder);
	// the resulting MessageInfo is cached.
	ProtoReflectFields() *Descriptor

	protoUnknown() *[]byte
	protoWire() *bool
}
