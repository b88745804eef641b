// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testpb hand-authors the generated-code surface a protoc plugin
// would emit for package proto3 to consume: field tables, one-of case
// types, and an enum name/value map. It stands in for generated output in
// tests.
package testpb

import (
	"github.com/go-proto3/proto3rt/proto3"
	"github.com/go-proto3/proto3rt/proto3/wellknown"
)

// Color is a small generated enum, mapped by name for the JSON codec.
type Color int32

const (
	Color_RED   Color = 0
	Color_GREEN Color = 1
	Color_BLUE  Color = 2
)

var colorNames = map[int32]string{0: "RED", 1: "GREEN", 2: "BLUE"}
var colorValues = map[string]int32{"RED": 0, "GREEN": 1, "BLUE": 2}

func ColorName(v int32) (string, bool)  { s, ok := colorNames[v]; return s, ok }
func ColorValue(s string) (int32, bool) { v, ok := colorValues[s]; return v, ok }

// Nested is a small message used as a Sample.Child/RepeatedChildren/TagsMsg
// element, exercising recursive message handling.
type Nested struct {
	proto3.MessageState

	Value string
}

var nestedDescriptor = &proto3.Descriptor{
	Fields: []proto3.FieldDescriptor{
		{Name: "Value", Tag: 1, Kind: proto3.StringKind},
	},
}

func (n *Nested) ProtoReflectFields() *proto3.Descriptor { return nestedDescriptor }

func NewNested() proto3.Message { return new(Nested) }

// Self is a self-referential message. A zero-valued *Self field is simply
// nil until assigned, so recursion terminates without any lazy-default
// machinery.
type Self struct {
	proto3.MessageState

	Label string
	Next  *Self
}

var selfDescriptor = &proto3.Descriptor{
	Fields: []proto3.FieldDescriptor{
		{Name: "Label", Tag: 1, Kind: proto3.StringKind},
		{Name: "Next", Tag: 2, Kind: proto3.MessageKind, NewMessage: NewSelf},
	},
}

func (s *Self) ProtoReflectFields() *proto3.Descriptor { return selfDescriptor }

func NewSelf() proto3.Message { return new(Self) }

// isSampleChoice marks the case-wrapper types of Sample's "choice" one-of
// group. Each case is a distinct pointer-to-struct type with a single
// exported field.
type isSampleChoice interface{ isSampleChoice() }

type Sample_Number struct{ Number int32 }
type Sample_Text struct{ Text string }

func (*Sample_Number) isSampleChoice() {}
func (*Sample_Text) isSampleChoice()   {}

// Sample is the exhaustive exercise message: one field of every declared
// Kind, packed and unpacked repetition, a map (scalar- and message-valued),
// a nested message, a Google wrapper field, a well-known Timestamp field,
// and a one-of group.
type Sample struct {
	proto3.MessageState

	I32   int32
	I64   int64
	U32   uint32
	U64   uint64
	Si32  int32
	Si64  int64
	F32   uint32
	F64   uint64
	Sf32  int32
	Sf64  int64
	Flt   float32
	Dbl   float64
	B     bool
	S     string
	Bytes []byte
	Color Color

	Nums []int32  // packable repeated
	Strs []string // non-packable repeated

	Tags    map[string]int32
	TagsMsg map[string]*Nested

	Child            *Nested
	RepeatedChildren []*Nested

	Wrapped *int32 // google.protobuf.Int32Value
	When    *wellknown.Timestamp
	For     *wellknown.Duration

	Choice isSampleChoice
}

var sampleDescriptor = &proto3.Descriptor{
	Fields: []proto3.FieldDescriptor{
		{Name: "I32", Tag: 1, Kind: proto3.Int32Kind},
		{Name: "I64", Tag: 2, Kind: proto3.Int64Kind},
		{Name: "U32", Tag: 3, Kind: proto3.Uint32Kind},
		{Name: "U64", Tag: 4, Kind: proto3.Uint64Kind},
		{Name: "Si32", Tag: 5, Kind: proto3.Sint32Kind},
		{Name: "Si64", Tag: 6, Kind: proto3.Sint64Kind},
		{Name: "F32", Tag: 7, Kind: proto3.Fixed32Kind},
		{Name: "F64", Tag: 8, Kind: proto3.Fixed64Kind},
		{Name: "Sf32", Tag: 9, Kind: proto3.Sfixed32Kind},
		{Name: "Sf64", Tag: 10, Kind: proto3.Sfixed64Kind},
		{Name: "Flt", Tag: 11, Kind: proto3.FloatKind},
		{Name: "Dbl", Tag: 12, Kind: proto3.DoubleKind},
		{Name: "B", Tag: 13, Kind: proto3.BoolKind},
		{Name: "S", Tag: 14, Kind: proto3.StringKind},
		{Name: "Bytes", Tag: 15, Kind: proto3.BytesKind},
		{Name: "Color", Tag: 16, Kind: proto3.EnumKind, EnumName: ColorName, EnumValue: ColorValue},
		{Name: "Nums", Tag: 17, Kind: proto3.Int32Kind, Repeated: true},
		{Name: "Strs", Tag: 18, Kind: proto3.StringKind, Repeated: true},
		{Name: "Tags", Tag: 19, Kind: proto3.MapKind, MapKey: proto3.StringKind, MapValue: proto3.Int32Kind},
		{Name: "TagsMsg", Tag: 20, Kind: proto3.MapKind, MapKey: proto3.StringKind, MapValue: proto3.MessageKind, NewMessage: NewNested},
		{Name: "Child", Tag: 21, Kind: proto3.MessageKind, NewMessage: NewNested},
		{Name: "RepeatedChildren", Tag: 22, Kind: proto3.MessageKind, Repeated: true, NewMessage: NewNested},
		{Name: "Wrapped", Tag: 23, Kind: proto3.MessageKind, Wraps: proto3.Int32Kind},
		{Name: "When", Tag: 24, Kind: proto3.MessageKind, NewMessage: wellknown.NewTimestamp},
		{Name: "For", Tag: 25, Kind: proto3.MessageKind, NewMessage: wellknown.NewDuration},
	},
	Oneofs: []proto3.OneofDescriptor{
		{
			Name:      "choice",
			FieldName: "Choice",
			Cases: []proto3.OneofCase{
				{Name: "Number", Tag: 26, Kind: proto3.Int32Kind, New: func() interface{} { return new(Sample_Number) }},
				{Name: "Text", Tag: 27, Kind: proto3.StringKind, New: func() interface{} { return new(Sample_Text) }},
			},
		},
	},
}

func (s *Sample) ProtoReflectFields() *proto3.Descriptor { return sampleDescriptor }

func NewSample() proto3.Message { return new(Sample) }
