// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// resolvedField pairs a FieldDescriptor with the reflect field-index path
// used to address it within the parent struct, resolved once at
// MessageInfo-build time so encode/decode never repeat a FieldByName lookup.
type resolvedField struct {
	FieldDescriptor
	index []int
}

type resolvedCase struct {
	OneofCase
	wrapType reflect.Type // pointer-to-struct type implementing the group's marker interface
}

type resolvedOneof struct {
	OneofDescriptor
	index       []int
	casesByTag  map[uint32]*resolvedCase
	casesByName map[string]*resolvedCase
	casesByType map[reflect.Type]*resolvedCase
}

func (ro *resolvedOneof) get(msgVal reflect.Value) (name string, payload reflect.Value, ok bool) {
	iface := fieldByIndex(msgVal, ro.index)
	if iface.IsNil() {
		return "", reflect.Value{}, false
	}
	concrete := iface.Elem()
	rc, ok := ro.casesByType[concrete.Type()]
	if !ok {
		return "", reflect.Value{}, false
	}
	return rc.Name, concrete.Elem().Field(0), true
}

func (ro *resolvedOneof) set(msgVal reflect.Value, caseName string, payload reflect.Value) {
	rc := ro.casesByName[caseName]
	wrap := reflect.New(rc.wrapType.Elem())
	wrap.Elem().Field(0).Set(payload)
	fieldByIndex(msgVal, ro.index).Set(wrap)
}

func (ro *resolvedOneof) clear(msgVal reflect.Value) {
	fieldByIndex(msgVal, ro.index).Set(reflect.Zero(fieldByIndex(msgVal, ro.index).Type()))
}

// encodeItem is one entry of MessageInfo's canonical, tag-ascending walk
// order — the serialization order. Exactly one of field or (oneof, ooCase)
// is set.
type encodeItem struct {
	tag   uint32
	field *resolvedField

	oneof  *resolvedOneof
	ooCase *resolvedCase
}

// MessageInfo is the per-message-type metadata, built once from a type's
// Descriptor and cached by GetMessageInfo. Construction is lazy and
// idempotent: a concurrent duplicate build is discarded by
// sync.Map.LoadOrStore, which is safe because the result is deterministic.
type MessageInfo struct {
	goType reflect.Type // pointer-to-struct, e.g. *Person

	order []encodeItem // canonical tag-ascending walk order

	byTag  map[uint32]encodeItem
	fields map[string]*resolvedField // by Go field name, for direct accessor use

	oneofs      []*resolvedOneof
	oneofByName map[string]*resolvedOneof
}

var messageInfoCache sync.Map // map[reflect.Type]*MessageInfo

// GetMessageInfo returns the cached MessageInfo for m's concrete type,
// building it on first use.
func GetMessageInfo(m Message) *MessageInfo {
	t := reflect.TypeOf(m)
	if mi, ok := messageInfoCache.Load(t); ok {
		return mi.(*MessageInfo)
	}
	mi, _ := messageInfoCache.LoadOrStore(t, buildMessageInfo(t, m.ProtoReflectFields()))
	return mi.(*MessageInfo)
}

func buildMessageInfo(t reflect.Type, desc *Descriptor) *MessageInfo {
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic(&SchemaViolationError{Reason: fmt.Sprintf("proto3: message type %s must be a pointer to struct", t)})
	}
	elem := t.Elem()

	mi := &MessageInfo{
		goType:      t,
		byTag:       make(map[uint32]encodeItem),
		fields:      make(map[string]*resolvedField),
		oneofByName: make(map[string]*resolvedOneof),
	}

	for _, fd := range desc.Fields {
		if (fd.Kind == MapKind) != (fd.MapKey != InvalidKind || fd.MapValue != InvalidKind) {
			panic(&SchemaViolationError{Reason: "field " + fd.Name + ": map_types set iff kind is MAP"})
		}
		if fd.Wraps != InvalidKind && fd.Kind != MessageKind {
			panic(&SchemaViolationError{Reason: "field " + fd.Name + ": wraps set on non-message field"})
		}
		sf, ok := elem.FieldByName(fd.Name)
		if !ok {
			panic(&SchemaViolationError{Reason: "field " + fd.Name + ": no such struct field on " + elem.String()})
		}
		rf := &resolvedField{FieldDescriptor: fd, index: sf.Index}
		mi.fields[fd.Name] = rf
		if _, dup := mi.byTag[fd.Tag]; dup {
			panic(&SchemaViolationError{Reason: fmt.Sprintf("duplicate tag %d on %s", fd.Tag, elem)})
		}
		item := encodeItem{tag: fd.Tag, field: rf}
		mi.byTag[fd.Tag] = item
		mi.order = append(mi.order, item)
	}

	for _, od := range desc.Oneofs {
		sf, ok := elem.FieldByName(od.FieldName)
		if !ok {
			panic(&SchemaViolationError{Reason: "oneof " + od.Name + ": no such struct field " + od.FieldName})
		}
		ro := &resolvedOneof{
			OneofDescriptor: od,
			index:           sf.Index,
			casesByTag:      make(map[uint32]*resolvedCase),
			casesByName:     make(map[string]*resolvedCase),
			casesByType:     make(map[reflect.Type]*resolvedCase),
		}
		for _, c := range od.Cases {
			wrapType := reflect.TypeOf(c.New())
			rc := &resolvedCase{OneofCase: c, wrapType: wrapType}
			ro.casesByTag[c.Tag] = rc
			ro.casesByName[c.Name] = rc
			ro.casesByType[wrapType] = rc
			if _, dup := mi.byTag[c.Tag]; dup {
				panic(&SchemaViolationError{Reason: fmt.Sprintf("duplicate tag %d on %s", c.Tag, elem)})
			}
			item := encodeItem{tag: c.Tag, oneof: ro, ooCase: rc}
			mi.byTag[c.Tag] = item
			mi.order = append(mi.order, item)
		}
		mi.oneofs = append(mi.oneofs, ro)
		mi.oneofByName[od.Name] = ro
	}

	sort.Slice(mi.order, func(i, j int) bool { return mi.order[i].tag < mi.order[j].tag })

	return mi
}

// fieldByIndex addresses a (possibly nested, for promoted embedded fields)
// struct field given a value positioned at the message struct itself
// (not a pointer).
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		v = v.Field(i)
	}
	return v
}

// messageValue returns the addressable struct Value underlying a Message
// pointer.
func messageValue(m Message) reflect.Value {
	return reflect.ValueOf(m).Elem()
}
