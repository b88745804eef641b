// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3

import "fmt"

// InvalidUTF8Error reports a string field whose LEN payload was not valid
// UTF-8.
type InvalidUTF8Error struct {
	Field string
}

func (e *InvalidUTF8Error) Error() string {
	return "proto3: field " + e.Field + ": invalid UTF-8"
}

// UnknownEnumNameError reports a JSON enum member name with no corresponding
// value.
type UnknownEnumNameError struct {
	Field string
	Name  string
}

func (e *UnknownEnumNameError) Error() string {
	return fmt.Sprintf("proto3: field %s: unknown enum name %q", e.Field, e.Name)
}

// SchemaViolationError reports a broken internal contract in a generated
// message's field table (e.g. MapKind without map key/value kinds). It is a
// programming error in the generated code, not a recoverable condition.
// Building a MessageInfo from a broken table, or meeting an unhandled kind,
// raises it as a panic value; the marshaler returns it as an ordinary error
// when a message-kind field's value does not implement Message.
type SchemaViolationError struct {
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return "proto3: schema violation: " + e.Reason
}
