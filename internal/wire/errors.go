// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"strconv"
)

// Sentinel errors for the wire primitives. ErrTruncated covers both "ran out
// of bytes mid-varint" and "declared length exceeds remaining buffer";
// ErrMalformedVarint is the distinct "varint exceeds 10 bytes" case.
var (
	ErrTruncated       = errors.New("proto3: truncated wire data")
	ErrMalformedVarint = errors.New("proto3: malformed varint (exceeds 10 bytes)")
)

// UnsupportedWireTypeError reports a reserved or otherwise unhandled wire
// type (3, 4, 6, 7) encountered while parsing a field header.
type UnsupportedWireTypeError struct {
	Number Number
	Type   Type
}

func (e *UnsupportedWireTypeError) Error() string {
	return "proto3: field " + strconv.FormatUint(uint64(e.Number), 10) + " uses unsupported wire type " + e.Type.String()
}
