// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// Field is one raw, undispatched field pulled off the wire by Decoder.Next:
// a tag, its wire type, and the payload in whichever of Varint/Fixed32/
// Fixed64/Bytes applies, plus the verbatim tag+payload slice (Raw) used to
// preserve unknown fields byte-exactly.
type Field struct {
	Number Number
	Type   Type

	Varint uint64 // valid when Type == VarintType
	Fixed  uint64 // valid when Type == Fixed32Type or Fixed64Type (payload widened to uint64)
	Bytes  []byte // valid when Type == BytesType; aliases the input buffer

	Raw []byte // the entire tag+payload slice, aliasing the input buffer
}

// Decoder streams Fields out of a wire-format buffer in arrival order. It
// does not know about any message schema; dispatch by declared field kind
// happens one layer up, in package proto3.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a Decoder over b. b is not copied; the caller must keep
// it alive and unmodified for the Decoder's lifetime.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Done reports whether the buffer has been fully consumed.
func (d *Decoder) Done() bool { return d.off >= len(d.buf) }

// Next parses the next field off the wire. It returns ok=false once the
// buffer is exhausted.
func (d *Decoder) Next() (f Field, ok bool, err error) {
	if d.Done() {
		return Field{}, false, nil
	}
	start := d.off
	num, typ, n, err := ConsumeTag(d.buf[d.off:])
	if err != nil {
		return Field{}, false, err
	}
	d.off += n

	f.Number = num
	f.Type = typ

	switch typ {
	case VarintType:
		v, n, err := ConsumeVarint(d.buf[d.off:])
		if err != nil {
			return Field{}, false, err
		}
		d.off += n
		f.Varint = v
	case Fixed64Type:
		v, n, err := ConsumeFixed64(d.buf[d.off:])
		if err != nil {
			return Field{}, false, err
		}
		d.off += n
		f.Fixed = v
	case BytesType:
		v, n, err := ConsumeBytes(d.buf[d.off:])
		if err != nil {
			return Field{}, false, err
		}
		d.off += n
		f.Bytes = v
	case Fixed32Type:
		v, n, err := ConsumeFixed32(d.buf[d.off:])
		if err != nil {
			return Field{}, false, err
		}
		d.off += n
		f.Fixed = uint64(v)
	default:
		return Field{}, false, &UnsupportedWireTypeError{Number: num, Type: typ}
	}

	f.Raw = d.buf[start:d.off]
	return f, true, nil
}
