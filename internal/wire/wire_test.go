// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 32, ^uint64(0)}
	for _, v := range cases {
		b := AppendVarint(nil, v)
		if len(b) != SizeVarint(v) {
			t.Fatalf("SizeVarint(%d) = %d, want %d", v, SizeVarint(v), len(b))
		}
		got, n, err := ConsumeVarint(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, v, got)
	}
}

func TestVarint150(t *testing.T) {
	// int32 field 1 = 150 encodes as 08 96 01.
	b := AppendTag(nil, 1, VarintType)
	b = AppendVarint(b, 150)
	require.Equal(t, []byte{0x08, 0x96, 0x01}, b)
}

func TestMalformedVarintOverflow(t *testing.T) {
	// 10 bytes, all continuation bits set: never terminates.
	b := bytes.Repeat([]byte{0x80}, 10)
	_, _, err := ConsumeVarint(b)
	require.ErrorIs(t, err, ErrMalformedVarint)
}

func TestTruncatedVarint(t *testing.T) {
	_, _, err := ConsumeVarint([]byte{0x80, 0x80})
	require.ErrorIs(t, err, ErrTruncated)
}

func TestZigZag32(t *testing.T) {
	cases := []struct{ v int32; u uint32 }{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2147483647, 4294967294}, {-2147483648, 4294967295},
	}
	for _, c := range cases {
		if got := EncodeZigZag32(c.v); got != c.u {
			t.Errorf("EncodeZigZag32(%d) = %d, want %d", c.v, got, c.u)
		}
		if got := DecodeZigZag32(c.u); got != c.v {
			t.Errorf("DecodeZigZag32(%d) = %d, want %d", c.u, got, c.v)
		}
	}
}

func TestZigZag64RoundTrip(t *testing.T) {
	cases := []int64{0, -1, 1, -2, 2, 1 << 40, -(1 << 40)}
	for _, v := range cases {
		if got := DecodeZigZag64(EncodeZigZag64(v)); got != v {
			t.Errorf("round trip of %d produced %d", v, got)
		}
	}
}

func TestFixed32RoundTrip(t *testing.T) {
	b := AppendFixed32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
	v, n, err := ConsumeFixed32(b)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, uint32(0x01020304), v)
}

func TestFixed64RoundTrip(t *testing.T) {
	b := AppendFixed64(nil, 0x0102030405060708)
	v, n, err := ConsumeFixed64(b)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, uint64(0x0102030405060708), v)
}

func TestDecoderNext(t *testing.T) {
	// field 1 (varint) = 150, field 2 (bytes) = "hi"
	var b []byte
	b = AppendTag(b, 1, VarintType)
	b = AppendVarint(b, 150)
	b = AppendTag(b, 2, BytesType)
	b = AppendBytes(b, []byte("hi"))

	d := NewDecoder(b)
	f, ok, err := d.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Number(1), f.Number)
	require.Equal(t, VarintType, f.Type)
	require.Equal(t, uint64(150), f.Varint)

	f, ok, err = d.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Number(2), f.Number)
	require.Equal(t, "hi", string(f.Bytes))

	_, ok, err = d.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDecoderUnsupportedWireType(t *testing.T) {
	b := AppendTag(nil, 1, StartGroupType)
	d := NewDecoder(b)
	_, _, err := d.Next()
	var uwt *UnsupportedWireTypeError
	require.ErrorAs(t, err, &uwt)
}
