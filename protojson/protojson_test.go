// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protojson_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-proto3/proto3rt/internal/testpb"
	"github.com/go-proto3/proto3rt/proto3"
	"github.com/go-proto3/proto3rt/proto3/wellknown"
	"github.com/go-proto3/proto3rt/protojson"
)

func TestMarshalDefaultOmission(t *testing.T) {
	m := &testpb.Sample{I32: 5}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"i32":5}`, string(b))
}

func TestMarshalEmitUnpopulated(t *testing.T) {
	m := &testpb.Sample{}
	b, err := protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(m)
	require.NoError(t, err)
	require.Contains(t, string(b), `"i32":0`)
	require.Contains(t, string(b), `"s":""`)
	require.Contains(t, string(b), `"child":null`)
	require.Contains(t, string(b), `"wrapped":null`)
	require.Contains(t, string(b), `"when":null`)
	require.Contains(t, string(b), `"repeatedChildren":[]`)
	require.Contains(t, string(b), `"tags":{}`)
}

func TestEmptyRepeatedRoundTripOmitted(t *testing.T) {
	// Unmarshal materializes an empty (non-nil) slice; re-marshaling with
	// default options must still omit it.
	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal([]byte(`{"repeatedChildren":[]}`), &got))
	b, err := protojson.Marshal(&got)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(b))
}

func TestMarshalUseProtoNames(t *testing.T) {
	m := &testpb.Sample{I32: 5}
	b, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"i32":5}`, string(b))
}

func Test64BitIntAsString(t *testing.T) {
	m := &testpb.Sample{I64: 9007199254740993} // > 2^53, would lose precision as a JSON number
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"i64":"9007199254740993"}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.Equal(t, int64(9007199254740993), got.I64)
}

func TestBytesBase64RoundTrip(t *testing.T) {
	m := &testpb.Sample{Bytes: []byte("hello")}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"bytes":"aGVsbG8="}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.Equal(t, []byte("hello"), got.Bytes)
}

func TestEnumAsName(t *testing.T) {
	m := &testpb.Sample{Color: testpb.Color_GREEN}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"color":"GREEN"}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.Equal(t, testpb.Color_GREEN, got.Color)
}

func TestUnknownEnumNameErrors(t *testing.T) {
	var got testpb.Sample
	err := protojson.Unmarshal([]byte(`{"color":"PURPLE"}`), &got)
	require.Error(t, err)
	var target *proto3.UnknownEnumNameError
	require.ErrorAs(t, err, &target)
}

func TestFloatSentinels(t *testing.T) {
	m := &testpb.Sample{Dbl: math.Inf(1)}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"dbl":"Infinity"}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.True(t, math.IsInf(got.Dbl, 1))
}

func TestTimestampJSON(t *testing.T) {
	ts, err := wellknown.TimestampFromTime(time.Unix(0, 123*int64(time.Millisecond)).UTC())
	require.NoError(t, err)
	m := &testpb.Sample{When: ts}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"when":"1970-01-01T00:00:00.123Z"}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.Equal(t, ts.Seconds, got.When.Seconds)
	require.Equal(t, ts.Nanos, got.When.Nanos)
}

func TestDurationJSON(t *testing.T) {
	d := &wellknown.Duration{Seconds: -1, Nanos: -500000000}
	m := &testpb.Sample{For: d}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"for":"-1.500s"}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.Equal(t, d.Seconds, got.For.Seconds)
	require.Equal(t, d.Nanos, got.For.Nanos)
}

func TestOneofJSONRoundTrip(t *testing.T) {
	m := &testpb.Sample{Choice: &testpb.Sample_Number{Number: 0}}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	// A selected one-of case emits even at its zero value.
	require.JSONEq(t, `{"number":0}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	name, val := proto3.WhichOneOf(&got, "choice")
	require.Equal(t, "Number", name)
	require.Equal(t, int32(0), val)
}

func TestWrapperJSONRoundTrip(t *testing.T) {
	zero := int32(0)
	m := &testpb.Sample{Wrapped: &zero}
	b, err := protojson.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"wrapped":0}`, string(b))

	var got testpb.Sample
	require.NoError(t, protojson.Unmarshal(b, &got))
	require.NotNil(t, got.Wrapped)
	require.Equal(t, int32(0), *got.Wrapped)
}

func TestUnknownKeyIgnored(t *testing.T) {
	var got testpb.Sample
	err := protojson.Unmarshal([]byte(`{"i32":3,"bogusField":"whatever"}`), &got)
	require.NoError(t, err)
	require.Equal(t, int32(3), got.I32)
}

func TestNullValueIgnored(t *testing.T) {
	got := testpb.Sample{I32: 9}
	err := protojson.Unmarshal([]byte(`{"i32":null}`), &got)
	require.NoError(t, err)
	require.Equal(t, int32(9), got.I32)
}
