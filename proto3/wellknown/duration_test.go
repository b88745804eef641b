// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wellknown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var durationTests = []struct {
	d     *Duration
	valid bool
	td    time.Duration
}{
	{&Duration{Seconds: 0, Nanos: 0}, true, 0},
	{&Duration{Seconds: 100, Nanos: 0}, true, 100 * time.Second},
	{&Duration{Seconds: -100, Nanos: 0}, true, -100 * time.Second},
	{&Duration{Seconds: 1, Nanos: 500000000}, true, 1500 * time.Millisecond},
	{&Duration{Seconds: -1, Nanos: -500000000}, true, -1500 * time.Millisecond},
	{&Duration{Seconds: 1, Nanos: -1}, false, 0},             // mismatched signs
	{&Duration{Seconds: -1, Nanos: 1}, false, 0},             // mismatched signs
	{&Duration{Seconds: 0, Nanos: 1e9}, false, 0},             // nanos out of range
	{&Duration{Seconds: maxSeconds + 1, Nanos: 0}, false, 0}, // seconds out of range
}

func TestValidateDuration(t *testing.T) {
	for _, s := range durationTests {
		err := validateDuration(s.d)
		require.Equal(t, s.valid, err == nil, "validateDuration(%v)", s.d)
	}
}

func TestDurationTimeDuration(t *testing.T) {
	for _, s := range durationTests {
		got, err := s.d.TimeDuration()
		if !s.valid {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, s.td, got)
	}
}

func TestDurationFromTimeDuration(t *testing.T) {
	for _, s := range durationTests {
		if !s.valid {
			continue
		}
		got, err := DurationFromTimeDuration(s.td)
		require.NoError(t, err)
		require.Equal(t, s.d.Seconds, got.Seconds)
		require.Equal(t, s.d.Nanos, got.Nanos)
	}
}

func TestDurationFormatJSON(t *testing.T) {
	for _, test := range []struct {
		d    *Duration
		want string
	}{
		{&Duration{Seconds: 0, Nanos: 0}, "0s"},
		{&Duration{Seconds: 5, Nanos: 0}, "5s"},
		{&Duration{Seconds: 1, Nanos: 500000000}, "1.500s"},
		{&Duration{Seconds: -1, Nanos: -500000000}, "-1.500s"},
		{&Duration{Seconds: 0, Nanos: 123456789}, "0.123456789s"},
	} {
		got, err := test.d.FormatJSON()
		require.NoError(t, err)
		require.Equal(t, test.want, got)
	}
}

func TestDurationFormatJSONRoundTrip(t *testing.T) {
	for _, s := range durationTests {
		if !s.valid {
			continue
		}
		str, err := s.d.FormatJSON()
		require.NoError(t, err)

		parsed, err := ParseDurationJSON(str)
		require.NoError(t, err)
		require.Equal(t, s.d.Seconds, parsed.Seconds)
		require.Equal(t, s.d.Nanos, parsed.Nanos)
	}
}

func TestParseDurationJSONRejectsMissingSuffix(t *testing.T) {
	_, err := ParseDurationJSON("5")
	require.Error(t, err)
}

func TestDurationUnmarshalJSONValue(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSONValue("-1.500s"))
	require.Equal(t, int64(-1), d.Seconds)
	require.Equal(t, int32(-500000000), d.Nanos)
}
