// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wellknown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var timestampTests = []struct {
	ts    *Timestamp
	valid bool
	t     time.Time
}{
	{&Timestamp{Seconds: 0, Nanos: 0}, true, utcDate(1970, 1, 1)},
	{&Timestamp{Seconds: minValidSeconds, Nanos: 0}, true, utcDate(1, 1, 1)},
	{&Timestamp{Seconds: maxValidSeconds - 1, Nanos: 1e9 - 1}, true,
		time.Date(9999, 12, 31, 23, 59, 59, 1e9-1, time.UTC)},
	{&Timestamp{Seconds: maxValidSeconds, Nanos: 0}, false, time.Unix(maxValidSeconds, 0).UTC()},
	{&Timestamp{Seconds: minValidSeconds - 1, Nanos: 0}, false, time.Unix(minValidSeconds-1, 0).UTC()},
	{&Timestamp{Seconds: -281836800, Nanos: 0}, true, utcDate(1961, 1, 26)},
	{&Timestamp{Seconds: 1296000000, Nanos: 0}, true, utcDate(2011, 1, 26)},
	{&Timestamp{Seconds: 1296012345, Nanos: 940483}, true,
		time.Date(2011, 1, 26, 3, 25, 45, 940483, time.UTC)},
	{&Timestamp{Seconds: 0, Nanos: -1}, false, time.Time{}},
	{&Timestamp{Seconds: 0, Nanos: 1e9}, false, time.Time{}},
}

func utcDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestValidateTimestamp(t *testing.T) {
	for _, s := range timestampTests {
		err := validateTimestamp(s.ts)
		require.Equal(t, s.valid, err == nil, "validateTimestamp(%v)", s.ts)
	}
}

func TestTimestampTime(t *testing.T) {
	for _, s := range timestampTests {
		got, err := s.ts.Time()
		if !s.valid {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.True(t, got.Equal(s.t), "Time() = %v, want %v", got, s.t)
	}
}

func TestTimestampFromTime(t *testing.T) {
	for _, s := range timestampTests {
		if !s.valid {
			continue
		}
		got, err := TimestampFromTime(s.t)
		require.NoError(t, err)
		require.Equal(t, s.ts.Seconds, got.Seconds)
		require.Equal(t, s.ts.Nanos, got.Nanos)
	}
}

func TestTimestampFormatJSONRoundTrip(t *testing.T) {
	for _, s := range timestampTests {
		if !s.valid {
			continue
		}
		str, err := s.ts.FormatJSON()
		require.NoError(t, err)

		parsed, err := ParseTimestampJSON(str)
		require.NoError(t, err)
		require.Equal(t, s.ts.Seconds, parsed.Seconds)
		require.Equal(t, s.ts.Nanos, parsed.Nanos)
	}
}

func TestTimestampFormatJSONFractionPadding(t *testing.T) {
	for _, test := range []struct {
		ts   *Timestamp
		want string
	}{
		{&Timestamp{Seconds: 0, Nanos: 0}, "1970-01-01T00:00:00Z"},
		{&Timestamp{Seconds: 0, Nanos: 123000000}, "1970-01-01T00:00:00.123Z"},
		{&Timestamp{Seconds: 0, Nanos: 123456000}, "1970-01-01T00:00:00.123456Z"},
		{&Timestamp{Seconds: 0, Nanos: 123456789}, "1970-01-01T00:00:00.123456789Z"},
	} {
		got, err := test.ts.FormatJSON()
		require.NoError(t, err)
		require.Equal(t, test.want, got)
	}
}

func TestParseTimestampJSONRejectsGarbage(t *testing.T) {
	_, err := ParseTimestampJSON("not-a-timestamp")
	require.Error(t, err)
}

func TestUnmarshalJSONValue(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSONValue("1970-01-01T00:00:00.123Z"))
	require.Equal(t, int64(0), ts.Seconds)
	require.Equal(t, int32(123000000), ts.Nanos)
}
