// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wellknown bridges the Google-defined well-known message types to
// their natural Go representations: Timestamp to time.Time, Duration to
// time.Duration. Both are themselves proto3.Message implementations; the
// scalar wrapper types (BoolValue, Int32Value, ...) need no types of their
// own since wrapper presence is handled directly by proto3's
// FieldDescriptor.Wraps mechanism over a plain pointer field.
package wellknown

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-proto3/proto3rt/proto3"
)

// Timestamp is the wire/in-memory form of google.protobuf.Timestamp: an
// absolute instant, always UTC.
type Timestamp struct {
	proto3.MessageState

	Seconds int64
	Nanos   int32
}

var timestampDescriptor = &proto3.Descriptor{
	Fields: []proto3.FieldDescriptor{
		{Name: "Seconds", Tag: 1, Kind: proto3.Int64Kind},
		{Name: "Nanos", Tag: 2, Kind: proto3.Int32Kind},
	},
}

func (t *Timestamp) ProtoReflectFields() *proto3.Descriptor { return timestampDescriptor }

func NewTimestamp() proto3.Message { return new(Timestamp) }

const (
	// Range of a valid Timestamp's Seconds field: [0001-01-01, 10000-01-01).
	minValidSeconds = -62135596800
	maxValidSeconds = 253402300800
)

// ErrTimestampOutOfRange reports a Timestamp whose Seconds/Nanos fall
// outside google/protobuf/timestamp.proto's documented range.
var ErrTimestampOutOfRange = errors.New("wellknown: timestamp out of valid range")

func validateTimestamp(ts *Timestamp) error {
	if ts.Seconds < minValidSeconds || ts.Seconds >= maxValidSeconds {
		return ErrTimestampOutOfRange
	}
	if ts.Nanos < 0 || ts.Nanos >= 1e9 {
		return ErrTimestampOutOfRange
	}
	return nil
}

// TimestampFromTime converts an absolute instant to its wire Timestamp form:
// seconds = floor(epoch seconds), nanos = the sub-second remainder in
// nanoseconds. Full nanosecond precision is kept since time.Time carries it.
func TimestampFromTime(t time.Time) (*Timestamp, error) {
	t = t.UTC()
	seconds := t.Unix()
	nanos := int32(t.Sub(time.Unix(seconds, 0)))
	ts := &Timestamp{Seconds: seconds, Nanos: nanos}
	if err := validateTimestamp(ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// Time converts ts back to an absolute UTC instant:
// epoch + seconds + nanos/1e9.
func (ts *Timestamp) Time() (time.Time, error) {
	if ts == nil {
		return time.Unix(0, 0).UTC(), ErrTimestampOutOfRange
	}
	t := time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
	return t, validateTimestamp(ts)
}

// FormatJSON renders ts in the canonical RFC-3339 Zulu form: fractional
// digits emitted in multiples of 3, omitted entirely when zero
// (e.g. "1970-01-01T00:00:00.123Z", not "...123000000Z").
func (ts *Timestamp) FormatJSON() (string, error) {
	t, err := ts.Time()
	if err != nil {
		return "", err
	}
	base := t.Format("2006-01-02T15:04:05")
	switch {
	case ts.Nanos == 0:
		return base + "Z", nil
	case ts.Nanos%1000000 == 0:
		return fmt.Sprintf("%s.%03dZ", base, ts.Nanos/1000000), nil
	case ts.Nanos%1000 == 0:
		return fmt.Sprintf("%s.%06dZ", base, ts.Nanos/1000), nil
	default:
		return fmt.Sprintf("%s.%09dZ", base, ts.Nanos), nil
	}
}

// ParseTimestampJSON parses the canonical RFC-3339 Zulu form back into a
// Timestamp.
func ParseTimestampJSON(s string) (*Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("wellknown: invalid Timestamp JSON %q: %w", s, err)
	}
	return TimestampFromTime(t)
}

// UnmarshalJSONValue fills ts from its canonical RFC-3339 JSON string form,
// letting package protojson dispatch to it without importing this package
// by name (it type-asserts the narrower interface{ UnmarshalJSONValue(string)
// error } instead).
func (ts *Timestamp) UnmarshalJSONValue(s string) error {
	parsed, err := ParseTimestampJSON(s)
	if err != nil {
		return err
	}
	*ts = *parsed
	return nil
}
