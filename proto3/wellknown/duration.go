// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wellknown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-proto3/proto3rt/proto3"
)

// Duration is the wire/in-memory form of google.protobuf.Duration: a signed
// time-span.
type Duration struct {
	proto3.MessageState

	Seconds int64
	Nanos   int32
}

var durationDescriptor = &proto3.Descriptor{
	Fields: []proto3.FieldDescriptor{
		{Name: "Seconds", Tag: 1, Kind: proto3.Int64Kind},
		{Name: "Nanos", Tag: 2, Kind: proto3.Int32Kind},
	},
}

func (d *Duration) ProtoReflectFields() *proto3.Descriptor { return durationDescriptor }

func NewDuration() proto3.Message { return new(Duration) }

// Range of a Duration in seconds, as specified in
// google/protobuf/duration.proto: about 10,000 years.
const (
	maxSeconds = int64(10000 * 365.25 * 24 * 60 * 60)
	minSeconds = -maxSeconds
)

// ErrDurationOutOfRange reports a Duration whose Seconds/Nanos fall outside
// google/protobuf/duration.proto's documented range, or whose Seconds/Nanos
// carry mismatched signs.
var ErrDurationOutOfRange = errors.New("wellknown: duration out of valid range")

func validateDuration(d *Duration) error {
	if d.Seconds < minSeconds || d.Seconds > maxSeconds {
		return ErrDurationOutOfRange
	}
	if d.Nanos <= -1e9 || d.Nanos >= 1e9 {
		return ErrDurationOutOfRange
	}
	if (d.Seconds < 0 && d.Nanos > 0) || (d.Seconds > 0 && d.Nanos < 0) {
		return ErrDurationOutOfRange
	}
	return nil
}

// DurationFromTimeDuration splits a time.Duration into seconds and a
// same-signed sub-second nanosecond remainder.
func DurationFromTimeDuration(td time.Duration) (*Duration, error) {
	nanos := td.Nanoseconds()
	secs := nanos / 1e9
	nanos -= secs * 1e9
	d := &Duration{Seconds: secs, Nanos: int32(nanos)}
	if err := validateDuration(d); err != nil {
		return nil, err
	}
	return d, nil
}

// TimeDuration converts d back to a time.Duration. It returns an error if d
// is invalid or too large to be represented in a time.Duration (the range of
// google.protobuf.Duration is ~10,000 years; time.Duration's is ~290).
func (d *Duration) TimeDuration() (time.Duration, error) {
	if err := validateDuration(d); err != nil {
		return 0, err
	}
	td := time.Duration(d.Seconds) * time.Second
	if int64(td/time.Second) != d.Seconds {
		return 0, fmt.Errorf("wellknown: %v is out of range for time.Duration", d)
	}
	if d.Nanos != 0 {
		td += time.Duration(d.Nanos)
		if (td < 0) != (d.Nanos < 0) {
			return 0, fmt.Errorf("wellknown: %v is out of range for time.Duration", d)
		}
	}
	return td, nil
}

// FormatJSON renders d in the canonical JSON form: decimal seconds followed
// by "s", fractional part padded to 3/6/9 digits ("-1.500s" for
// Duration{Seconds:-1, Nanos:-500_000_000}). It returns
// ErrDurationOutOfRange for a Duration that fails validation; a valid
// Duration always formats.
func (d *Duration) FormatJSON() (string, error) {
	if err := validateDuration(d); err != nil {
		return "", err
	}
	sign := ""
	secs, nanos := d.Seconds, d.Nanos
	if secs < 0 || nanos < 0 {
		sign = "-"
		secs, nanos = -secs, -nanos
	}
	switch {
	case nanos == 0:
		return fmt.Sprintf("%s%ds", sign, secs), nil
	case nanos%1000000 == 0:
		return fmt.Sprintf("%s%d.%03ds", sign, secs, nanos/1000000), nil
	case nanos%1000 == 0:
		return fmt.Sprintf("%s%d.%06ds", sign, secs, nanos/1000), nil
	default:
		return fmt.Sprintf("%s%d.%09ds", sign, secs, nanos), nil
	}
}

// ParseDurationJSON parses the "<decimal>s" canonical form back into a
// Duration.
func ParseDurationJSON(s string) (*Duration, error) {
	if len(s) == 0 || s[len(s)-1] != 's' {
		return nil, fmt.Errorf("wellknown: invalid Duration JSON %q: missing trailing 's'", s)
	}
	var sign int64 = 1
	numeric := s[:len(s)-1]
	if len(numeric) > 0 && numeric[0] == '-' {
		sign = -1
		numeric = numeric[1:]
	}
	var secPart, fracPart string
	if i := strings.IndexByte(numeric, '.'); i >= 0 {
		secPart, fracPart = numeric[:i], numeric[i+1:]
	} else {
		secPart = numeric
	}
	var secs uint64
	if secPart != "" {
		var err error
		secs, err = strconv.ParseUint(secPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("wellknown: invalid Duration JSON %q: %w", s, err)
		}
	}
	nanos, err := parseFracNanos(fracPart)
	if err != nil {
		return nil, fmt.Errorf("wellknown: invalid Duration JSON %q: %w", s, err)
	}
	d := &Duration{Seconds: sign * int64(secs), Nanos: int32(sign) * int32(nanos)}
	if err := validateDuration(d); err != nil {
		return nil, err
	}
	return d, nil
}

// UnmarshalJSONValue fills d from its canonical "<decimal>s" JSON string
// form; see Timestamp.UnmarshalJSONValue for why this is a method rather
// than relying on package protojson importing this package directly.
func (d *Duration) UnmarshalJSONValue(s string) error {
	parsed, err := ParseDurationJSON(s)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// parseFracNanos interprets a fractional-seconds string of 1-9 digits as a
// nanosecond count, right-padding with zeros (".5" => 500_000_000ns).
func parseFracNanos(frac string) (uint64, error) {
	if frac == "" {
		return 0, nil
	}
	if len(frac) > 9 {
		return 0, fmt.Errorf("too many fractional digits: %q", frac)
	}
	v, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	for i := len(frac); i < 9; i++ {
		v *= 10
	}
	return v, nil
}
