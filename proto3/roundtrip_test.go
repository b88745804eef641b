// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proto3_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/go-proto3/proto3rt/internal/testpb"
	"github.com/go-proto3/proto3rt/proto3"
)

// MessageInfo is cached per reflect.Type the first time a message type is
// marshaled or unmarshaled, so a concurrent round-trip exercise is the
// sharpest test of that cache's guarantee that concurrent reads of an
// already-built MessageInfo are safe.
func sampleFixtures() []*testpb.Sample {
	var out []*testpb.Sample
	for i := 0; i < 64; i++ {
		n := int32(i)
		out = append(out, &testpb.Sample{
			I32:   n,
			S:     "round-trip",
			Nums:  []int32{n, n + 1, n + 2},
			Tags:  map[string]int32{"a": n},
			Child: &testpb.Nested{Value: "child"},
			Choice: &testpb.Sample_Text{
				Text: "choice",
			},
		})
	}
	return out
}

// messageStateCmp ignores proto3.MessageState's unexported bookkeeping
// fields (wire, unknown) so cmp.Diff can compare testpb messages by their
// declared fields alone, the same scope proto3.Equal covers.
var messageStateCmp = cmpopts.IgnoreUnexported(proto3.MessageState{})

func TestConcurrentRoundTrip(t *testing.T) {
	fixtures := sampleFixtures()

	g, _ := errgroup.WithContext(context.Background())
	for _, want := range fixtures {
		want := want
		g.Go(func() error {
			b, err := proto3.Marshal(want)
			if err != nil {
				return err
			}
			var got testpb.Sample
			if err := proto3.Unmarshal(b, &got); err != nil {
				return err
			}
			if diff := cmp.Diff(want, &got, messageStateCmp); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if !proto3.Equal(want, &got) {
				t.Errorf("proto3.Equal disagrees with cmp.Diff for %+v", want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// TestConcurrentMessageInfoWarmup drives every fixture's Marshal call
// concurrently. When it is the first test to touch testpb.Sample in the
// process (e.g. run alone with -run), these are the calls that race in
// buildMessageInfo's sync.Map LoadOrStore; after earlier tests in this
// package have run, they all hit the cache.
func TestConcurrentMessageInfoWarmup(t *testing.T) {
	fixtures := sampleFixtures()

	var g errgroup.Group
	for _, m := range fixtures {
		m := m
		g.Go(func() error {
			_, err := proto3.Marshal(m)
			return err
		})
	}
	require.NoError(t, g.Wait())
}
