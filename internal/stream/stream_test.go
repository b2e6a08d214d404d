// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"context"
	"strings"
	"testing"
	"time"
)

func collect(s *Stream) []string {
	var out []string
	for fragment := range s.Fragments() {
		out = append(out, fragment)
	}
	return out
}

func TestStream_ConcatenationReconstructsText(t *testing.T) {
	const text = "O Git_Projects é um repositório  de aprendizado"

	fragments := collect(New(context.Background(), text, NopPacer()))

	if got := strings.Join(fragments, ""); got != text {
		t.Errorf("concatenation = %q, want %q", got, text)
	}
}

func TestStream_WordSizedFragments(t *testing.T) {
	fragments := collect(New(context.Background(), "um dois três", NopPacer()))

	want := []string{"um", " dois", " três"}
	if len(fragments) != len(want) {
		t.Fatalf("fragment count = %d, want %d", len(fragments), len(want))
	}
	for i, fragment := range fragments {
		if fragment != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, fragment, want[i])
		}
	}
}

func TestStream_CancelBeforeFirstFragment(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fragments := collect(New(ctx, "nunca entregue", NopPacer()))

	if len(fragments) != 0 {
		t.Errorf("fragments after pre-cancel = %v, want none", fragments)
	}
}

func TestStream_CancelMidStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New(ctx, "um dois três quatro cinco", NopPacer())

	var got []string
	for fragment := range s.Fragments() {
		got = append(got, fragment)
		if len(got) == 2 {
			cancel()
		}
	}

	// A prefix: non-empty, shorter than the complete answer, in order.
	if len(got) == 0 {
		t.Fatal("no fragments before cancellation")
	}
	if len(got) >= 5 {
		t.Fatalf("got all %d fragments despite cancellation", len(got))
	}
	if got[0] != "um" || got[1] != " dois" {
		t.Errorf("fragments out of order: %v", got)
	}
}

func TestStream_ChannelClosesAfterCompletion(t *testing.T) {
	s := New(context.Background(), "fim", NopPacer())

	collect(s)

	select {
	case _, open := <-s.Fragments():
		if open {
			t.Error("channel still open after completion")
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after completion")
	}
}

func TestStream_RestartablePerCall(t *testing.T) {
	// Each call creates an independent stream over the same text.
	first := collect(New(context.Background(), "a b", NopPacer()))
	second := collect(New(context.Background(), "a b", NopPacer()))

	if strings.Join(first, "") != strings.Join(second, "") {
		t.Errorf("streams differ: %v vs %v", first, second)
	}
}

func TestDefaultPacer_Bounds(t *testing.T) {
	pacer := DefaultPacer()

	for i := 0; i < 50; i++ {
		if d := pacer.InitialDelay(); d < minInitialDelay || d >= maxInitialDelay {
			t.Fatalf("InitialDelay = %v, want [%v, %v)", d, minInitialDelay, maxInitialDelay)
		}
		if d := pacer.FragmentDelay(); d < minFragmentDelay || d >= maxFragmentDelay {
			t.Fatalf("FragmentDelay = %v, want [%v, %v)", d, minFragmentDelay, maxFragmentDelay)
		}
	}
}

func TestNewPacer_CustomBounds(t *testing.T) {
	pacer := NewPacer(10*time.Millisecond, 20*time.Millisecond, time.Millisecond, 2*time.Millisecond)

	for i := 0; i < 50; i++ {
		if d := pacer.InitialDelay(); d < 10*time.Millisecond || d >= 20*time.Millisecond {
			t.Fatalf("InitialDelay %v out of [10ms, 20ms)", d)
		}
		if d := pacer.FragmentDelay(); d < time.Millisecond || d >= 2*time.Millisecond {
			t.Fatalf("FragmentDelay %v out of [1ms, 2ms)", d)
		}
	}
}

func TestNewPacer_InvalidBoundsFallBack(t *testing.T) {
	pacer := NewPacer(0, 0, -1, -1)

	if d := pacer.InitialDelay(); d < 1500*time.Millisecond || d >= 2500*time.Millisecond {
		t.Errorf("InitialDelay %v outside default bounds", d)
	}
	if d := pacer.FragmentDelay(); d < 50*time.Millisecond || d >= 150*time.Millisecond {
		t.Errorf("FragmentDelay %v outside default bounds", d)
	}
}
