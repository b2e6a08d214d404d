// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stream converts a complete answer into a paced, cancellable
// sequence of word fragments.
//
// Neither provider exposes incremental output: the remote completion
// endpoint and the native session both return the full answer at once. This
// package produces the illusion of live generation on top of that atomic
// result, with an initial "thinking" delay and short randomized pauses
// between words. The UI-facing contract is the same whether or not the
// underlying call was incremental.
package stream

import (
	"context"
	"strings"
	"time"
)

// =============================================================================
// STREAM
// =============================================================================

// Stream is a finite, cancellable sequence of text fragments. Fragments
// concatenated in order reconstruct the full answer, spacing included.
// A Stream is single-use; each Respond call creates a new one.
type Stream struct {
	fragments chan string
}

// New starts producing fragments from the given answer text. Production
// stops immediately when ctx is cancelled; the channel is closed either way.
func New(ctx context.Context, text string, pacer Pacer) *Stream {
	if pacer == nil {
		pacer = DefaultPacer()
	}

	s := &Stream{fragments: make(chan string)}
	go s.produce(ctx, text, pacer)
	return s
}

// Fragments returns the channel fragments are delivered on. The channel is
// closed after the last fragment or on cancellation.
func (s *Stream) Fragments() <-chan string {
	return s.fragments
}

// produce runs the pacing loop.
func (s *Stream) produce(ctx context.Context, text string, pacer Pacer) {
	defer close(s.fragments)

	// Initial "thinking" delay before the first fragment.
	if !sleepCtx(ctx, pacer.InitialDelay()) {
		return
	}

	// Split on single spaces so the original spacing survives
	// concatenation; every fragment after the first carries its leading
	// space.
	words := strings.Split(text, " ")
	for i, word := range words {
		fragment := word
		if i > 0 {
			fragment = " " + word
		}

		select {
		case s.fragments <- fragment:
		case <-ctx.Done():
			return
		}

		if i < len(words)-1 {
			if !sleepCtx(ctx, pacer.FragmentDelay()) {
				return
			}
		}
	}
}

// sleepCtx sleeps for d unless ctx is cancelled first. Returns false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
