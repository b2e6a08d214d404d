// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stream

import (
	"math/rand"
	"sync"
	"time"
)

// Pacing bounds for the simulated typing rhythm.
const (
	// Initial delay models the assistant "thinking" before the first word.
	minInitialDelay = 1500 * time.Millisecond
	maxInitialDelay = 2500 * time.Millisecond

	// Inter-fragment delay models natural typing speed.
	minFragmentDelay = 50 * time.Millisecond
	maxFragmentDelay = 150 * time.Millisecond
)

// =============================================================================
// PACER
// =============================================================================

// Pacer supplies the delays used by the pacing loop. Injectable so tests run
// without real sleeps.
type Pacer interface {
	// InitialDelay is waited once before the first fragment.
	InitialDelay() time.Duration

	// FragmentDelay is waited between consecutive fragments.
	FragmentDelay() time.Duration
}

// randomPacer produces randomized delays within the configured bounds.
type randomPacer struct {
	mu  sync.Mutex
	rng *rand.Rand

	minInitial  time.Duration
	maxInitial  time.Duration
	minFragment time.Duration
	maxFragment time.Duration
}

// DefaultPacer returns the production pacer: 1.5-2.5s initial delay,
// 50-150ms between fragments.
func DefaultPacer() Pacer {
	return NewPacer(minInitialDelay, maxInitialDelay, minFragmentDelay, maxFragmentDelay)
}

// NewPacer returns a randomized pacer with custom bounds. Zero or inverted
// bounds fall back to the defaults.
func NewPacer(minInitial, maxInitial, minFragment, maxFragment time.Duration) Pacer {
	if minInitial <= 0 || maxInitial <= minInitial {
		minInitial, maxInitial = minInitialDelay, maxInitialDelay
	}
	if minFragment <= 0 || maxFragment <= minFragment {
		minFragment, maxFragment = minFragmentDelay, maxFragmentDelay
	}
	return &randomPacer{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		minInitial:  minInitial,
		maxInitial:  maxInitial,
		minFragment: minFragment,
		maxFragment: maxFragment,
	}
}

func (p *randomPacer) InitialDelay() time.Duration {
	return p.between(p.minInitial, p.maxInitial)
}

func (p *randomPacer) FragmentDelay() time.Duration {
	return p.between(p.minFragment, p.maxFragment)
}

func (p *randomPacer) between(min, max time.Duration) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + time.Duration(p.rng.Int63n(int64(max-min)))
}

// NopPacer returns a pacer with zero delays, for tests.
func NopPacer() Pacer {
	return nopPacer{}
}

type nopPacer struct{}

func (nopPacer) InitialDelay() time.Duration  { return 0 }
func (nopPacer) FragmentDelay() time.Duration { return 0 }
