// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"sync"
)

// =============================================================================
// CANCELLATION TOKEN MANAGEMENT
// =============================================================================

// cancelManager tracks the cancellation token of the in-flight exchange.
// Triggering a token is terminal; a new exchange always gets a fresh one.
// All access is mutex-protected because Cancel may be called from the UI
// while the worker goroutine is running.
type cancelManager struct {
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	done       chan struct{}
}

func newCancelManager() *cancelManager {
	return &cancelManager{}
}

// begin cancels any previous token, then installs a new one and returns the
// previous exchange's done channel (nil when there was none) so the caller
// can wait for the old exchange to finish flushing.
func (cm *cancelManager) begin(cancel context.CancelFunc, done chan struct{}) chan struct{} {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.cancelFunc != nil {
		cm.cancelFunc()
	}
	prev := cm.done
	cm.cancelFunc = cancel
	cm.done = done
	return prev
}

// cancel triggers the current token. Safe to call multiple times and after
// the stream already completed naturally.
func (cm *cancelManager) cancel() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
}

// doneChannel returns the done channel of the in-flight exchange, or nil.
func (cm *cancelManager) doneChannel() chan struct{} {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.done
}

// clear cancels the token (to prevent context leaks) and forgets it.
func (cm *cancelManager) clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
}
