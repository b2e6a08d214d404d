// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"log"
	"sync"
)

// =============================================================================
// PRIORITY ROUTER
// =============================================================================

// Router holds an ordered list of adapters, activates the first one whose
// initialization succeeds, and hides provider differences from the rest of
// the system. Callers never branch on which provider answered.
//
// Priority is fixed: the remote adapter first (assumed reachable via the
// proxy), the native adapter second (depends on optional host capability).
type Router struct {
	mu        sync.Mutex
	providers []Provider
	active    Provider
}

// NewRouter creates a router over the given adapters in priority order.
func NewRouter(providers ...Provider) *Router {
	return &Router{providers: providers}
}

// Initialize tries each adapter in priority order and retains the first
// that succeeds. Once an adapter is active, further calls are no-ops: the
// active adapter is never re-initialized or replaced.
//
// Returns ErrNoProviderAvailable only when every adapter fails.
func (r *Router) Initialize(ctx context.Context, systemPrompt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return nil
	}

	for _, p := range r.providers {
		if err := p.Initialize(ctx, systemPrompt); err != nil {
			log.Printf("ROUTER: %s initialization failed: %v", p.Name(), err)
			continue
		}
		log.Printf("ROUTER: using %s", p.Name())
		r.active = p
		return nil
	}

	return ErrNoProviderAvailable
}

// Respond delegates to the active adapter. Fails with ErrRouterNotReady if
// no provider was ever successfully activated.
func (r *Router) Respond(ctx context.Context, req Request) (string, error) {
	r.mu.Lock()
	active := r.active
	r.mu.Unlock()

	if active == nil {
		return "", ErrRouterNotReady
	}
	return active.Respond(ctx, req)
}

// Active returns the name of the active adapter, or "" before activation.
func (r *Router) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return ""
	}
	return r.active.Name()
}

// Ready reports whether a provider has been activated.
func (r *Router) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}
