// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"sync"
)

// =============================================================================
// NATIVE (LOCAL MODEL) ADAPTER
// =============================================================================

// NativeSession is one conversation session with a host-provided local
// model. The system instruction is fixed at session creation; Prompt is a
// single-shot call returning the full answer text.
type NativeSession interface {
	Prompt(ctx context.Context, text string) (string, error)
}

// SessionFactory creates a native session with the given system prompt. A
// nil factory means the host exposes no local model capability, which
// disqualifies the adapter without being an error condition.
type SessionFactory func(ctx context.Context, systemPrompt string) (NativeSession, error)

// Native wraps an optional in-process model session behind the Provider
// contract. The session ignores per-request system prompts; enrichment only
// reaches backends that accept the prompt per call.
type Native struct {
	mu           sync.Mutex
	factory      SessionFactory
	session      NativeSession
	systemPrompt string
}

// NewNative creates the native adapter. Pass nil when the host has no local
// model; Initialize will then report the capability as unavailable.
func NewNative(factory SessionFactory) *Native {
	return &Native{factory: factory}
}

// Name implements Provider.
func (n *Native) Name() string {
	return "native"
}

// Initialize implements Provider. The system prompt is retained so a
// dropped session can be recreated on the next Respond.
func (n *Native) Initialize(ctx context.Context, systemPrompt string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.factory == nil {
		return &ProviderError{Type: ErrTypeUnavailable, Message: "native: local model capability not present"}
	}

	n.systemPrompt = systemPrompt

	session, err := n.factory(ctx, systemPrompt)
	if err != nil {
		return &ProviderError{Type: ErrTypeUnavailable, Message: "native: failed to create session", Cause: err}
	}

	n.session = session
	return nil
}

// Respond implements Provider. If the session was lost it is recreated from
// the stored system prompt before the call.
func (n *Native) Respond(ctx context.Context, req Request) (string, error) {
	if ctx.Err() != nil {
		return "", ErrCancelled
	}

	n.mu.Lock()
	session := n.session
	factory := n.factory
	systemPrompt := n.systemPrompt
	n.mu.Unlock()

	if session == nil && factory != nil && systemPrompt != "" {
		recreated, err := factory(ctx, systemPrompt)
		if err == nil {
			n.mu.Lock()
			n.session = recreated
			n.mu.Unlock()
			session = recreated
		}
	}

	if session == nil {
		return "", ErrProviderUnavailable
	}

	answer, err := session.Prompt(ctx, req.UserText)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", ErrCancelled
		}
		return "", &ProviderError{Type: ErrTypeTransport, Message: "native: prompt failed", Cause: err}
	}

	return answer, nil
}
