// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package orchestrator coordinates one conversation: enrichment, provider
// routing, simulated streaming, cancellation, and history bounding.
package orchestrator

// Handle identifies one in-progress streaming turn in the UI. Opaque to the
// orchestrator; the boundary implementation decides what it is.
type Handle any

// Boundary is the rendering layer as seen from the core. The orchestrator
// only calls these methods; it never reads UI state back. Implementations
// must tolerate calls from the orchestrator's worker goroutine.
type Boundary interface {
	// AppendUserTurn renders a completed user message.
	AppendUserTurn(text string)

	// AppendAssistantTurn renders a completed assistant message outside of
	// a streaming turn (e.g. the welcome message).
	AppendAssistantTurn(text string)

	// BeginStreamingTurn opens a new assistant message that will be updated
	// incrementally and returns its handle.
	BeginStreamingTurn() Handle

	// UpdateStreamingTurn replaces the content of a streaming turn with the
	// running concatenation. Calls are monotonic: the text never regresses
	// to an older concatenation.
	UpdateStreamingTurn(handle Handle, text string)

	// ShowPending and HidePending toggle the typing indicator.
	ShowPending()
	HidePending()

	// SetInputEnabled toggles the input field.
	SetInputEnabled(enabled bool)
}
