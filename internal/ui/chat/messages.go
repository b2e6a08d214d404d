// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view.
//
// This file defines the Bubble Tea message types delivered by the
// conversation core through the program boundary. All types are immutable.
package chat

// AppendUserMsg renders a completed user message.
type AppendUserMsg struct {
	Text string
}

// AppendAssistantMsg renders a completed assistant message that did not go
// through streaming (welcome message, canned turns).
type AppendAssistantMsg struct {
	Text string
}

// BeginStreamMsg opens a new assistant message for incremental updates.
type BeginStreamMsg struct {
	ID int64
}

// UpdateStreamMsg replaces the content of a streaming message with the
// running concatenation.
type UpdateStreamMsg struct {
	ID   int64
	Text string
}

// PendingMsg toggles the typing indicator.
type PendingMsg struct {
	Visible bool
}

// InputEnabledMsg toggles the input field.
type InputEnabledMsg struct {
	Enabled bool
}
