// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation data structures for profile-chat.
package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxTurns is the maximum number of turns kept in conversation history.
// The assistant only needs recent context; three exchanges (six turns) keep
// prompt size bounded without losing the thread of the conversation.
const MaxTurns = 6

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Turn is a single entry in the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// =============================================================================
// CONVERSATION HISTORY
// =============================================================================

// History holds the bounded conversation history for one widget session.
// Turns are always appended in user/assistant pairs, so the length is
// always even and never exceeds MaxTurns. Oldest turns are dropped first.
//
// History is owned exclusively by the orchestrator and is not safe for
// concurrent use on its own.
type History struct {
	id        string
	createdAt time.Time
	turns     []Turn
}

// NewHistory creates an empty conversation history with a generated ID.
func NewHistory() *History {
	return &History{
		id:        "conv_" + uuid.NewString(),
		createdAt: time.Now(),
		turns:     make([]Turn, 0, MaxTurns),
	}
}

// ID returns the conversation identifier.
func (h *History) ID() string {
	return h.id
}

// CreatedAt returns when the conversation started.
func (h *History) CreatedAt() time.Time {
	return h.createdAt
}

// AppendExchange records a completed user/assistant exchange, evicting the
// oldest exchange once the bound is exceeded.
func (h *History) AppendExchange(userText, assistantText string) {
	h.turns = append(h.turns,
		Turn{Role: RoleUser, Content: userText},
		Turn{Role: RoleAssistant, Content: assistantText},
	)
	if len(h.turns) > MaxTurns {
		h.turns = append(h.turns[:0], h.turns[len(h.turns)-MaxTurns:]...)
	}
}

// Turns returns a copy of the current history, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of turns currently held.
func (h *History) Len() int {
	return len(h.turns)
}

// Clear removes all turns.
func (h *History) Clear() {
	h.turns = h.turns[:0]
}
