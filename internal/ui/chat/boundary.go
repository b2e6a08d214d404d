// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync/atomic"

	"github.com/lukasdevjobs1/profile-chat/internal/orchestrator"
)

// MessageSender is the part of *tea.Program the boundary needs. Satisfied by
// (*tea.Program).Send; narrowed for tests.
type MessageSender interface {
	Send(msg any)
}

// ProgramBoundary bridges the conversation core to the Bubble Tea program.
// Core goroutines call its methods; each call becomes a message on the
// program's queue, so all UI state changes happen on the Update goroutine.
type ProgramBoundary struct {
	program MessageSender
	nextID  atomic.Int64
}

// NewProgramBoundary creates a boundary that forwards to program.
func NewProgramBoundary(program MessageSender) *ProgramBoundary {
	return &ProgramBoundary{program: program}
}

var _ orchestrator.Boundary = (*ProgramBoundary)(nil)

func (b *ProgramBoundary) AppendUserTurn(text string) {
	b.program.Send(AppendUserMsg{Text: text})
}

func (b *ProgramBoundary) AppendAssistantTurn(text string) {
	b.program.Send(AppendAssistantMsg{Text: text})
}

func (b *ProgramBoundary) BeginStreamingTurn() orchestrator.Handle {
	id := b.nextID.Add(1)
	b.program.Send(BeginStreamMsg{ID: id})
	return id
}

func (b *ProgramBoundary) UpdateStreamingTurn(handle orchestrator.Handle, text string) {
	id, ok := handle.(int64)
	if !ok {
		return
	}
	b.program.Send(UpdateStreamMsg{ID: id, Text: text})
}

func (b *ProgramBoundary) ShowPending() {
	b.program.Send(PendingMsg{Visible: true})
}

func (b *ProgramBoundary) HidePending() {
	b.program.Send(PendingMsg{Visible: false})
}

func (b *ProgramBoundary) SetInputEnabled(enabled bool) {
	b.program.Send(InputEnabledMsg{Enabled: enabled})
}
