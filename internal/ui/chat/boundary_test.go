// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"
	"testing"
)

// fakeSender records messages in order.
type fakeSender struct {
	mu   sync.Mutex
	msgs []any
}

func (f *fakeSender) Send(msg any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeSender) all() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]any, len(f.msgs))
	copy(out, f.msgs)
	return out
}

func TestBoundaryForwardsMessages(t *testing.T) {
	sender := &fakeSender{}
	b := NewProgramBoundary(sender)

	b.AppendUserTurn("oi")
	b.ShowPending()
	handle := b.BeginStreamingTurn()
	b.UpdateStreamingTurn(handle, "olá")
	b.HidePending()
	b.SetInputEnabled(true)

	msgs := sender.all()
	if len(msgs) != 6 {
		t.Fatalf("got %d messages, want 6", len(msgs))
	}

	if m, ok := msgs[0].(AppendUserMsg); !ok || m.Text != "oi" {
		t.Errorf("msg[0] = %#v, want AppendUserMsg{oi}", msgs[0])
	}
	if m, ok := msgs[1].(PendingMsg); !ok || !m.Visible {
		t.Errorf("msg[1] = %#v, want PendingMsg{true}", msgs[1])
	}
	begin, ok := msgs[2].(BeginStreamMsg)
	if !ok {
		t.Fatalf("msg[2] = %#v, want BeginStreamMsg", msgs[2])
	}
	update, ok := msgs[3].(UpdateStreamMsg)
	if !ok {
		t.Fatalf("msg[3] = %#v, want UpdateStreamMsg", msgs[3])
	}
	if update.ID != begin.ID {
		t.Errorf("update ID %d does not match begin ID %d", update.ID, begin.ID)
	}
	if update.Text != "olá" {
		t.Errorf("update Text = %q", update.Text)
	}
	if m, ok := msgs[4].(PendingMsg); !ok || m.Visible {
		t.Errorf("msg[4] = %#v, want PendingMsg{false}", msgs[4])
	}
	if m, ok := msgs[5].(InputEnabledMsg); !ok || !m.Enabled {
		t.Errorf("msg[5] = %#v, want InputEnabledMsg{true}", msgs[5])
	}
}

func TestBoundaryStreamIDsUnique(t *testing.T) {
	b := NewProgramBoundary(&fakeSender{})

	h1 := b.BeginStreamingTurn()
	h2 := b.BeginStreamingTurn()

	if h1 == h2 {
		t.Errorf("handles not unique: %v == %v", h1, h2)
	}
}

func TestBoundaryIgnoresForeignHandle(t *testing.T) {
	sender := &fakeSender{}
	b := NewProgramBoundary(sender)

	b.UpdateStreamingTurn("not-an-id", "texto")

	if len(sender.all()) != 0 {
		t.Errorf("expected no messages for foreign handle, got %d", len(sender.all()))
	}
}
