// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fakeConductor records Send and Cancel calls.
type fakeConductor struct {
	sent      []string
	cancelled int
}

func (f *fakeConductor) Send(text string) <-chan struct{} {
	f.sent = append(f.sent, text)
	done := make(chan struct{})
	close(done)
	return done
}

func (f *fakeConductor) Cancel() { f.cancelled++ }

func newTestModel(t *testing.T) (Model, *fakeConductor) {
	t.Helper()
	conductor := &fakeConductor{}
	m := New(conductor, "Assistente", "Sou o assistente pessoal do LukG.")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), conductor
}

func TestNewRendersFirstMessage(t *testing.T) {
	m, _ := newTestModel(t)

	if len(m.turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(m.turns))
	}
	if m.turns[0].kind != turnAssistant {
		t.Errorf("first turn kind = %v, want assistant", m.turns[0].kind)
	}
}

func TestSubmitSendsTrimmedInput(t *testing.T) {
	m, conductor := newTestModel(t)

	m.input.SetValue("  fale do git_projects  ")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if len(conductor.sent) != 1 || conductor.sent[0] != "fale do git_projects" {
		t.Errorf("sent = %v", conductor.sent)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestSubmitIgnoresEmptyInput(t *testing.T) {
	m, conductor := newTestModel(t)

	m.input.SetValue("   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(conductor.sent) != 0 {
		t.Errorf("sent = %v, want none", conductor.sent)
	}
}

func TestSubmitBlockedWhileDisabled(t *testing.T) {
	m, conductor := newTestModel(t)

	updated, _ := m.Update(InputEnabledMsg{Enabled: false})
	m = updated.(Model)
	m.input.SetValue("oi")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if len(conductor.sent) != 0 {
		t.Errorf("sent = %v, want none while disabled", conductor.sent)
	}
}

func TestEscCancels(t *testing.T) {
	m, conductor := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if conductor.cancelled != 1 {
		t.Errorf("cancelled = %d, want 1", conductor.cancelled)
	}
}

func TestStreamingLifecycle(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(AppendUserMsg{Text: "oi"})
	m = updated.(Model)
	updated, _ = m.Update(BeginStreamMsg{ID: 7})
	m = updated.(Model)
	updated, _ = m.Update(UpdateStreamMsg{ID: 7, Text: "Olá!"})
	m = updated.(Model)
	updated, _ = m.Update(UpdateStreamMsg{ID: 7, Text: "Olá! Tudo bem?"})
	m = updated.(Model)

	last := m.turns[len(m.turns)-1]
	if !last.streaming || last.content != "Olá! Tudo bem?" {
		t.Errorf("streaming turn = %+v", last)
	}

	updated, _ = m.Update(InputEnabledMsg{Enabled: true})
	m = updated.(Model)

	last = m.turns[len(m.turns)-1]
	if last.streaming {
		t.Error("turn still marked streaming after exchange resolved")
	}
	if last.content != "Olá! Tudo bem?" {
		t.Errorf("content = %q", last.content)
	}
}

func TestCancelledStreamWithoutContentDropped(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(BeginStreamMsg{ID: 1})
	m = updated.(Model)
	before := len(m.turns)

	updated, _ = m.Update(InputEnabledMsg{Enabled: true})
	m = updated.(Model)

	if len(m.turns) != before-1 {
		t.Errorf("empty streaming turn not dropped: %d turns, want %d", len(m.turns), before-1)
	}
}

func TestUpdateForUnknownStreamIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(UpdateStreamMsg{ID: 99, Text: "fantasma"})
	m = updated.(Model)

	for _, turn := range m.turns {
		if turn.content == "fantasma" {
			t.Error("update for unknown stream mutated a turn")
		}
	}
}

func TestViewContainsTranscript(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(AppendUserMsg{Text: "quais projetos você conhece?"})
	m = updated.(Model)

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}

	transcript := m.renderTranscript()
	if transcript == "" {
		t.Fatal("empty transcript")
	}
}

func TestHeaderTruncatesToWidth(t *testing.T) {
	conductor := &fakeConductor{}
	m := New(conductor, "Assistente pessoal do portfólio de Lukas com um título desnecessariamente longo", "")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 24})
	m = updated.(Model)

	header := m.renderHeader()
	if strings.Contains(header, "desnecessariamente") {
		t.Error("header kept full title past the terminal width")
	}
	if !strings.Contains(header, "...") {
		t.Error("truncated header missing ellipsis")
	}
	for _, line := range strings.Split(header, "\n") {
		if w := lipgloss.Width(line); w > m.width {
			t.Errorf("header line width = %d, want <= %d", w, m.width)
		}
	}
}

func TestEscShowsCancelNotice(t *testing.T) {
	m, conductor := newTestModel(t)

	updated, _ := m.Update(InputEnabledMsg{Enabled: false})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if conductor.cancelled != 1 {
		t.Fatalf("cancelled = %d, want 1", conductor.cancelled)
	}
	if !strings.Contains(m.renderStatusBar(), "resposta cancelada") {
		t.Error("status bar missing cancel notice")
	}

	// Notice is transient: the next submit clears it.
	updated, _ = m.Update(InputEnabledMsg{Enabled: true})
	m = updated.(Model)
	m.input.SetValue("oi")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if strings.Contains(m.renderStatusBar(), "resposta cancelada") {
		t.Error("cancel notice not cleared after submit")
	}
}

func TestEscWithoutExchangeLeavesStatusClean(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if strings.Contains(m.renderStatusBar(), "resposta cancelada") {
		t.Error("cancel notice shown with nothing in flight")
	}
}
