// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/lukasdevjobs1/profile-chat/internal/ui/styles"
)

// =============================================================================
// CONDUCTOR
// =============================================================================

// Conductor is the conversation core as seen from the view. Send starts an
// exchange; Cancel interrupts the one in flight.
type Conductor interface {
	Send(userText string) <-chan struct{}
	Cancel()
}

// =============================================================================
// TURNS
// =============================================================================

type turnKind int

const (
	turnUser turnKind = iota
	turnAssistant
)

// turn is one rendered message. Streaming assistant turns keep streamID set
// until the exchange resolves.
type turn struct {
	kind      turnKind
	content   string
	streamID  int64
	streaming bool
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	conductor Conductor
	theme     *styles.Theme

	title string

	width  int
	height int
	ready  bool

	turns   []turn
	pending bool

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	inputEnabled bool

	// Transient notice shown in the status bar, e.g. after a cancel.
	// Cleared on the next submit.
	notice string

	// Markdown renderer for finished assistant turns. nil when glamour
	// could not initialize; falls back to raw text.
	renderer *glamour.TermRenderer
}

// New creates the chat model. firstMessage is rendered as the assistant's
// opening turn before any exchange happens.
func New(conductor Conductor, title, firstMessage string) Model {
	input := textinput.New()
	input.Placeholder = "Digite sua mensagem..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		conductor:    conductor,
		theme:        styles.NewTheme(),
		title:        title,
		input:        input,
		spinner:      sp,
		inputEnabled: true,
	}

	if firstMessage != "" {
		m.turns = append(m.turns, turn{kind: turnAssistant, content: firstMessage})
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.conductor.Cancel()
			return m, tea.Quit

		case tea.KeyEsc:
			if !m.inputEnabled || m.pending {
				m.notice = "resposta cancelada"
			}
			m.conductor.Cancel()
			return m, nil

		case tea.KeyEnter:
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case AppendUserMsg:
		m.turns = append(m.turns, turn{kind: turnUser, content: msg.Text})
		m.refreshViewport(true)

	case AppendAssistantMsg:
		m.turns = append(m.turns, turn{kind: turnAssistant, content: msg.Text})
		m.refreshViewport(true)

	case BeginStreamMsg:
		m.turns = append(m.turns, turn{kind: turnAssistant, streamID: msg.ID, streaming: true})
		m.refreshViewport(true)

	case UpdateStreamMsg:
		m.updateStream(msg.ID, msg.Text)
		m.refreshViewport(true)

	case PendingMsg:
		m.pending = msg.Visible
		if !msg.Visible {
			m.finishStreams()
		}
		m.refreshViewport(true)

	case InputEnabledMsg:
		m.inputEnabled = msg.Enabled
		if msg.Enabled {
			m.input.Focus()
			m.finishStreams()
			m.refreshViewport(false)
		} else {
			m.input.Blur()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.inputEnabled {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit sends the input field's content as a new exchange.
func (m *Model) submit() tea.Cmd {
	if !m.inputEnabled {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.notice = ""
	m.input.Reset()
	m.conductor.Send(text)
	return nil
}

// updateStream replaces the content of the streaming turn with id.
func (m *Model) updateStream(id int64, text string) {
	for i := len(m.turns) - 1; i >= 0; i-- {
		if m.turns[i].streaming && m.turns[i].streamID == id {
			m.turns[i].content = text
			return
		}
	}
}

// finishStreams marks all streaming turns finished and drops the ones that
// never received content (cancelled before the first fragment).
func (m *Model) finishStreams() {
	kept := m.turns[:0]
	for _, t := range m.turns {
		if t.streaming && t.content == "" {
			continue
		}
		t.streaming = false
		kept = append(kept, t)
	}
	m.turns = kept
}

// handleResize recomputes layout and rebuilds the markdown renderer for the
// new wrap width.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 2
	inputHeight := 3
	statusHeight := 1
	viewportHeight := height - headerHeight - inputHeight - statusHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = viewportHeight
	}

	m.input.Width = width - 6

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.MarkdownStyle()),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refreshViewport(false)
}
