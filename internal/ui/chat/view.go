// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lukasdevjobs1/profile-chat/internal/util"
)

// =============================================================================
// RENDERING
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		status,
	)
}

func (m Model) renderHeader() string {
	// Width-aware truncation so CJK or emoji-heavy titles never push the
	// header past the terminal edge.
	title := util.TruncateWidth("💬 "+m.title, m.width-4)
	return m.theme.Header.Width(m.width).Render(m.theme.HeaderTitle.Render(title))
}

func (m Model) renderInput() string {
	if !m.inputEnabled {
		return m.theme.InputDisabled.Width(m.width - 2).Render("aguardando resposta...")
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var b strings.Builder
	b.WriteString(m.theme.StatusKey.Render("enter"))
	b.WriteString(" enviar  ")
	b.WriteString(m.theme.StatusKey.Render("esc"))
	b.WriteString(" cancelar  ")
	b.WriteString(m.theme.StatusKey.Render("ctrl+c"))
	b.WriteString(" sair")
	if m.notice != "" {
		b.WriteString("  " + m.theme.StatusError.Render(m.notice))
	}
	return m.theme.StatusBar.Width(m.width).Render(b.String())
}

// refreshViewport re-renders the transcript. When follow is true the view
// sticks to the bottom, matching chat expectations during streaming.
func (m *Model) refreshViewport(follow bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderTranscript() string {
	var sections []string

	for _, t := range m.turns {
		switch t.kind {
		case turnUser:
			sections = append(sections,
				m.theme.UserLabel.Render("Você")+"\n"+
					m.theme.UserBubble.Render(t.content))
		case turnAssistant:
			sections = append(sections,
				m.theme.AssistantLabel.Render("Assistente")+"\n"+
					m.theme.AssistantBubble.Render(m.renderAssistant(t)))
		}
	}

	if m.pending {
		sections = append(sections, m.theme.Pending.Render(m.spinner.View()+" digitando..."))
	}

	return strings.Join(sections, "\n\n")
}

// renderAssistant renders finished assistant turns as markdown. Streaming
// turns stay raw so partial markdown never flickers through the renderer.
func (m Model) renderAssistant(t turn) string {
	if t.streaming || m.renderer == nil {
		return t.content
	}
	rendered, err := m.renderer.Render(t.content)
	if err != nil {
		return t.content
	}
	return strings.TrimRight(rendered, "\n")
}
